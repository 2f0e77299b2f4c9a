// Package pipeline executes an ordered list of external tool invocations,
// one at a time, aborting on the first failure.
package pipeline

import (
	"github.com/skyrun-dev/skyrun/internal/config"
	"github.com/skyrun-dev/skyrun/internal/runenv"
)

// Stage is one external tool invocation. Stages are built once at startup
// and never mutated afterwards.
type Stage struct {
	Name    string
	Phase   string
	Command string
	Args    []string

	// Produces documents outputs later stages depend on. Existence is
	// never checked here; a later stage's tool fails if a predecessor
	// did not run.
	Produces []string
}

// Plan is the fixed total order of stages for one run.
type Plan struct {
	Pipeline string
	Stages   []Stage
}

// Build assembles the plan for a run context. Disabled stages are dropped,
// the skip flags gate whole phases, and caller-supplied arguments are
// appended verbatim to the stages that forward them.
func Build(p *config.Pipeline, rc *runenv.RunContext) Plan {
	var stages []Stage
	for _, sc := range p.Stages {
		if !sc.IsEnabled() {
			continue
		}

		switch sc.Phase {
		case config.PhaseSetup, config.PhaseProcess:
			if rc.SkipProcess {
				continue
			}
		case config.PhaseVerify:
			if rc.SkipVerify {
				continue
			}
		}

		args := append([]string(nil), sc.Args...)
		switch sc.Forward {
		case config.ForwardIDs:
			args = append(args, rc.IDs...)
		case config.ForwardVerifyArgs:
			args = append(args, rc.VerifyArgs...)
		}

		stages = append(stages, Stage{
			Name:     sc.Name,
			Phase:    sc.Phase,
			Command:  sc.Command,
			Args:     args,
			Produces: append([]string(nil), sc.Produces...),
		})
	}

	return Plan{Pipeline: p.Name, Stages: stages}
}

// Empty reports whether the plan has no stages to run.
func (p Plan) Empty() bool {
	return len(p.Stages) == 0
}
