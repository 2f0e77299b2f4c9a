package config

// Phase names group stages into the two independently skippable
// sub-sequences, plus the workspace setup that precedes processing.
const (
	PhaseSetup   = "setup"
	PhaseProcess = "process"
	PhaseVerify  = "verify"
)

// Forward modes mark stages that receive caller-supplied arguments.
const (
	ForwardNone       = ""
	ForwardIDs        = "ids"
	ForwardVerifyArgs = "verify-args"
)

// Pipeline represents a pipeline definition loaded from YAML. The rerun
// namespace is not part of the definition; it belongs to the run context
// and reaches stages through ${SKYRUN_RERUN} expansion.
type Pipeline struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Mapper      string        `yaml:"mapper"`
	Stages      []StageConfig `yaml:"stages"`
}

// StageConfig defines a single external tool invocation.
type StageConfig struct {
	Name    string   `yaml:"name"`
	Phase   string   `yaml:"phase"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	Enabled *bool    `yaml:"enabled,omitempty"`

	// Produces lists output paths that later stages depend on. The
	// orchestrator never checks them itself; they document the data flow
	// and the external tools fail if a predecessor did not run.
	Produces []string `yaml:"produces,omitempty"`

	// Forward marks a stage as the target for caller-supplied arguments:
	// dataset identifiers ("ids") or trailing verify arguments
	// ("verify-args"). Forwarded arguments are appended verbatim.
	Forward string `yaml:"forward,omitempty"`
}

// IsEnabled returns whether the stage is enabled (defaults to true).
func (s StageConfig) IsEnabled() bool {
	if s.Enabled == nil {
		return true
	}
	return *s.Enabled
}
