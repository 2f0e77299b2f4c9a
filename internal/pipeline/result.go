package pipeline

import "time"

// Status is the terminal state of a run.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// StageResult captures the outcome of one executed stage.
type StageResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Result is the outcome of a whole run. FailedStage is the index of the
// first failing stage, or -1 when every stage succeeded. Stages holds one
// entry per stage that actually executed; stages after a failure never run
// and never appear.
type Result struct {
	Status      Status
	FailedStage int
	ExitCode    int
	Stages      []StageResult
}

// Success reports whether every stage completed.
func (r *Result) Success() bool {
	return r.Status == StatusSuccess
}
