package tracker

import "time"

// RunState is the persisted snapshot of an in-flight or finished run.
// FailedStage is the index of the first failing stage, -1 otherwise.
type RunState struct {
	RunID               string    `json:"run_id"`
	PID                 int       `json:"pid"`
	Pipeline            string    `json:"pipeline,omitempty"`
	StartedAt           time.Time `json:"started_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	CurrentStage        string    `json:"current_stage,omitempty"`
	StageStartedAt      time.Time `json:"stage_started_at,omitempty"`
	LastSuccessfulStage string    `json:"last_successful_stage,omitempty"`
	Status              string    `json:"status"`
	FailedStage         int       `json:"failed_stage"`
	ExitCode            int       `json:"exit_code,omitempty"`
	LastError           string    `json:"last_error,omitempty"`
}
