package pipeline

import (
	"errors"
	"fmt"
)

// StageError reports the first failing stage of a run.
type StageError struct {
	Stage    string
	Index    int
	ExitCode int
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s (index %d) failed with exit code %d: %v", e.Stage, e.Index, e.ExitCode, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsStageError extracts a StageError from an error chain.
func IsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// exitCodeOf pulls an exit code out of an executor error. Both
// *exec.ExitError and test doubles satisfy the interface. Anything without
// a usable code (including signal deaths, reported as -1) maps to 1 so the
// orchestrator still exits non-zero.
func exitCodeOf(err error) int {
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		if code := ec.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
