package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/skyrun-dev/skyrun/internal/logger"
	"github.com/skyrun-dev/skyrun/internal/metrics"
	"github.com/skyrun-dev/skyrun/internal/status"
	"github.com/skyrun-dev/skyrun/internal/tracker"
)

// Runner executes a Plan strictly sequentially: one external process at a
// time, synchronous wait per stage, first non-zero exit aborts the run.
// Stages are never retried and never run concurrently.
type Runner struct {
	plan   Plan
	exec   Executor
	logger logger.Logger
	status *status.Writer

	trackerWriter *tracker.Writer
	runID         string
	runStartedAt  time.Time

	recorder *metrics.Recorder
}

// NewRunner creates a runner for a plan.
func NewRunner(plan Plan, exec Executor, log logger.Logger) *Runner {
	return &Runner{
		plan:   plan,
		exec:   exec,
		logger: log,
		status: status.New(),
	}
}

// SetStatusWriter replaces the terminal status writer (used in tests).
func (r *Runner) SetStatusWriter(w *status.Writer) {
	r.status = w
}

// EnableRunTracking enables writing run_state.json to the given directory
// so an interrupted run leaves a readable record of where it stopped.
func (r *Runner) EnableRunTracking(runID, dir string) {
	r.trackerWriter = tracker.NewWriter(dir)
	r.runID = runID
	r.runStartedAt = time.Now()
}

// EnableMetrics records per-stage durations and run outcomes.
func (r *Runner) EnableMetrics(rec *metrics.Recorder) {
	r.recorder = rec
}

func (r *Runner) writeRunState(st string, currentStage string, stageStartedAt time.Time, lastSuccessful string, failedStage int, exitCode int, lastErr error) {
	if r.trackerWriter == nil {
		return
	}

	rs := tracker.RunState{
		RunID:               r.runID,
		PID:                 os.Getpid(),
		Pipeline:            r.plan.Pipeline,
		StartedAt:           r.runStartedAt,
		UpdatedAt:           time.Now(),
		CurrentStage:        currentStage,
		StageStartedAt:      stageStartedAt,
		LastSuccessfulStage: lastSuccessful,
		Status:              st,
		FailedStage:         failedStage,
		ExitCode:            exitCode,
	}
	if lastErr != nil {
		rs.LastError = lastErr.Error()
	}

	_ = r.trackerWriter.WriteRunState(rs)
}

// Run executes every stage of the plan in order. It returns the run result
// together with the first stage failure, if any. An empty plan (both
// sub-sequences skipped) succeeds immediately.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Status:      StatusSuccess,
		FailedStage: -1,
	}

	total := len(r.plan.Stages)
	lastSuccessful := ""

	r.logger.Debug("Starting run",
		logger.F("pipeline", r.plan.Pipeline),
		logger.F("stages", total),
	)
	r.writeRunState("running", "", time.Time{}, "", -1, 0, nil)

	for i, stage := range r.plan.Stages {
		if err := ctx.Err(); err != nil {
			r.writeRunState("aborted", stage.Name, time.Time{}, lastSuccessful, -1, 0, err)
			return result, err
		}

		stageStart := time.Now()
		r.status.Stage(i+1, total, stage.Name)
		r.writeRunState("running", stage.Name, stageStart, lastSuccessful, -1, 0, nil)
		r.logger.Info("Running stage",
			logger.F("stage", stage.Name),
			logger.F("command", stage.Command),
		)

		err := r.exec.Execute(ctx, stage)
		duration := time.Since(stageStart)

		if r.recorder != nil {
			r.recorder.ObserveStage(r.plan.Pipeline, stage.Name, duration, err)
		}

		result.Stages = append(result.Stages, StageResult{
			Name:     stage.Name,
			Duration: duration,
			Err:      err,
		})

		if err != nil {
			stageErr := &StageError{
				Stage:    stage.Name,
				Index:    i,
				ExitCode: exitCodeOf(err),
				Err:      err,
			}

			result.Status = StatusFailed
			result.FailedStage = i
			result.ExitCode = stageErr.ExitCode

			r.status.Error(i+1, total, stage.Name, stageErr)
			r.writeRunState("error", stage.Name, stageStart, lastSuccessful, i, stageErr.ExitCode, stageErr)
			if r.recorder != nil {
				r.recorder.RunCompleted(r.plan.Pipeline, string(StatusFailed))
			}
			r.logger.Error("Stage failed",
				logger.F("stage", stage.Name),
				logger.F("exit_code", stageErr.ExitCode),
				logger.F("duration", duration),
			)

			return result, stageErr
		}

		lastSuccessful = stage.Name
		r.logger.Debug("Stage complete",
			logger.F("stage", stage.Name),
			logger.F("duration", duration),
		)
	}

	r.status.Complete(total)
	r.writeRunState("complete", "", time.Time{}, lastSuccessful, -1, 0, nil)
	if r.recorder != nil {
		r.recorder.RunCompleted(r.plan.Pipeline, string(StatusSuccess))
	}
	r.logger.Info("Run complete",
		logger.F("pipeline", r.plan.Pipeline),
		logger.F("stages", total),
	)

	return result, nil
}
