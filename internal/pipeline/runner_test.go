package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skyrun-dev/skyrun/internal/logger"
	"github.com/skyrun-dev/skyrun/internal/status"
)

// fakeExecutor records invocations and fails selected stages with a given
// exit code.
type fakeExecutor struct {
	invoked   []string
	failStage string
	failCode  int
}

type fakeExitError struct {
	code int
}

func (e *fakeExitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e *fakeExitError) ExitCode() int { return e.code }

func (f *fakeExecutor) Execute(ctx context.Context, stage Stage) error {
	f.invoked = append(f.invoked, stage.Name)
	if stage.Name == f.failStage {
		return &fakeExitError{code: f.failCode}
	}
	return nil
}

func discardStatus() *status.Writer {
	return status.NewWithWriter(discardWriter{})
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestRunner(plan Plan, exec Executor) *Runner {
	r := NewRunner(plan, exec, logger.NewNoopLogger())
	r.SetStatusWriter(discardStatus())
	return r
}

func threeStagePlan() Plan {
	return Plan{
		Pipeline: "test",
		Stages: []Stage{
			{Name: "stageA", Phase: "setup", Command: "a"},
			{Name: "stageB", Phase: "process", Command: "b"},
			{Name: "stageC", Phase: "verify", Command: "c"},
		},
	}
}

func TestRunAllStagesInOrder(t *testing.T) {
	exec := &fakeExecutor{}
	runner := newTestRunner(threeStagePlan(), exec)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Success() {
		t.Errorf("expected success, got %s", result.Status)
	}
	if result.FailedStage != -1 {
		t.Errorf("expected FailedStage -1, got %d", result.FailedStage)
	}

	want := []string{"stageA", "stageB", "stageC"}
	if len(exec.invoked) != len(want) {
		t.Fatalf("expected %d invocations, got %v", len(want), exec.invoked)
	}
	for i, name := range want {
		if exec.invoked[i] != name {
			t.Errorf("invocation %d: expected %s, got %s", i, name, exec.invoked[i])
		}
	}
}

func TestRunFailFast(t *testing.T) {
	exec := &fakeExecutor{failStage: "stageB", failCode: 1}
	runner := newTestRunner(threeStagePlan(), exec)

	result, err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing stage")
	}

	se, ok := IsStageError(err)
	if !ok {
		t.Fatalf("expected StageError, got %T: %v", err, err)
	}
	if se.Index != 1 {
		t.Errorf("expected failing index 1, got %d", se.Index)
	}
	if se.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", se.ExitCode)
	}

	if result.Status != StatusFailed {
		t.Errorf("expected FAILED, got %s", result.Status)
	}
	if result.FailedStage != 1 {
		t.Errorf("expected FailedStage 1, got %d", result.FailedStage)
	}
	if result.ExitCode != 1 {
		t.Errorf("expected ExitCode 1, got %d", result.ExitCode)
	}

	for _, name := range exec.invoked {
		if name == "stageC" {
			t.Error("stageC ran after stageB failed")
		}
	}
	if len(exec.invoked) != 2 {
		t.Errorf("expected 2 invocations, got %v", exec.invoked)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	exec := &fakeExecutor{failStage: "stageA", failCode: 42}
	runner := newTestRunner(threeStagePlan(), exec)

	result, err := runner.Run(context.Background())
	se, ok := IsStageError(err)
	if !ok {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.ExitCode != 42 {
		t.Errorf("expected exit code 42, got %d", se.ExitCode)
	}
	if result.ExitCode != 42 {
		t.Errorf("expected result exit code 42, got %d", result.ExitCode)
	}
	if len(exec.invoked) != 1 {
		t.Errorf("expected only stageA to run, got %v", exec.invoked)
	}
}

func TestRunEmptyPlan(t *testing.T) {
	exec := &fakeExecutor{}
	runner := newTestRunner(Plan{Pipeline: "empty"}, exec)

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success() {
		t.Errorf("expected success for empty plan, got %s", result.Status)
	}
	if len(exec.invoked) != 0 {
		t.Errorf("expected no invocations, got %v", exec.invoked)
	}
}

func TestRunCancelledContext(t *testing.T) {
	exec := &fakeExecutor{}
	runner := newTestRunner(threeStagePlan(), exec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(exec.invoked) != 0 {
		t.Errorf("expected no invocations after cancel, got %v", exec.invoked)
	}
}

func TestRunTrackingWritesRunState(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{failStage: "stageB", failCode: 2}
	runner := newTestRunner(threeStagePlan(), exec)
	runner.EnableRunTracking("run-1", dir)

	_, err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	rs, loadErr := runner.trackerWriter.LoadRunState()
	if loadErr != nil {
		t.Fatalf("LoadRunState error: %v", loadErr)
	}
	if rs == nil {
		t.Fatal("expected run state to be written")
	}
	if rs.Status != "error" {
		t.Errorf("expected status error, got %s", rs.Status)
	}
	if rs.FailedStage != 1 {
		t.Errorf("expected failed stage 1, got %d", rs.FailedStage)
	}
	if rs.ExitCode != 2 {
		t.Errorf("expected exit code 2, got %d", rs.ExitCode)
	}
	if rs.LastSuccessfulStage != "stageA" {
		t.Errorf("expected last successful stage stageA, got %s", rs.LastSuccessfulStage)
	}
}
