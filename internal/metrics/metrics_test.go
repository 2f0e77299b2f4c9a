package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStage(t *testing.T) {
	rec := New()

	rec.ObserveStage("test", "ingest", 2*time.Second, nil)
	rec.ObserveStage("test", "ingest", time.Second, errors.New("exit status 1"))

	failures := testutil.ToFloat64(rec.stageFailures.WithLabelValues("test", "ingest"))
	if failures != 1 {
		t.Errorf("expected 1 failure, got %v", failures)
	}

	count, err := testutil.GatherAndCount(rec.Registry(), "skyrun_stage_duration_seconds")
	if err != nil {
		t.Fatalf("gather error: %v", err)
	}
	if count == 0 {
		t.Error("expected stage duration samples")
	}
}

func TestRunCompleted(t *testing.T) {
	rec := New()

	rec.RunCompleted("test", "SUCCESS")
	rec.RunCompleted("test", "FAILED")
	rec.RunCompleted("test", "FAILED")

	failed := testutil.ToFloat64(rec.runsTotal.WithLabelValues("test", "FAILED"))
	if failed != 2 {
		t.Errorf("expected 2 failed runs, got %v", failed)
	}
}

func TestPushWithoutGatewayIsNoop(t *testing.T) {
	rec := New()
	rec.RunCompleted("test", "SUCCESS")

	if err := rec.Push("", "test"); err != nil {
		t.Errorf("expected no-op push, got %v", err)
	}
}
