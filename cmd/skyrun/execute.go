package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skyrun-dev/skyrun/internal/config"
	"github.com/skyrun-dev/skyrun/internal/logger"
	"github.com/skyrun-dev/skyrun/internal/metrics"
	"github.com/skyrun-dev/skyrun/internal/pipeline"
	"github.com/skyrun-dev/skyrun/internal/runenv"
	"github.com/skyrun-dev/skyrun/internal/tracker"
	"github.com/skyrun-dev/skyrun/internal/workspace"
)

const (
	defaultPipelineFile = ".skyrun/pipeline.yaml"
	trackerDir          = ".skyrun"
)

// loadPipeline reads the pipeline definition, falling back to the embedded
// default when no file exists. Variable references resolve against the run
// context first, then the process environment.
func loadPipeline(path string, rc *runenv.RunContext) (*config.Pipeline, error) {
	loader := config.NewLoader(config.Overlay(rc.Vars()))

	if _, err := os.Stat(path); err == nil {
		return loader.LoadAndValidate(path)
	}

	raw, err := config.RenderDefaultPipeline(config.DefaultPipelineOptions{})
	if err != nil {
		return nil, err
	}
	p, err := loader.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	if err := config.ValidatePipeline(p); err != nil {
		return nil, err
	}
	return p, nil
}

// newRunLogger returns the logger for a run and a cleanup function. Without
// -log-file the logger is a noop; the status writer carries the UX.
func newRunLogger(logFile string) (logger.Logger, func()) {
	if logFile == "" {
		return logger.NewNoopLogger(), func() {}
	}

	fl, err := logger.NewFileLogger(logFile, logger.LevelDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Falling back to stderr logging: %v\n", err)
		return logger.NewStderrLogger(logger.LevelInfo), func() {}
	}
	return fl, func() { _ = fl.Close() }
}

// executePipeline runs one pipeline invocation end to end: workspace setup,
// plan construction, locked sequential execution, metrics push.
func executePipeline(ctx context.Context, cfg *config.Pipeline, rc *runenv.RunContext, log logger.Logger) int {
	if !rc.SkipProcess {
		err := workspace.Setup(workspace.Options{
			Dir:      rc.Workspace,
			Mapper:   cfg.Mapper,
			CalibDir: rc.CalibDir,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Workspace setup failed: %v\n", err)
			return 1
		}
	}

	plan := pipeline.Build(cfg, rc)
	if plan.Empty() {
		fmt.Println("Nothing to do.")
		return 0
	}

	_ = os.MkdirAll(trackerDir, 0755)
	trk := tracker.NewWriter(trackerDir)
	runID := tracker.NewRunID()
	releaseLock, err := trk.AcquireLock(runID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = releaseLock() }()

	rec := metrics.New()
	runner := pipeline.NewRunner(plan, &pipeline.ExecExecutor{Env: rc.Environ()}, log)
	runner.EnableRunTracking(runID, trackerDir)
	runner.EnableMetrics(rec)

	_, runErr := runner.Run(ctx)

	if pushErr := rec.Push(rc.Pushgateway, cfg.Name); pushErr != nil {
		log.Warn("Metrics push failed", logger.F("error", pushErr))
	}

	if runErr != nil {
		if se, ok := pipeline.IsStageError(runErr); ok {
			fmt.Fprintf(os.Stderr, "Pipeline failed at stage %s (exit code %d)\n", se.Stage, se.ExitCode)
			// Propagate the failing stage's status, like a shell under set -e.
			return se.ExitCode
		}
		fmt.Fprintf(os.Stderr, "Pipeline aborted: %v\n", runErr)
		return 1
	}

	return 0
}
