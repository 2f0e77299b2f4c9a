package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/skyrun-dev/skyrun/internal/config"
	"github.com/skyrun-dev/skyrun/internal/logger"
	"github.com/skyrun-dev/skyrun/internal/runenv"
)

func printCheckUsage(w io.Writer) {
	fmt.Fprint(w, `check  Process calibration data and verify the repository

Usage:
  skyrun check [flags] [-- verify args]

Arguments after -- are forwarded verbatim to the verification stage.

Flags:
  -P           Skip the processing stages
  -V           Skip the verification stages
  -watch       Re-run verification when the pipeline definition changes
  -config      Path to pipeline definition (default .skyrun/pipeline.yaml)
  -workspace   Workspace repository directory (default skyrun_work)
  -rerun       Rerun namespace for pipeline outputs
  -cores       Core count for the processing driver (default NUMPROC or all)
  -log-file    Append structured logs to a file
  -h           Show this message and exit 1
`)
}

func checkCmd(args []string) int {
	head, tail := splitDashDash(args)

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	skipProcess := fs.Bool("P", false, "Skip the processing stages")
	skipVerify := fs.Bool("V", false, "Skip the verification stages")
	watch := fs.Bool("watch", false, "Re-run verification when the pipeline definition changes")
	configFile := fs.String("config", defaultPipelineFile, "Path to pipeline definition")
	workspaceDir := fs.String("workspace", "", "Workspace repository directory")
	rerun := fs.String("rerun", "", "Rerun namespace for pipeline outputs")
	cores := fs.Int("cores", 0, "Core count for the processing driver")
	logFile := fs.String("log-file", "", "Append structured logs to a file")

	if err := fs.Parse(head); err != nil {
		// Both -h and an unknown flag end here: usage on stderr, exit 1,
		// before any stage runs.
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		printCheckUsage(os.Stderr)
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Unexpected argument: %s (verify args go after --)\n", fs.Arg(0))
		printCheckUsage(os.Stderr)
		return 1
	}

	rc := runenv.FromEnv()
	if *workspaceDir != "" {
		rc.Workspace = *workspaceDir
	}
	if *rerun != "" {
		rc.Rerun = *rerun
	}
	if *cores > 0 {
		rc.Cores = *cores
	}
	rc.SkipProcess = *skipProcess
	rc.SkipVerify = *skipVerify
	rc.VerifyArgs = tail

	log, closeLog := newRunLogger(*logFile)
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if *watch {
		return watchCheck(ctx, *configFile, rc, log)
	}

	cfg, err := loadPipeline(*configFile, rc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return executePipeline(ctx, cfg, rc, log)
}

// watchCheck runs the check once, then re-runs it whenever the pipeline
// definition directory changes, until interrupted. The exit code is the
// outcome of the last completed check.
func watchCheck(ctx context.Context, configFile string, rc *runenv.RunContext, log logger.Logger) int {
	cfg, err := loadPipeline(configFile, rc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	loader := config.NewLoader(config.Overlay(rc.Vars()))
	watcher, err := config.NewWatcher(loader, filepath.Dir(configFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := watcher.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = watcher.Stop() }()

	code := executePipeline(ctx, cfg, rc, log)

	for {
		select {
		case <-ctx.Done():
			return code

		case ev, ok := <-watcher.Events():
			if !ok {
				return code
			}
			if ev.Error != nil {
				fmt.Fprintln(os.Stderr, ev.Error)
				continue
			}
			if err := config.ValidatePipeline(ev.Pipeline); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Printf("Pipeline definition changed (%s), re-checking\n", ev.Path)
			code = executePipeline(ctx, ev.Pipeline, rc, log)
		}
	}
}
