package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skyrun-dev/skyrun/internal/runenv"
)

func runCmd(args []string) int {
	head, tail := splitDashDash(args)

	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `run  Run the full pipeline against a validation dataset

Usage:
  skyrun run [flags] [id selectors...] [-- verify args]

Positional arguments are dataset identifier selectors forwarded to the
processing driver. Arguments after -- are forwarded verbatim to the
verification stage.

Flags:
  -config      Path to pipeline definition (default .skyrun/pipeline.yaml)
  -workspace   Workspace repository directory (default skyrun_work)
  -rerun       Rerun namespace for pipeline outputs
  -cores       Core count for the processing driver (default NUMPROC or all)
  -log-file    Append structured logs to a file
`)
	}
	configFile := fs.String("config", defaultPipelineFile, "Path to pipeline definition")
	workspaceDir := fs.String("workspace", "", "Workspace repository directory")
	rerun := fs.String("rerun", "", "Rerun namespace for pipeline outputs")
	cores := fs.Int("cores", 0, "Core count for the processing driver")
	logFile := fs.String("log-file", "", "Append structured logs to a file")
	fs.Parse(head)

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
	rc.IDs = fs.Args()
	rc.VerifyArgs = tail

	log, closeLog := newRunLogger(*logFile)
	defer closeLog()

	cfg, err := loadPipeline(*configFile, rc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return executePipeline(ctx, cfg, rc, log)
}
