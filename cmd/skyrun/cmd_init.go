package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/skyrun-dev/skyrun/internal/config"
)

func initCmd(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Print(`init  Write a starter pipeline definition

Usage:
  skyrun init [-name <pipeline>] [-mapper <class>] [-force]

Flags:
  -name     Pipeline name (default: validation-pipeline)
  -mapper   Camera mapper class written to the workspace marker file
  -force    Overwrite an existing pipeline definition
`)
	}
	name := fs.String("name", "", "Pipeline name")
	mapper := fs.String("mapper", "", "Camera mapper class")
	force := fs.Bool("force", false, "Overwrite an existing pipeline definition")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Too many arguments.")
		fs.Usage()
		return 1
	}

	if _, err := os.Stat(defaultPipelineFile); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists (use -force to overwrite)\n", defaultPipelineFile)
		return 1
	}

	raw, err := config.RenderDefaultPipeline(config.DefaultPipelineOptions{
		Name:   *name,
		Mapper: *mapper,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := os.MkdirAll(filepath.Dir(defaultPipelineFile), 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := os.WriteFile(defaultPipelineFile, []byte(raw), 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("Wrote %s\n", defaultPipelineFile)
	fmt.Println("\nNext steps:")
	fmt.Println("  - Point VALIDATION_DATA_DIR at your dataset")
	fmt.Println("  - skyrun run")
	return 0
}
