package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	if os.Args[1] == "-h" || os.Args[1] == "--help" || os.Args[1] == "help" {
		printUsage()
		os.Exit(0)
	}
	if os.Args[1] == "--version" {
		fmt.Println(versionLine())
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCmd(os.Args[2:]))
	case "check":
		os.Exit(checkCmd(os.Args[2:]))
	case "init":
		os.Exit(initCmd(os.Args[2:]))
	case "version":
		fmt.Println(versionLine())
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skyrun

Drives an external image-processing toolchain through a fixed stage
sequence: ingest raw frames, process single frames, build the sky map,
then verify the output repository against reference catalogs.

Usage:
  skyrun <command> [flags] [-- verify args]

Commands:
  run          Run the full pipeline against a validation dataset
  check        Process calibration data and verify the repository
  init         Write a starter pipeline definition (.skyrun/pipeline.yaml)
  version      Show the version
  help         Show this message

Examples:
  # Full run, forwarding visit selectors to the processing driver
  skyrun run visit=903334 ccd=16..23

  # Re-verify an existing repository without reprocessing
  skyrun check -P -- --level design

Environment:
  SKYRUN_DIR            Install location of the pipeline distribution
  VALIDATION_DATA_DIR   Root of the validation dataset
  CALIB_DATA_DIR        Calibration directory (default: $VALIDATION_DATA_DIR/CALIB)
  NUMPROC               Core count passed to the processing driver
  REFCAT_NAME, REFCAT_DIR
                        Reference catalog selection for verification
  SKYRUN_PUSHGATEWAY    Optional Pushgateway URL for run metrics

Run 'skyrun <command> -h' for details.`)
}
