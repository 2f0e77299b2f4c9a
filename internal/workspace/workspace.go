// Package workspace prepares the local repository directory a pipeline run
// writes into.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MapperFile is the one-line marker file naming the camera-mapper class.
// The external ingestion tool reads it to pick the data-layout adapter.
const MapperFile = "_mapper"

// CalibLink is the name of the symbolic link aliasing the external
// calibration directory inside the repository.
const CalibLink = "CALIB"

// Options describes the repository to prepare.
type Options struct {
	// Dir is the repository directory, created if absent.
	Dir string

	// Mapper is the camera-mapper class name written to the marker file.
	Mapper string

	// CalibDir is the external calibration directory to alias. Empty
	// skips the link; a processing stage that needs calibration data
	// will fail on its own.
	CalibDir string
}

// Setup creates the repository directory, writes the mapper marker file and
// links the calibration directory. It is idempotent: re-running against an
// existing workspace with the same options succeeds.
func Setup(opts Options) error {
	if opts.Dir == "" {
		return fmt.Errorf("workspace directory is required")
	}
	if opts.Mapper == "" {
		return fmt.Errorf("camera mapper class is required")
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create workspace %s: %w", opts.Dir, err)
	}

	mapperPath := filepath.Join(opts.Dir, MapperFile)
	if err := os.WriteFile(mapperPath, []byte(opts.Mapper+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write mapper file: %w", err)
	}

	if opts.CalibDir == "" {
		return nil
	}

	linkPath := filepath.Join(opts.Dir, CalibLink)
	if err := os.Symlink(opts.CalibDir, linkPath); err != nil {
		if !os.IsExist(err) {
			return fmt.Errorf("failed to link calibration directory: %w", err)
		}
		target, readErr := os.Readlink(linkPath)
		if readErr != nil {
			return fmt.Errorf("%s exists and is not a symlink: %w", linkPath, readErr)
		}
		if target != opts.CalibDir {
			return fmt.Errorf("%s already links to %s, wanted %s", linkPath, target, opts.CalibDir)
		}
	}

	return nil
}

// Mapper reads the camera-mapper class recorded in an existing workspace.
func Mapper(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, MapperFile))
	if err != nil {
		return "", fmt.Errorf("failed to read mapper file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
