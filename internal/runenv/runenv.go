// Package runenv builds the run context for a pipeline invocation.
//
// All environment inspection happens here, once, at startup. Stage logic
// never reads the process environment directly; it receives computed values
// through the context and through variable expansion in the pipeline
// definition.
package runenv

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

// Environment variable names consumed at startup.
const (
	EnvProductDir  = "SKYRUN_DIR"
	EnvDataDir     = "VALIDATION_DATA_DIR"
	EnvCalibDir    = "CALIB_DATA_DIR"
	EnvCores       = "NUMPROC"
	EnvRefCatName  = "REFCAT_NAME"
	EnvRefCatDir   = "REFCAT_DIR"
	EnvPushgateway = "SKYRUN_PUSHGATEWAY"
)

// RunContext holds everything a pipeline run needs. It is built once from
// the process environment and CLI arguments and is read-only afterwards.
type RunContext struct {
	// ProductDir is the install location of the pipeline distribution.
	ProductDir string

	// DataDir is the root of the validation dataset (raw frames,
	// reference catalogs). The orchestrator does not check that it
	// exists; the first stage that dereferences it fails if it doesn't.
	DataDir string

	// CalibDir is the external calibration directory aliased into the
	// workspace repository. Defaults to DataDir/CALIB.
	CalibDir string

	// Workspace is the local repository directory created for this run.
	Workspace string

	// Rerun is the versioned output namespace, passed through opaquely
	// to the external tools.
	Rerun string

	// Cores is the core-count hint passed through to the processing
	// driver. The child's concurrency is its own business.
	Cores int

	// RefCatName and RefCatDir select the reference catalog the
	// verification tool compares against.
	RefCatName string
	RefCatDir  string

	// Pushgateway, when set, enables a metrics push at the end of a run.
	Pushgateway string

	// SkipProcess and SkipVerify gate the two stage sub-sequences.
	SkipProcess bool
	SkipVerify  bool

	// IDs are dataset identifiers forwarded to the processing stage.
	IDs []string

	// VerifyArgs are trailing arguments forwarded verbatim to the
	// verification stage.
	VerifyArgs []string
}

// FromEnv builds a RunContext from the process environment.
func FromEnv() *RunContext {
	rc := &RunContext{
		ProductDir:  os.Getenv(EnvProductDir),
		DataDir:     os.Getenv(EnvDataDir),
		CalibDir:    os.Getenv(EnvCalibDir),
		Workspace:   "skyrun_work",
		Rerun:       "validation",
		Cores:       runtime.NumCPU(),
		RefCatName:  os.Getenv(EnvRefCatName),
		RefCatDir:   os.Getenv(EnvRefCatDir),
		Pushgateway: os.Getenv(EnvPushgateway),
	}

	if v := os.Getenv(EnvCores); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rc.Cores = n
		}
	}

	if rc.CalibDir == "" && rc.DataDir != "" {
		rc.CalibDir = rc.DataDir + "/CALIB"
	}

	return rc
}

// Vars exposes the computed values for variable expansion in pipeline
// definitions. Definitions reference these instead of raw environment
// variables so a run sees one consistent snapshot.
func (rc *RunContext) Vars() map[string]string {
	return map[string]string{
		"SKYRUN_DIR":          rc.ProductDir,
		"SKYRUN_WORKSPACE":    rc.Workspace,
		"SKYRUN_RERUN":        rc.Rerun,
		"SKYRUN_CORES":        strconv.Itoa(rc.Cores),
		"VALIDATION_DATA_DIR": rc.DataDir,
		"CALIB_DIR":           rc.CalibDir,
		"REFCAT_NAME":         rc.RefCatName,
		"REFCAT_DIR":          rc.RefCatDir,
	}
}

// Environ returns the child process environment: the inherited environment
// with the run context's computed values appended, so external tools see
// the same snapshot the orchestrator used.
func (rc *RunContext) Environ() []string {
	env := os.Environ()
	for k, v := range rc.Vars() {
		if v == "" {
			continue
		}
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
