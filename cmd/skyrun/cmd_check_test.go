package main

import (
	"os"
	"testing"
)

// chdirTemp moves the test into a scratch directory so commands that touch
// .skyrun/ and the workspace never dirty the repo.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestCheckHelpExitsOne(t *testing.T) {
	chdirTemp(t)

	if code := checkCmd([]string{"-h"}); code != 1 {
		t.Errorf("expected exit code 1 for -h, got %d", code)
	}
}

func TestCheckHelpWinsOverOtherFlags(t *testing.T) {
	chdirTemp(t)

	if code := checkCmd([]string{"-P", "-h", "-V"}); code != 1 {
		t.Errorf("expected exit code 1 for -h with other flags, got %d", code)
	}
}

func TestCheckUnknownFlagExitsOne(t *testing.T) {
	chdirTemp(t)

	if code := checkCmd([]string{"-definitely-not-a-flag"}); code != 1 {
		t.Errorf("expected exit code 1 for unknown flag, got %d", code)
	}
}

func TestCheckSkipAllExitsZero(t *testing.T) {
	dir := chdirTemp(t)

	code := checkCmd([]string{"-P", "-V"})
	if code != 0 {
		t.Errorf("expected exit code 0 when both sub-sequences are skipped, got %d", code)
	}

	// No work means no workspace either.
	if _, err := os.Stat(dir + "/skyrun_work"); !os.IsNotExist(err) {
		t.Error("expected no workspace to be created")
	}
}

func TestCheckRejectsPositionalArgs(t *testing.T) {
	chdirTemp(t)

	if code := checkCmd([]string{"-P", "stray"}); code != 1 {
		t.Errorf("expected exit code 1 for stray positional arg, got %d", code)
	}
}
