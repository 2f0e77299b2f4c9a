package main

import (
	"os"
	"strings"
	"testing"

	"github.com/skyrun-dev/skyrun/internal/config"
)

func TestInitWritesDefaultPipeline(t *testing.T) {
	chdirTemp(t)

	if code := initCmd(nil); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	data, err := os.ReadFile(defaultPipelineFile)
	if err != nil {
		t.Fatalf("pipeline file missing: %v", err)
	}
	if !strings.Contains(string(data), "name: validation-pipeline") {
		t.Errorf("expected default pipeline name, got:\n%s", string(data))
	}

	// The generated definition must load and validate as-is.
	loader := config.NewLoader(func(string) (string, bool) { return "x", true })
	cfg, err := loader.LoadFile(defaultPipelineFile)
	if err != nil {
		t.Fatalf("generated pipeline failed to load: %v", err)
	}
	if err := config.ValidatePipeline(cfg); err != nil {
		t.Fatalf("generated pipeline failed validation: %v", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	chdirTemp(t)

	if code := initCmd(nil); code != 0 {
		t.Fatalf("first init failed with %d", code)
	}
	if code := initCmd(nil); code != 1 {
		t.Errorf("expected exit 1 on existing pipeline, got %d", code)
	}
	if code := initCmd([]string{"-force", "-name", "hsc-validation"}); code != 0 {
		t.Errorf("expected -force to succeed, got %d", code)
	}

	data, err := os.ReadFile(defaultPipelineFile)
	if err != nil {
		t.Fatalf("pipeline file missing: %v", err)
	}
	if !strings.Contains(string(data), "name: hsc-validation") {
		t.Errorf("expected overwritten pipeline name, got:\n%s", string(data))
	}
}

func TestInitRejectsPositionalArgs(t *testing.T) {
	chdirTemp(t)

	if code := initCmd([]string{"extra"}); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if _, err := os.Stat(defaultPipelineFile); !os.IsNotExist(err) {
		t.Error("no pipeline file should be written on argument errors")
	}
}
