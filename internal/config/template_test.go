package config

import (
	"strings"
	"testing"
)

func TestRenderDefaultPipelineValidates(t *testing.T) {
	raw, err := RenderDefaultPipeline(DefaultPipelineOptions{})
	if err != nil {
		t.Fatalf("RenderDefaultPipeline failed: %v", err)
	}

	loader := NewLoader(Overlay(map[string]string{
		"SKYRUN_WORKSPACE":    "/data/work",
		"SKYRUN_RERUN":        "20260801",
		"SKYRUN_CORES":        "8",
		"VALIDATION_DATA_DIR": "/data/validation",
	}))
	p, err := loader.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("default pipeline failed to parse: %v", err)
	}
	if err := ValidatePipeline(p); err != nil {
		t.Fatalf("default pipeline failed validation: %v", err)
	}

	if p.Mapper == "" {
		t.Error("expected default mapper")
	}

	var phases []string
	for _, s := range p.Stages {
		phases = append(phases, s.Phase)
	}
	joined := strings.Join(phases, ",")
	if !strings.Contains(joined, PhaseSetup) || !strings.Contains(joined, PhaseProcess) || !strings.Contains(joined, PhaseVerify) {
		t.Errorf("expected all three phases in default pipeline, got %v", phases)
	}
}

func TestRenderDefaultPipelineOverrides(t *testing.T) {
	raw, err := RenderDefaultPipeline(DefaultPipelineOptions{
		Name:   "custom",
		Mapper: "obs.test.TestMapper",
	})
	if err != nil {
		t.Fatalf("RenderDefaultPipeline failed: %v", err)
	}

	p, err := NewLoader(nil).Parse([]byte(raw))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if p.Name != "custom" {
		t.Errorf("expected name custom, got %q", p.Name)
	}
	if p.Mapper != "obs.test.TestMapper" {
		t.Errorf("expected overridden mapper, got %q", p.Mapper)
	}
}
