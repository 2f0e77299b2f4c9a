package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading pipeline definition files.
type Loader struct {
	lookup LookupFunc
}

// NewLoader creates a loader that expands variables through lookup.
// A nil lookup falls back to the process environment.
func NewLoader(lookup LookupFunc) *Loader {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Loader{lookup: lookup}
}

// LoadFile loads a pipeline definition from a specific file path.
// Variable references in the file are expanded before parsing.
// Supports ${VAR} and ${VAR:-default} syntax.
func (l *Loader) LoadFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	return l.Parse(data)
}

// Parse expands variables in raw YAML and decodes it.
func (l *Loader) Parse(data []byte) (*Pipeline, error) {
	expanded := Expand(string(data), l.lookup)

	var p Pipeline
	if err := yaml.Unmarshal([]byte(expanded), &p); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline YAML: %w", err)
	}

	return &p, nil
}

// LoadAndValidate loads a pipeline file and checks it for errors.
func (l *Loader) LoadAndValidate(path string) (*Pipeline, error) {
	p, err := l.LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := ValidatePipeline(p); err != nil {
		return nil, fmt.Errorf("pipeline validation failed for %s:\n%w", path, err)
	}

	return p, nil
}

// LoadDirectory scans a directory for YAML pipeline files and loads them all.
func (l *Loader) LoadDirectory(dir string) ([]*Pipeline, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline directory: %w", err)
	}

	var pipelines []*Pipeline
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !isYAMLFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		p, err := l.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
		pipelines = append(pipelines, p)
	}

	return pipelines, nil
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
