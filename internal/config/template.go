package config

import (
	"bytes"
	"fmt"
	"text/template"
)

// DefaultPipelineOptions controls the generated starter pipeline.
type DefaultPipelineOptions struct {
	Name   string
	Mapper string
}

const defaultPipelineTemplate = `name: {{.Name}}
description: Ingest, process and verify a small validation dataset
mapper: {{.Mapper}}
stages:
  - name: ingest
    phase: setup
    command: ingestImages.py
    args:
      - ${SKYRUN_WORKSPACE}
      - ${VALIDATION_DATA_DIR}/raw/*.fits
      - --mode
      - link
    produces:
      - ${SKYRUN_WORKSPACE}/registry.sqlite3
  - name: single-frame
    phase: process
    command: singleFrameDriver.py
    forward: ids
    args:
      - --batch-type
      - none
      - ${SKYRUN_WORKSPACE}
      - --rerun
      - ${SKYRUN_RERUN}
      - --job
      - single-frame
      - --cores
      - ${SKYRUN_CORES}
      - --id
    produces:
      - ${SKYRUN_WORKSPACE}/rerun/${SKYRUN_RERUN}
  - name: sky-map
    phase: process
    command: makeSkyMap.py
    args:
      - ${SKYRUN_WORKSPACE}
      - --rerun
      - ${SKYRUN_RERUN}
  - name: verify
    phase: verify
    command: validateDrp.py
    forward: verify-args
    args:
      - ${SKYRUN_WORKSPACE}/rerun/${SKYRUN_RERUN}
      - --verbose
`

// RenderDefaultPipeline produces the starter pipeline YAML. It is written
// by "skyrun init" and used as the fallback definition when no pipeline
// file exists in the workspace.
func RenderDefaultPipeline(opts DefaultPipelineOptions) (string, error) {
	if opts.Name == "" {
		opts.Name = "validation-pipeline"
	}
	if opts.Mapper == "" {
		opts.Mapper = "lsst.obs.hsc.HscMapper"
	}

	tmpl, err := template.New("pipeline").Parse(defaultPipelineTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse pipeline template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts); err != nil {
		return "", fmt.Errorf("failed to render pipeline template: %w", err)
	}

	return buf.String(), nil
}
