package config

import (
	"fmt"
	"strings"
)

// ValidationError holds details about a pipeline validation failure.
type ValidationError struct {
	Field   string
	Message string
	Context string
}

func (e ValidationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (in %s)", e.Field, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, "  - "+e.Error())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n%s", len(errs), strings.Join(msgs, "\n"))
}

// HasErrors returns true if there are any validation errors.
func (errs ValidationErrors) HasErrors() bool {
	return len(errs) > 0
}

var knownPhases = []string{PhaseSetup, PhaseProcess, PhaseVerify}

var knownForwards = []string{ForwardNone, ForwardIDs, ForwardVerifyArgs}

// Validate checks a pipeline for errors and returns detailed validation errors.
func Validate(p *Pipeline) ValidationErrors {
	var errs ValidationErrors

	if p.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "pipeline name is required",
		})
	}

	if p.Mapper == "" {
		errs = append(errs, ValidationError{
			Field:   "mapper",
			Message: "camera mapper class is required",
		})
	}

	if len(p.Stages) == 0 {
		errs = append(errs, ValidationError{
			Field:   "stages",
			Message: "at least one stage is required",
		})
	}

	seenNames := make(map[string]bool)

	for i, stage := range p.Stages {
		stageContext := fmt.Sprintf("stage[%d]", i)

		if stage.Name == "" {
			errs = append(errs, ValidationError{
				Field:   "name",
				Message: "stage name is required",
				Context: stageContext,
			})
		} else {
			if seenNames[stage.Name] {
				errs = append(errs, ValidationError{
					Field:   "name",
					Message: fmt.Sprintf("duplicate stage name %q", stage.Name),
					Context: stageContext,
				})
			}
			seenNames[stage.Name] = true
		}

		if stage.Command == "" {
			errs = append(errs, ValidationError{
				Field:   "command",
				Message: "stage command is required",
				Context: stageContext,
			})
		}

		if !contains(knownPhases, stage.Phase) {
			errs = append(errs, ValidationError{
				Field:   "phase",
				Message: fmt.Sprintf("unknown phase %q, known phases: %s", stage.Phase, strings.Join(knownPhases, ", ")),
				Context: stageContext,
			})
		}

		if !contains(knownForwards, stage.Forward) {
			errs = append(errs, ValidationError{
				Field:   "forward",
				Message: fmt.Sprintf("unknown forward mode %q", stage.Forward),
				Context: stageContext,
			})
		}

		if stage.Forward == ForwardVerifyArgs && stage.Phase != PhaseVerify {
			errs = append(errs, ValidationError{
				Field:   "forward",
				Message: "verify-args forwarding is only valid on a verify stage",
				Context: stageContext,
			})
		}
	}

	return errs
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ValidatePipeline is a convenience function returning an error value.
func ValidatePipeline(p *Pipeline) error {
	errs := Validate(p)
	if errs.HasErrors() {
		return errs
	}
	return nil
}
