package entities

import "fmt"

// ValidationFailure enumerates the ways a record can fail validation
type ValidationFailure string

// Validation failures
const (
	FailureMissing     ValidationFailure = "missing"
	FailureInvalidEnum ValidationFailure = "invalid_enum"
	FailureOutOfRange  ValidationFailure = "out_of_range"
)

// ValidationError describes why a record was rejected before being written
type ValidationError struct {
	Entity  string
	Field   string
	Failure ValidationFailure
	Detail  string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s %s", e.Entity, e.Field, e.Detail)
	}
	return fmt.Sprintf("%s %s is required", e.Entity, e.Field)
}

func missing(entity, field string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Failure: FailureMissing}
}
