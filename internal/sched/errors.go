package sched

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is matched by EmptyInputError via errors.Is.
var ErrEmptyInput = errors.New("no processes to schedule")

// InputFormatError reports a malformed or missing field in the input.
type InputFormatError struct {
	Line  int    // 1-based; 0 when the input has no line structure (e.g. JSON)
	Field string // field name, empty when the whole record is wrong
	Err   error
}

func (e *InputFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("line %d: field %s: %v", e.Line, e.Field, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Field != "":
		return fmt.Sprintf("field %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("input format: %v", e.Err)
	}
}

func (e *InputFormatError) Unwrap() error { return e.Err }

// EmptyInputError is returned when a batch has no processes, since every
// average would divide by zero.
type EmptyInputError struct{}

func (EmptyInputError) Error() string { return ErrEmptyInput.Error() }

func (EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

// InvalidConfigError reports a value the simulation cannot run with.
type InvalidConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
