package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidTransition is matched by every TransitionError
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrOverlapConflict is returned when a confirmation would double-book the schedule
	ErrOverlapConflict = errors.New("requested time overlaps with an existing booking slot")

	// ErrBlackoutConflict is returned when a confirmation falls inside a blackout period
	ErrBlackoutConflict = errors.New("requested time falls inside a blackout period")
)

// ValidationError collects field-keyed messages about rejected input
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// FieldError is a shortcut for a ValidationError with a single field
func FieldError(field, msg string) *ValidationError {
	e := NewValidationError()
	e.Add(field, msg)
	return e
}

// Add records msg for field. The first message for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns e as an error, or nil when no field was rejected
func (e *ValidationError) ErrOrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// TransitionError reports a status change that the state machine does not allow
type TransitionError struct {
	Action string // confirmed, declined, ...
	From   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking cannot be %s from status %s", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
