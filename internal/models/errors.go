package models

import (
	"errors"
	"fmt"
)

// Domain error kinds. Handlers map these onto HTTP status codes; every one
// of them is recoverable at the caller.
var (
	// ErrValidation covers malformed input fields.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate covers uniqueness-key collisions in a directory.
	ErrDuplicate = errors.New("duplicate record")

	// ErrNotFound covers directory lookups that matched nothing.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReading rejects a reading not greater than the current one.
	ErrInvalidReading = errors.New("invalid meter reading")

	// ErrInvalidPrice rejects a non-positive price per unit.
	ErrInvalidPrice = errors.New("invalid price per unit")

	// ErrInvalidReadingState flags a reading pair with negative consumption.
	ErrInvalidReadingState = errors.New("invalid reading state")

	// ErrMeterMismatch rejects a payment claiming the wrong meter code.
	ErrMeterMismatch = errors.New("meter code mismatch")

	// ErrNoBalance rejects a payment when nothing is owed.
	ErrNoBalance = errors.New("no outstanding balance")

	// ErrAmountMismatch rejects a payment that is not the exact balance due.
	ErrAmountMismatch = errors.New("payment amount mismatch")

	// ErrAlreadyRegistered rejects reuse of a consumed registration draft.
	ErrAlreadyRegistered = errors.New("customer already registered")
)

// ValidationError reports a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateError reports a uniqueness-key collision.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s '%s' already exists", e.Entity, e.Field, e.Value)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

func NewDuplicateError(entity, field, value string) *DuplicateError {
	return &DuplicateError{Entity: entity, Field: field, Value: value}
}

// NotFoundError reports a failed directory lookup.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}
