package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions.
// Each batch run either completes or surfaces one of these immediately;
// there is no retry or partial-recovery path.
var (
	// ErrLoad covers missing or malformed input files.
	ErrLoad = errors.New("load failed")

	// ErrSchema covers absent columns, wrong column types, and label
	// values outside the permitted literals.
	ErrSchema = errors.New("schema violation")

	// ErrPersistence covers unwritable output paths and failed artifact writes.
	ErrPersistence = errors.New("persistence failed")

	// ErrGeneration covers invalid generator configuration.
	ErrGeneration = errors.New("generation failed")
)

// Error constructors with context

func NewLoadError(path string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoad, path, cause)
	}
	return fmt.Errorf("%w: %s", ErrLoad, path)
}

func NewSchemaError(column string, reason string) error {
	return fmt.Errorf("%w: column %q: %s", ErrSchema, column, reason)
}

func NewPersistenceError(path string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistence, path, cause)
	}
	return fmt.Errorf("%w: %s", ErrPersistence, path)
}

func NewGenerationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrGeneration, reason)
}

// Error checking helpers

func IsLoadError(err error) bool {
	return errors.Is(err, ErrLoad)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func IsGenerationError(err error) bool {
	return errors.Is(err, ErrGeneration)
}
