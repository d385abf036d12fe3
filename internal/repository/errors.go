// Package repository holds the sentinel errors shared by every storage
// backend the domain layer can be wired to.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness or optimistic-concurrency
	// check fails at the storage layer.
	ErrConflict = errors.New("conflict: row was modified or already exists")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
