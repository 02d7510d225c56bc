// Package repository defines storage-level sentinel errors shared by
// repository implementations. The repository contract itself is declared
// next to the domain types that use it (document.Repository).
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
