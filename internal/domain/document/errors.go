package document

import "errors"

var (
	// ErrDocumentNotFound indicates the document doesn't exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNameConflict indicates another document already uses the name.
	ErrNameConflict = errors.New("document name already in use")
	// ErrInvalidName indicates an empty or whitespace-only name.
	ErrInvalidName = errors.New("document name is empty")
)
