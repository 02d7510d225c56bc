package editor

import "errors"

var (
	// ErrPendingEdits indicates the current document has unsaved edits
	// that must be flushed or discarded before switching documents.
	ErrPendingEdits = errors.New("unsaved edits on current document")
	// ErrNoDocument indicates no document is open in the session.
	ErrNoDocument = errors.New("no document open")
)
