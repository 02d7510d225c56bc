package editor

import "encoding/json"

// SaveState reflects autosave progress for a document, for UI feedback.
type SaveState int

const (
	// StateIdle means no save is pending or in progress.
	StateIdle SaveState = iota
	// StateSaving means a write is in flight.
	StateSaving
	// StateSaved means the last write succeeded; the state reverts to
	// idle after a fixed settle delay with no further write.
	StateSaved
)

func (s SaveState) String() string {
	switch s {
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	default:
		return "idle"
	}
}

func (s SaveState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
