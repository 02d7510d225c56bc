package clock

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so persistence logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System returns the actual current time in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.NewString() }
