package document

import "time"

// Document is a markdown document. The content is an opaque blob to the
// storage layer; identity is assigned by the storage engine on first
// persist and never changes afterwards.
type Document struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	LastOpened time.Time `json:"last_opened"`
}

// Persisted reports whether the document has been stored at least once.
// A document without an id is not listable.
func (d *Document) Persisted() bool { return d.ID != 0 }

// Summary is a lightweight representation for listing.
type Summary struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	UpdatedAt  time.Time `json:"updated_at"`
	LastOpened time.Time `json:"last_opened"`
}

// Summary returns the listing view of the document.
func (d Document) Summary() Summary {
	return Summary{
		ID:         d.ID,
		Name:       d.Name,
		UpdatedAt:  d.UpdatedAt,
		LastOpened: d.LastOpened,
	}
}

// Order selects a secondary index for listing.
type Order string

const (
	OrderByName    Order = "name"
	OrderByUpdated Order = "updated_at"
	OrderByOpened  Order = "last_opened"
)

// Direction is a listing direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// DefaultDirection is ascending for the name index and descending
// (most recent first) for the time-based indices.
func (o Order) DefaultDirection() Direction {
	if o == OrderByName {
		return Ascending
	}
	return Descending
}
