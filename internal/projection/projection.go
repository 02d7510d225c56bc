// Package projection derives display-ready document lists. It is a pure
// view over data the store and the editing session produce: it holds no
// state of its own, and callers recompute it after every mutation.
package projection

import (
	"sort"
	"time"

	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/domain/editor"
)

// Row is one display entry.
type Row struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	UpdatedAt time.Time        `json:"updated_at"`
	IsCurrent bool             `json:"is_current"`
	SaveState editor.SaveState `json:"save_state"`
}

// Project orders summaries most-recently-updated first and annotates each
// with session state. saveStates is read as a snapshot, never mutated;
// ids with no entry project as idle.
func Project(docs []document.Summary, currentID int64, saveStates map[int64]editor.SaveState) []Row {
	rows := make([]Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, Row{
			ID:        d.ID,
			Name:      d.Name,
			UpdatedAt: d.UpdatedAt,
			IsCurrent: d.ID == currentID,
			SaveState: saveStates[d.ID],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
	})
	return rows
}
