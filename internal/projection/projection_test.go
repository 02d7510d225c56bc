package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/domain/editor"
)

func TestProjectOrdersByUpdatedDescending(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	docs := []document.Summary{
		{ID: 1, Name: "oldest", UpdatedAt: base},
		{ID: 3, Name: "newest", UpdatedAt: base.Add(2 * time.Minute)},
		{ID: 2, Name: "middle", UpdatedAt: base.Add(time.Minute)},
	}

	rows := Project(docs, 0, nil)
	require.Equal(t, []string{"newest", "middle", "oldest"},
		[]string{rows[0].Name, rows[1].Name, rows[2].Name})
}

func TestProjectBreaksTiesByNewerID(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	docs := []document.Summary{
		{ID: 1, Name: "a", UpdatedAt: at},
		{ID: 2, Name: "b", UpdatedAt: at},
	}

	rows := Project(docs, 0, nil)
	require.Equal(t, int64(2), rows[0].ID)
	require.Equal(t, int64(1), rows[1].ID)
}

func TestProjectAnnotatesSessionState(t *testing.T) {
	docs := []document.Summary{
		{ID: 1, Name: "current", UpdatedAt: time.Now()},
		{ID: 2, Name: "other", UpdatedAt: time.Now().Add(-time.Hour)},
	}
	states := map[int64]editor.SaveState{1: editor.StateSaving}

	rows := Project(docs, 1, states)
	require.True(t, rows[0].IsCurrent)
	require.Equal(t, editor.StateSaving, rows[0].SaveState)
	require.False(t, rows[1].IsCurrent)
	// Missing entries project as idle.
	require.Equal(t, editor.StateIdle, rows[1].SaveState)
}

func TestProjectEmpty(t *testing.T) {
	require.Empty(t, Project(nil, 0, nil))
}
