package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextDefaultName(t *testing.T) {
	tests := []struct {
		name  string
		taken []string
		want  string
	}{
		{
			name:  "empty store",
			taken: nil,
			want:  "Document 1",
		},
		{
			name:  "first taken",
			taken: []string{"Document 1"},
			want:  "Document 2",
		},
		{
			name:  "gap is reused",
			taken: []string{"Document 1", "Document 3"},
			want:  "Document 2",
		},
		{
			name:  "unrelated names ignored",
			taken: []string{"Groceries", "Meeting notes"},
			want:  "Document 1",
		},
		{
			name:  "near miss is not taken",
			taken: []string{"Document 1 (copy)", "document 1"},
			want:  "Document 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, nextDefaultName(tt.taken))
		})
	}
}

func TestTimestampedName(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)
	require.Equal(t, "Document 2026-03-14 15:09:26.535", timestampedName(now))
}
