package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/repository"
)

// stepClock advances one millisecond per reading, so every stamped
// timestamp in a test is distinct and ordered.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func newTestRepo(t *testing.T) *DocumentRepository {
	t.Helper()
	return NewDocumentRepository(newTestDB(t), newStepClock())
}

func mustCreate(t *testing.T, repo *DocumentRepository, name string) *document.Document {
	t.Helper()
	doc := &document.Document{Name: name}
	_, err := repo.Put(context.Background(), doc)
	require.NoError(t, err)
	return doc
}

func TestPutAssignsIncreasingIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "first")
	second := mustCreate(t, repo, "second")
	require.Greater(t, second.ID, first.ID)

	// An id is never reused, even after the highest row is deleted.
	require.NoError(t, repo.Delete(ctx, second.ID))
	third := mustCreate(t, repo, "third")
	require.Greater(t, third.ID, second.ID)
}

func TestPutStampsTimestamps(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := mustCreate(t, repo, "notes")
	require.False(t, doc.CreatedAt.IsZero())
	require.True(t, doc.UpdatedAt.Equal(doc.CreatedAt))
	require.True(t, doc.LastOpened.Equal(doc.CreatedAt))

	created := doc.CreatedAt
	doc.Content = "# hello"
	_, err := repo.Put(ctx, doc)
	require.NoError(t, err)
	require.True(t, doc.UpdatedAt.After(created))

	stored, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "# hello", stored.Content)
	require.WithinDuration(t, created, stored.CreatedAt, time.Millisecond/2)
	require.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestPutUpdateMissingDocument(t *testing.T) {
	repo := newTestRepo(t)

	doc := &document.Document{ID: 999, Name: "ghost"}
	_, err := repo.Put(context.Background(), doc)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOpenTouchesRecencyOnly(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := mustCreate(t, repo, "notes")
	updated := doc.UpdatedAt

	opened, err := repo.Open(ctx, doc.ID)
	require.NoError(t, err)
	require.True(t, opened.LastOpened.After(doc.LastOpened))

	stored, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.WithinDuration(t, updated, stored.UpdatedAt, time.Millisecond/2)
	require.True(t, stored.LastOpened.After(stored.UpdatedAt))
}

func TestOpenMissingDocument(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Open(context.Background(), 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetDoesNotTouchRecency(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := mustCreate(t, repo, "notes")
	opened := doc.LastOpened

	_, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)

	stored, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.WithinDuration(t, opened, stored.LastOpened, time.Millisecond/2)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := mustCreate(t, repo, "notes")
	require.NoError(t, repo.Delete(ctx, doc.ID))
	require.NoError(t, repo.Delete(ctx, doc.ID))
	require.NoError(t, repo.Delete(ctx, 12345))

	_, err := repo.Get(ctx, doc.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func collect(t *testing.T, repo *DocumentRepository, order document.Order, dir document.Direction) []string {
	t.Helper()
	var names []string
	for doc, err := range repo.List(context.Background(), order, dir) {
		require.NoError(t, err)
		names = append(names, doc.Name)
	}
	return names
}

func TestListOrderings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, "banana")
	apple := mustCreate(t, repo, "apple")
	mustCreate(t, repo, "cherry")

	require.Equal(t, []string{"apple", "banana", "cherry"},
		collect(t, repo, document.OrderByName, document.Ascending))

	// cherry has the latest update, then apple after an edit.
	apple.Content = "edited"
	_, err := repo.Put(ctx, apple)
	require.NoError(t, err)

	require.Equal(t, []string{"apple", "cherry", "banana"},
		collect(t, repo, document.OrderByUpdated, document.Descending))
}

func TestListIsRestartable(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, "one")
	seq := repo.List(context.Background(), document.OrderByName, document.Ascending)

	require.Equal(t, 1, countDocs(t, seq))

	// A second range re-runs the query and sees later writes.
	mustCreate(t, repo, "two")
	require.Equal(t, 2, countDocs(t, seq))
}

func countDocs(t *testing.T, seq func(func(document.Document, error) bool)) int {
	t.Helper()
	n := 0
	for _, err := range seq {
		require.NoError(t, err)
		n++
	}
	return n
}

func TestListEarlyStop(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, "one")
	mustCreate(t, repo, "two")

	n := 0
	for _, err := range repo.List(context.Background(), document.OrderByName, document.Ascending) {
		require.NoError(t, err)
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestMostRecentEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.MostRecent(context.Background(), document.OrderByOpened)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMostRecentByOpened(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "first")
	mustCreate(t, repo, "second")

	// Opening the older document makes it the most recently used one.
	_, err := repo.Open(ctx, first.ID)
	require.NoError(t, err)

	recent, err := repo.MostRecent(ctx, document.OrderByOpened)
	require.NoError(t, err)
	require.Equal(t, first.ID, recent.ID)
}

func TestNames(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, "alpha")
	mustCreate(t, repo, "beta")

	names, err := repo.Names(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"alpha", "beta"}, names)
}
