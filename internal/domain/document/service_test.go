package document_test

import (
	"context"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/repository"
	"github.com/rpggio/inkwell/internal/repository/mocks"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func expectPut(repo *mocks.DocumentRepository, id int64) *mock.Call {
	return repo.On("Put", mock.Anything, mock.AnythingOfType("*document.Document")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*document.Document).ID = id
		}).
		Return(id, nil)
}

func TestCreateWithExplicitName(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("Names", mock.Anything).Return([]string{"Other"}, nil)
	expectPut(repo, 1)

	svc := document.NewService(repo, nil, nil)
	doc, err := svc.Create(context.Background(), "Groceries")
	require.NoError(t, err)
	require.Equal(t, int64(1), doc.ID)
	require.Equal(t, "Groceries", doc.Name)
	repo.AssertExpectations(t)
}

func TestCreateExplicitNameConflict(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("Names", mock.Anything).Return([]string{"Groceries"}, nil)

	svc := document.NewService(repo, nil, nil)
	_, err := svc.Create(context.Background(), "Groceries")
	require.ErrorIs(t, err, document.ErrNameConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreateDefaultNameFillsGap(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("Names", mock.Anything).Return([]string{"Document 1", "Document 3"}, nil)
	expectPut(repo, 4)

	svc := document.NewService(repo, nil, nil)
	doc, err := svc.Create(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "Document 2", doc.Name)
}

func TestCreateDefaultNameRaceFallsBackToTimestamp(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	// The candidate probed from the first listing is taken by the time of
	// the pre-insert re-check.
	repo.On("Names", mock.Anything).Return([]string{}, nil).Once()
	repo.On("Names", mock.Anything).Return([]string{"Document 1"}, nil).Once()
	expectPut(repo, 2)

	now := time.Date(2026, 3, 14, 15, 9, 26, 535_000_000, time.UTC)
	svc := document.NewService(repo, fixedClock{t: now}, nil)

	doc, err := svc.Create(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "Document 2026-03-14 15:09:26.535", doc.Name)
}

func TestRenameNoOpForSameName(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("Get", mock.Anything, int64(1)).
		Return(&document.Document{ID: 1, Name: "Notes"}, nil)

	svc := document.NewService(repo, nil, nil)
	doc, err := svc.Rename(context.Background(), 1, "  Notes  ")
	require.NoError(t, err)
	require.Equal(t, "Notes", doc.Name)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRenameConflict(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("Get", mock.Anything, int64(1)).
		Return(&document.Document{ID: 1, Name: "Notes"}, nil)
	repo.On("Names", mock.Anything).Return([]string{"Notes", "Groceries"}, nil)

	svc := document.NewService(repo, nil, nil)
	_, err := svc.Rename(context.Background(), 1, "Groceries")
	require.ErrorIs(t, err, document.ErrNameConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRenameCaseDiffersIsNotAConflict(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("Get", mock.Anything, int64(1)).
		Return(&document.Document{ID: 1, Name: "Notes"}, nil)
	repo.On("Names", mock.Anything).Return([]string{"Notes", "groceries"}, nil)
	expectPut(repo, 1)

	svc := document.NewService(repo, nil, nil)
	doc, err := svc.Rename(context.Background(), 1, "Groceries")
	require.NoError(t, err)
	require.Equal(t, "Groceries", doc.Name)
}

func TestRenameRejectsBlankNames(t *testing.T) {
	svc := document.NewService(new(mocks.DocumentRepository), nil, nil)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Rename(context.Background(), 1, name)
		require.ErrorIs(t, err, document.ErrInvalidName)
	}
}

func TestSaveRequiresPersistedDocument(t *testing.T) {
	svc := document.NewService(new(mocks.DocumentRepository), nil, nil)

	err := svc.Save(context.Background(), &document.Document{Name: "unsaved"})
	require.ErrorIs(t, err, document.ErrDocumentNotFound)
	err = svc.Save(context.Background(), nil)
	require.ErrorIs(t, err, document.ErrDocumentNotFound)
}

func TestOpenMapsNotFound(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("Open", mock.Anything, int64(7)).Return(nil, repository.ErrNotFound)

	svc := document.NewService(repo, nil, nil)
	_, err := svc.Open(context.Background(), 7)
	require.ErrorIs(t, err, document.ErrDocumentNotFound)
}

func TestSummaries(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("List", mock.Anything, document.OrderByUpdated, document.Descending).
		Return(mocks.Docs(
			document.Document{ID: 2, Name: "newer"},
			document.Document{ID: 1, Name: "older"},
		))

	svc := document.NewService(repo, nil, nil)
	summaries, err := svc.Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "newer", summaries[0].Name)
}

func TestResumeEmptyStore(t *testing.T) {
	repo := new(mocks.DocumentRepository)
	repo.On("MostRecent", mock.Anything, document.OrderByOpened).
		Return(nil, repository.ErrNotFound)

	svc := document.NewService(repo, nil, nil)
	_, err := svc.Resume(context.Background())
	require.ErrorIs(t, err, document.ErrDocumentNotFound)
}

// namesRepo is an in-memory repository recording just enough to exercise
// default-name allocation under concurrency.
type namesRepo struct {
	mu    sync.Mutex
	names []string
	next  int64
}

func (r *namesRepo) Put(ctx context.Context, doc *document.Document) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	doc.ID = r.next
	r.names = append(r.names, doc.Name)
	return doc.ID, nil
}

func (r *namesRepo) Names(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...), nil
}

func (r *namesRepo) Get(ctx context.Context, id int64) (*document.Document, error) {
	return nil, repository.ErrNotFound
}

func (r *namesRepo) Open(ctx context.Context, id int64) (*document.Document, error) {
	return nil, repository.ErrNotFound
}

func (r *namesRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r *namesRepo) List(ctx context.Context, order document.Order, dir document.Direction) iter.Seq2[document.Document, error] {
	return func(yield func(document.Document, error) bool) {}
}

func (r *namesRepo) MostRecent(ctx context.Context, order document.Order) (*document.Document, error) {
	return nil, repository.ErrNotFound
}

func TestConcurrentDefaultCreatesGetDistinctNames(t *testing.T) {
	repo := &namesRepo{}
	svc := document.NewService(repo, nil, nil)

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	names, err := repo.Names(context.Background())
	require.NoError(t, err)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		require.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
	}
	require.Len(t, names, n)
}
