package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rpggio/inkwell/internal/clock"
	"github.com/rpggio/inkwell/internal/repository"
)

// Service layers naming policy and lifecycle rules on top of the storage
// engine, which itself enforces no uniqueness on names.
type Service struct {
	repo   Repository
	clock  clock.Clock
	logger *slog.Logger

	// createMu serializes default-name allocation; the enumeration and
	// the insert are separate storage operations.
	createMu sync.Mutex
}

// NewService creates a new document service.
func NewService(repo Repository, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, clock: clk, logger: logger}
}

// Create persists a new document so it obtains an id and appears in
// listings before any content exists. An empty name requests a default
// "Document {n}" name.
func (s *Service) Create(ctx context.Context, name string) (*Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.createDefault(ctx)
	}

	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing names: %w", err)
	}
	if nameTaken(names, name) {
		return nil, ErrNameConflict
	}

	return s.persistNew(ctx, name)
}

func (s *Service) createDefault(ctx context.Context) (*Document, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing names: %w", err)
	}
	candidate := nextDefaultName(names)

	// Re-check right before the insert: a concurrent creation may have
	// taken the candidate since the first listing. With no caller-supplied
	// name to disambiguate, fall back to a timestamped name.
	names, err = s.repo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing names: %w", err)
	}
	if nameTaken(names, candidate) {
		candidate = timestampedName(s.clock.Now())
	}

	return s.persistNew(ctx, candidate)
}

func (s *Service) persistNew(ctx context.Context, name string) (*Document, error) {
	doc := &Document{Name: name}
	if _, err := s.repo.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	s.logger.Info("document created", "id", doc.ID, "name", doc.Name)
	return doc, nil
}

// Open loads a document and records the open as a use of it.
func (s *Service) Open(ctx context.Context, id int64) (*Document, error) {
	doc, err := s.repo.Open(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("opening document: %w", err)
	}
	return doc, nil
}

// Get loads a document without touching its recency.
func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}

// Save persists the document's current name and content.
func (s *Service) Save(ctx context.Context, doc *Document) error {
	if doc == nil || !doc.Persisted() {
		return ErrDocumentNotFound
	}
	if _, err := s.repo.Put(ctx, doc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// Rename validates and applies a new name. Renaming to the document's own
// name is a no-op; renaming to another document's exact name is a
// conflict and neither record changes. Renaming never changes the id or
// the creation time.
func (s *Service) Rename(ctx context.Context, id int64, proposed string) (*Document, error) {
	trimmed := strings.TrimSpace(proposed)
	if trimmed == "" {
		return nil, ErrInvalidName
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Name == trimmed {
		return doc, nil
	}

	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing names: %w", err)
	}
	// The document's own name differs from the candidate, so any match
	// belongs to another document.
	if nameTaken(names, trimmed) {
		return nil, ErrNameConflict
	}

	doc.Name = trimmed
	if _, err := s.repo.Put(ctx, doc); err != nil {
		return nil, fmt.Errorf("renaming document: %w", err)
	}
	s.logger.Info("document renamed", "id", doc.ID, "name", doc.Name)
	return doc, nil
}

// Delete removes a document. Deleting an absent id succeeds as a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	s.logger.Info("document deleted", "id", id)
	return nil
}

// Summaries returns listing summaries, most recently updated first.
func (s *Service) Summaries(ctx context.Context) ([]Summary, error) {
	var summaries []Summary
	for doc, err := range s.repo.List(ctx, OrderByUpdated, Descending) {
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, doc.Summary())
	}
	return summaries, nil
}

// Resume returns the most recently opened document, falling back to the
// update time for documents never opened. ErrDocumentNotFound means the
// store is empty.
func (s *Service) Resume(ctx context.Context) (*Document, error) {
	doc, err := s.repo.MostRecent(ctx, OrderByOpened)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("resuming document: %w", err)
	}
	return doc, nil
}
