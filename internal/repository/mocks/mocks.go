package mocks

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/inkwell/internal/domain/document"
)

// DocumentRepository is a mock for document.Repository.
type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Put(ctx context.Context, doc *document.Document) (int64, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DocumentRepository) Get(ctx context.Context, id int64) (*document.Document, error) {
	args := m.Called(ctx, id)
	if doc, ok := args.Get(0).(*document.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) Open(ctx context.Context, id int64) (*document.Document, error) {
	args := m.Called(ctx, id)
	if doc, ok := args.Get(0).(*document.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DocumentRepository) List(ctx context.Context, order document.Order, dir document.Direction) iter.Seq2[document.Document, error] {
	args := m.Called(ctx, order, dir)
	if seq, ok := args.Get(0).(iter.Seq2[document.Document, error]); ok {
		return seq
	}
	return func(yield func(document.Document, error) bool) {}
}

func (m *DocumentRepository) MostRecent(ctx context.Context, order document.Order) (*document.Document, error) {
	args := m.Called(ctx, order)
	if doc, ok := args.Get(0).(*document.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) Names(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

// Docs is a convenience for building List sequences in tests.
func Docs(docs ...document.Document) iter.Seq2[document.Document, error] {
	return func(yield func(document.Document, error) bool) {
		for _, doc := range docs {
			if !yield(doc, nil) {
				return
			}
		}
	}
}
