package document

import (
	"context"
	"iter"
)

// Repository provides persistence for documents.
type Repository interface {
	Put(ctx context.Context, doc *Document) (int64, error)
	Get(ctx context.Context, id int64) (*Document, error)
	Open(ctx context.Context, id int64) (*Document, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, order Order, dir Direction) iter.Seq2[Document, error]
	MostRecent(ctx context.Context, order Order) (*Document, error)
	Names(ctx context.Context) ([]string, error)
}
