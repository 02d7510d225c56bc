package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/rpggio/inkwell/internal/clock"
	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/repository"
)

// DocumentRepository implements document.Repository for SQLite.
type DocumentRepository struct {
	db    *DB
	clock clock.Clock
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db *DB, clk clock.Clock) *DocumentRepository {
	if clk == nil {
		clk = clock.System{}
	}
	return &DocumentRepository{db: db, clock: clk}
}

const documentColumns = "id, name, content, created_at, updated_at, last_opened"

// Put persists the document. An unset id requests a new identity from the
// engine; AUTOINCREMENT guarantees ids are strictly increasing and never
// reused, including across deletes. Every put stamps updated_at; a NULL
// last_opened is seeded to the same instant. The row and its index
// entries commit as one transaction, so a failure leaves the previous
// state unchanged.
func (r *DocumentRepository) Put(ctx context.Context, doc *document.Document) (int64, error) {
	now := r.clock.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if !doc.Persisted() {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO documents (name, content, created_at, updated_at, last_opened)
			 VALUES (?, ?, ?, ?, ?)`,
			doc.Name, doc.Content, now, now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert document: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to read inserted id: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return 0, fmt.Errorf("failed to commit insert: %w", err)
		}
		doc.ID = id
		doc.CreatedAt = now
		doc.UpdatedAt = now
		doc.LastOpened = now
		return id, nil
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE documents
		 SET name = ?, content = ?, updated_at = ?,
		     last_opened = COALESCE(last_opened, ?)
		 WHERE id = ?`,
		doc.Name, doc.Content, now, now, doc.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return 0, repository.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit update: %w", err)
	}
	doc.UpdatedAt = now
	if doc.LastOpened.IsZero() {
		doc.LastOpened = now
	}
	return doc.ID, nil
}

// Get retrieves a document without touching its recency.
func (r *DocumentRepository) Get(ctx context.Context, id int64) (*document.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row.Scan)
}

// Open retrieves a document and records the open by advancing
// last_opened in the same transaction. The touch never alters updated_at.
func (r *DocumentRepository) Open(ctx context.Context, id int64) (*document.Document, error) {
	now := r.clock.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row.Scan)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET last_opened = ? WHERE id = ?`, now, id); err != nil {
		return nil, fmt.Errorf("failed to touch document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit open: %w", err)
	}
	doc.LastOpened = now
	return doc, nil
}

// Delete removes the document and its index entries. Deleting an absent
// id is a no-op success: callers cannot distinguish "already gone" from
// "never existed" usefully.
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// List returns a lazy, finite, restartable sequence over the chosen
// secondary index. Each range over the sequence re-runs the query against
// the current index state.
func (r *DocumentRepository) List(ctx context.Context, order document.Order, dir document.Direction) iter.Seq2[document.Document, error] {
	direction := orderDirection(dir)
	query := fmt.Sprintf(
		`SELECT %s FROM documents ORDER BY %s %s, id %s`,
		documentColumns, orderColumn(order), direction, direction,
	)
	return func(yield func(document.Document, error) bool) {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			yield(document.Document{}, fmt.Errorf("failed to list documents: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			doc, err := scanDocument(rows.Scan)
			if err != nil {
				yield(document.Document{}, err)
				return
			}
			if !yield(*doc, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(document.Document{}, fmt.Errorf("error iterating documents: %w", err))
		}
	}
}

// MostRecent returns the single document with the greatest value of the
// chosen index, or repository.ErrNotFound for an empty store.
func (r *DocumentRepository) MostRecent(ctx context.Context, order document.Order) (*document.Document, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM documents ORDER BY %s DESC, id DESC LIMIT 1`,
		documentColumns, orderColumn(order),
	)
	row := r.db.QueryRowContext(ctx, query)
	return scanDocument(row.Scan)
}

// Names returns the names of all stored documents.
func (r *DocumentRepository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("failed to list names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating names: %w", err)
	}
	return names, nil
}

func orderColumn(order document.Order) string {
	switch order {
	case document.OrderByName:
		return "name"
	case document.OrderByOpened:
		// Documents never opened fall back to their update time.
		return "COALESCE(last_opened, updated_at)"
	default:
		return "updated_at"
	}
}

func orderDirection(dir document.Direction) string {
	if dir == document.Ascending {
		return "ASC"
	}
	return "DESC"
}

func scanDocument(scan func(dest ...any) error) (*document.Document, error) {
	var doc document.Document
	var opened sql.NullTime
	err := scan(&doc.ID, &doc.Name, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt, &opened)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	if opened.Valid {
		doc.LastOpened = opened.Time
	} else {
		doc.LastOpened = doc.UpdatedAt
	}
	return &doc, nil
}
