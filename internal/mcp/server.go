// Package mcp exposes the document store and the editing session as MCP
// tools over stdio, for an agent-driven editing surface.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/domain/editor"
)

// DocumentService defines the document operations exposed as tools.
type DocumentService interface {
	Get(ctx context.Context, id int64) (*document.Document, error)
	Rename(ctx context.Context, id int64, name string) (*document.Document, error)
	Delete(ctx context.Context, id int64) error
	Summaries(ctx context.Context) ([]document.Summary, error)
	Resume(ctx context.Context) (*document.Document, error)
}

// Editor defines the session operations exposed as tools.
type Editor interface {
	Open(ctx context.Context, id int64) (*document.Document, error)
	Create(ctx context.Context, name string) (*document.Document, error)
	ContentChanged(markdown string) error
	Flush(ctx context.Context) error
	Discard()
	Renamed(id int64, name string)
	Forget(id int64)
	Current() (document.Document, bool)
	Dirty() bool
	SaveStates() map[int64]editor.SaveState
}

// Config contains server configuration.
type Config struct {
	Documents DocumentService
	Editor    Editor
	Logger    *slog.Logger
}

const serverInstructions = `Inkwell is a local-first markdown document store with one editing
session. Open a document before editing it. edit_document replaces the
full markdown source and persists automatically after a quiet period;
use save_document to force the write. While unsaved edits are pending,
open_document and create_document require a "pending" decision of
"save" or "discard".`

// NewServer creates an MCP server exposing all document and session tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "inkwell",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg)

	return server
}
