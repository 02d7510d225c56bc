package mcp

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/projection"
)

type documentPayload struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	LastOpened time.Time `json:"last_opened"`
}

func toPayload(doc *document.Document) documentPayload {
	return documentPayload{
		ID:         doc.ID,
		Name:       doc.Name,
		Content:    doc.Content,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
		LastOpened: doc.LastOpened,
	}
}

type listDocumentsParams struct{}

type listDocumentsResult struct {
	Documents []projection.Row `json:"documents"`
}

type readDocumentParams struct {
	ID int64 `json:"id" jsonschema:"document id"`
}

type createDocumentParams struct {
	Name    string `json:"name,omitempty" jsonschema:"display name; omit for a default Document {n} name"`
	Pending string `json:"pending,omitempty" jsonschema:"how to resolve unsaved edits first: save or discard"`
}

type openDocumentParams struct {
	ID      int64  `json:"id" jsonschema:"document id"`
	Pending string `json:"pending,omitempty" jsonschema:"how to resolve unsaved edits first: save or discard"`
}

type editDocumentParams struct {
	Content string `json:"content" jsonschema:"full markdown source replacing the current content"`
}

type editDocumentResult struct {
	ID    int64 `json:"id"`
	Dirty bool  `json:"dirty"`
}

type saveDocumentParams struct{}

type saveDocumentResult struct {
	ID        int64  `json:"id"`
	SaveState string `json:"save_state"`
}

type resumeDocumentParams struct {
	Pending string `json:"pending,omitempty" jsonschema:"how to resolve unsaved edits first: save or discard"`
}

type renameDocumentParams struct {
	ID   int64  `json:"id" jsonschema:"document id"`
	Name string `json:"name" jsonschema:"new display name"`
}

type deleteDocumentParams struct {
	ID int64 `json:"id" jsonschema:"document id"`
}

type deleteDocumentResult struct {
	Deleted bool `json:"deleted"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	docs := cfg.Documents
	ed := cfg.Editor

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_documents",
		Description: "List documents, most recently updated first, annotated with session state",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ listDocumentsParams) (*sdkmcp.CallToolResult, listDocumentsResult, error) {
		summaries, err := docs.Summaries(ctx)
		if err != nil {
			return nil, listDocumentsResult{}, err
		}
		var currentID int64
		if cur, ok := ed.Current(); ok {
			currentID = cur.ID
		}
		rows := projection.Project(summaries, currentID, ed.SaveStates())
		return nil, listDocumentsResult{Documents: rows}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "read_document",
		Description: "Read a document's full markdown source without opening it in the session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, p readDocumentParams) (*sdkmcp.CallToolResult, documentPayload, error) {
		doc, err := docs.Get(ctx, p.ID)
		if err != nil {
			return nil, documentPayload{}, err
		}
		return nil, toPayload(doc), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_document",
		Description: "Create a document and open it in the editing session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, p createDocumentParams) (*sdkmcp.CallToolResult, documentPayload, error) {
		if err := resolvePending(ctx, ed, p.Pending); err != nil {
			return nil, documentPayload{}, err
		}
		doc, err := ed.Create(ctx, p.Name)
		if err != nil {
			return nil, documentPayload{}, err
		}
		return nil, toPayload(doc), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_document",
		Description: "Open a document in the editing session (counts as using it for recency)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, p openDocumentParams) (*sdkmcp.CallToolResult, documentPayload, error) {
		if err := resolvePending(ctx, ed, p.Pending); err != nil {
			return nil, documentPayload{}, err
		}
		doc, err := ed.Open(ctx, p.ID)
		if err != nil {
			return nil, documentPayload{}, err
		}
		return nil, toPayload(doc), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_document",
		Description: "Replace the open document's markdown source; persisted automatically after the quiet period",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, p editDocumentParams) (*sdkmcp.CallToolResult, editDocumentResult, error) {
		if err := ed.ContentChanged(p.Content); err != nil {
			return nil, editDocumentResult{}, err
		}
		cur, _ := ed.Current()
		return nil, editDocumentResult{ID: cur.ID, Dirty: ed.Dirty()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_document",
		Description: "Persist pending edits immediately instead of waiting for the quiet period",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ saveDocumentParams) (*sdkmcp.CallToolResult, saveDocumentResult, error) {
		cur, ok := ed.Current()
		if !ok {
			return nil, saveDocumentResult{}, fmt.Errorf("no document open")
		}
		if err := ed.Flush(ctx); err != nil {
			return nil, saveDocumentResult{}, err
		}
		return nil, saveDocumentResult{
			ID:        cur.ID,
			SaveState: ed.SaveStates()[cur.ID].String(),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resume_document",
		Description: "Open the most recently used document in the editing session",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, p resumeDocumentParams) (*sdkmcp.CallToolResult, documentPayload, error) {
		if err := resolvePending(ctx, ed, p.Pending); err != nil {
			return nil, documentPayload{}, err
		}
		doc, err := docs.Resume(ctx)
		if err != nil {
			return nil, documentPayload{}, err
		}
		opened, err := ed.Open(ctx, doc.ID)
		if err != nil {
			return nil, documentPayload{}, err
		}
		return nil, toPayload(opened), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_document",
		Description: "Rename a document; rejected when another document already uses the name",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, p renameDocumentParams) (*sdkmcp.CallToolResult, documentPayload, error) {
		doc, err := docs.Rename(ctx, p.ID, p.Name)
		if err != nil {
			return nil, documentPayload{}, err
		}
		// Keep the session's cached copy in step, or the next autosave
		// would write the old name back.
		ed.Renamed(doc.ID, doc.Name)
		return nil, toPayload(doc), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_document",
		Description: "Delete a document; deleting an absent id succeeds as a no-op",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, p deleteDocumentParams) (*sdkmcp.CallToolResult, deleteDocumentResult, error) {
		if err := docs.Delete(ctx, p.ID); err != nil {
			return nil, deleteDocumentResult{}, err
		}
		ed.Forget(p.ID)
		return nil, deleteDocumentResult{Deleted: true}, nil
	})
}

// resolvePending applies the caller's decision for unsaved edits before a
// document switch. Without a decision the switch itself reports
// ErrPendingEdits.
func resolvePending(ctx context.Context, ed Editor, decision string) error {
	if !ed.Dirty() {
		return nil
	}
	switch decision {
	case "save":
		return ed.Flush(ctx)
	case "discard":
		ed.Discard()
		return nil
	case "":
		return nil
	default:
		return fmt.Errorf("invalid pending decision %q (want save or discard)", decision)
	}
}
