package editor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/inkwell/internal/clock"
	"github.com/rpggio/inkwell/internal/domain/document"
)

const (
	// DefaultQuiet is the debounce window: edit notifications arriving
	// within it collapse into a single persist carrying the latest
	// snapshot.
	DefaultQuiet = time.Second
	// DefaultSettle is how long a document reports "saved" before
	// automatically reverting to idle.
	DefaultSettle = 2 * time.Second
)

// Documents is the slice of the document service the coordinator needs.
type Documents interface {
	Open(ctx context.Context, id int64) (*document.Document, error)
	Create(ctx context.Context, name string) (*document.Document, error)
	Save(ctx context.Context, doc *document.Document) error
}

// Coordinator owns the editing session: the current document, the dirty
// flag, and the per-document save state. It debounces edit notifications
// into single writes and guarantees at most one in-flight write per
// document id.
type Coordinator struct {
	docs   Documents
	logger *slog.Logger
	idgen  clock.IDGenerator

	quiet  time.Duration
	settle time.Duration
	notify func()

	mu        sync.Mutex
	sessionID string
	current   *document.Document
	dirty     bool
	pending   string
	states    map[int64]SaveState
	debounce  *time.Timer
	revert    *time.Timer
	inflight  map[int64]chan struct{}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithQuiet overrides the debounce window.
func WithQuiet(d time.Duration) Option {
	return func(c *Coordinator) { c.quiet = d }
}

// WithSettle overrides the saved-to-idle settle delay.
func WithSettle(d time.Duration) Option {
	return func(c *Coordinator) { c.settle = d }
}

// WithNotify registers a callback invoked after every session state
// change, so a view can recompute its list projection.
func WithNotify(fn func()) Option {
	return func(c *Coordinator) { c.notify = fn }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(gen clock.IDGenerator) Option {
	return func(c *Coordinator) { c.idgen = gen }
}

// New creates a coordinator for one editing session.
func New(docs Documents, logger *slog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		docs:     docs,
		logger:   logger,
		idgen:    clock.UUIDGenerator{},
		quiet:    DefaultQuiet,
		settle:   DefaultSettle,
		states:   make(map[int64]SaveState),
		inflight: make(map[int64]chan struct{}),
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sessionID = c.idgen.New()
	c.logger = c.logger.With("editing_session", c.sessionID)
	return c
}

// SessionID identifies this editing session in logs.
func (c *Coordinator) SessionID() string { return c.sessionID }

// Current returns a copy of the open document, if any.
func (c *Coordinator) Current() (document.Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return document.Document{}, false
	}
	return *c.current, true
}

// Dirty reports whether the current document has unsaved edits.
func (c *Coordinator) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// StateOf returns the save state for a document id.
func (c *Coordinator) StateOf(id int64) SaveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[id]
}

// SaveStates returns a snapshot of all save states.
func (c *Coordinator) SaveStates() map[int64]SaveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make(map[int64]SaveState, len(c.states))
	for id, state := range c.states {
		snapshot[id] = state
	}
	return snapshot
}

// Open loads a document into the session. While unsaved edits are pending
// on the current document the switch is refused with ErrPendingEdits; the
// caller resolves that with Flush or Discard first, so edits are never
// silently lost or attributed to the wrong document.
func (c *Coordinator) Open(ctx context.Context, id int64) (*document.Document, error) {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return nil, ErrPendingEdits
	}
	if c.current != nil && c.current.ID == id {
		doc := *c.current
		c.mu.Unlock()
		return &doc, nil
	}
	c.stopTimersLocked()
	c.mu.Unlock()

	doc, err := c.docs.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	c.adopt(doc)
	out := *doc
	return &out, nil
}

// Create makes a new document and opens it. The flush-then-switch rule
// applies the same as for Open.
func (c *Coordinator) Create(ctx context.Context, name string) (*document.Document, error) {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return nil, ErrPendingEdits
	}
	c.stopTimersLocked()
	c.mu.Unlock()

	doc, err := c.docs.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	c.adopt(doc)
	out := *doc
	return &out, nil
}

func (c *Coordinator) adopt(doc *document.Document) {
	c.mu.Lock()
	c.current = doc
	c.dirty = false
	c.pending = ""
	c.states[doc.ID] = StateIdle
	c.mu.Unlock()
	c.notifyChanged()
}

// ContentChanged records the latest editor snapshot and restarts the
// quiet window (trailing-edge debounce). The latest snapshot wins.
func (c *Coordinator) ContentChanged(markdown string) error {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return ErrNoDocument
	}
	c.pending = markdown
	c.dirty = true
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.quiet, c.autosave)
	c.mu.Unlock()
	return nil
}

// Flush cancels any pending debounce timer and persists the outstanding
// edit immediately. The timer and a forced flush never both fire for the
// same pending edit.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.mu.Unlock()
	return c.save(ctx)
}

// Discard drops the pending edit without persisting it.
func (c *Coordinator) Discard() {
	c.mu.Lock()
	c.stopTimersLocked()
	c.dirty = false
	c.pending = ""
	if c.current != nil {
		c.states[c.current.ID] = StateIdle
	}
	c.mu.Unlock()
	c.notifyChanged()
}

// Renamed updates the session's cached copy after a rename performed
// outside the session. Without it the next write would snapshot the
// stale name and silently restore it.
func (c *Coordinator) Renamed(id int64, name string) {
	c.mu.Lock()
	if c.current == nil || c.current.ID != id {
		c.mu.Unlock()
		return
	}
	c.current.Name = name
	c.mu.Unlock()
	c.notifyChanged()
}

// Forget clears session state for a deleted document.
func (c *Coordinator) Forget(id int64) {
	c.mu.Lock()
	delete(c.states, id)
	if c.current != nil && c.current.ID == id {
		c.stopTimersLocked()
		c.current = nil
		c.dirty = false
		c.pending = ""
	}
	c.mu.Unlock()
	c.notifyChanged()
}

func (c *Coordinator) autosave() {
	if err := c.save(context.Background()); err != nil {
		// Autosave must never interrupt typing: log it and keep the dirty
		// flag set so a later edit or flush retries the write.
		c.logger.Error("autosave failed", "error", err)
	}
}

func (c *Coordinator) save(ctx context.Context) error {
	c.mu.Lock()
	if !c.dirty || c.current == nil {
		c.mu.Unlock()
		return nil
	}
	doc := *c.current
	content := c.pending
	doc.Content = content
	id := doc.ID

	// Single-flight per document id: a save issued while one is in flight
	// waits for it to settle, preserving updated_at ordering.
	prev := c.inflight[id]
	done := make(chan struct{})
	c.inflight[id] = done
	c.states[id] = StateSaving
	c.mu.Unlock()
	c.notifyChanged()

	if prev != nil {
		<-prev
		c.mu.Lock()
		// The settled write may already have persisted this exact snapshot
		// (timer fired, then a flush queued behind it). Writing again would
		// stamp updated_at twice for one edit.
		if !c.dirty || c.pending != content || c.current == nil || c.current.ID != id {
			close(done)
			if c.inflight[id] == done {
				delete(c.inflight, id)
			}
			c.mu.Unlock()
			return nil
		}
		doc = *c.current
		doc.Content = content
		c.states[id] = StateSaving
		c.mu.Unlock()
	}

	err := c.docs.Save(ctx, &doc)

	c.mu.Lock()
	close(done)
	if c.inflight[id] == done {
		delete(c.inflight, id)
	}
	if err != nil {
		c.states[id] = StateIdle
		c.mu.Unlock()
		c.notifyChanged()
		return err
	}
	if c.current != nil && c.current.ID == id {
		c.current.Content = content
		c.current.UpdatedAt = doc.UpdatedAt
		c.current.LastOpened = doc.LastOpened
		// A newer edit may have arrived while the write was in flight;
		// only a save of the latest snapshot clears the dirty flag.
		if c.pending == content {
			c.dirty = false
			c.pending = ""
		}
	}
	c.states[id] = StateSaved
	c.scheduleRevertLocked(id)
	c.mu.Unlock()
	c.notifyChanged()
	return nil
}

func (c *Coordinator) scheduleRevertLocked(id int64) {
	if c.revert != nil {
		c.revert.Stop()
	}
	c.revert = time.AfterFunc(c.settle, func() {
		c.mu.Lock()
		reverted := false
		if c.states[id] == StateSaved {
			c.states[id] = StateIdle
			reverted = true
		}
		c.mu.Unlock()
		if reverted {
			c.notifyChanged()
		}
	})
}

func (c *Coordinator) stopTimersLocked() {
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
}

func (c *Coordinator) notifyChanged() {
	if c.notify != nil {
		c.notify()
	}
}
