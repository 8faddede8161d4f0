// Package app holds the notebook session shared by the CLI and the MCP
// server: the editor draft plus the batches confirmed from it.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/glyph"
	"tableflip.dev/bnote/pkg/insert"
	"tableflip.dev/bnote/pkg/parser"
	"tableflip.dev/bnote/pkg/store"
)

var (
	ErrNothingToConfirm = errors.New("app: draft has no marked lines")
	ErrEntryNotFound    = errors.New("app: entry not found")
	ErrBatchNotFound    = errors.New("app: batch not found")
	ErrNotCompletable   = errors.New("app: only tasks can be completed")
)

// Notebook is the session state over a storage adapter. Every update
// replaces the draft or the batch list wholesale, then persists it. When
// persisting fails the in-memory state is kept and the storage error is
// returned.
type Notebook struct {
	Store  store.Adapter
	Parser *parser.Parser
	Log    zerolog.Logger

	// OnChange, when set, is called after every state change.
	OnChange func()

	mu      sync.RWMutex
	draft   string
	batches []entry.Batch
}

// New returns a notebook over s using the default parser.
func New(s store.Adapter, log zerolog.Logger) *Notebook {
	return &Notebook{Store: s, Parser: parser.New(), Log: log}
}

func (n *Notebook) parser() *parser.Parser {
	if n.Parser == nil {
		return parser.New()
	}
	return n.Parser
}

func (n *Notebook) changed() {
	if n.OnChange != nil {
		n.OnChange()
	}
}

// Load replaces the session state with what the store holds.
func (n *Notebook) Load(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("app: no store configured")
	}
	list, err := n.Store.LoadEntries(ctx)
	if err != nil {
		return err
	}
	draft, err := n.Store.LoadDraft(ctx)
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.batches = entry.Regroup(list)
	n.draft = draft
	n.mu.Unlock()

	n.Log.Debug().Int("entries", len(list)).Int("draft_bytes", len(draft)).Msg("notebook loaded")
	n.changed()
	return nil
}

// Draft returns the current editor text.
func (n *Notebook) Draft() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.draft
}

// SetDraft replaces the editor text and saves it.
func (n *Notebook) SetDraft(ctx context.Context, text string) error {
	n.mu.Lock()
	n.draft = text
	n.mu.Unlock()
	n.changed()
	return n.saveDraft(ctx, text)
}

// InsertSymbol places sym at the start of the draft line holding the
// cursor and saves the result.
func (n *Notebook) InsertSymbol(ctx context.Context, start, end int, sym glyph.Symbol) (insert.Result, error) {
	n.mu.Lock()
	ed := insert.Editor{Text: n.draft, Grammar: n.parser().Grammar}
	res := ed.Insert(start, end, sym)
	n.draft = res.Text
	n.mu.Unlock()
	n.changed()
	return res, n.saveDraft(ctx, res.Text)
}

// CanConfirm reports whether the draft would produce at least one entry.
func (n *Notebook) CanConfirm() bool {
	return n.parser().HasMarkedContent(n.Draft())
}

// Confirm parses the draft into a new batch, appends it, saves the entry
// list and clears the draft. The batch is returned even when saving fails.
func (n *Notebook) Confirm(ctx context.Context) (entry.Batch, error) {
	n.mu.Lock()
	p := n.parser()
	if !p.HasMarkedContent(n.draft) {
		n.mu.Unlock()
		return entry.Batch{}, ErrNothingToConfirm
	}
	b := p.ParseBatch(n.draft)
	batches := make([]entry.Batch, 0, len(n.batches)+1)
	batches = append(batches, n.batches...)
	batches = append(batches, b)
	n.batches = batches
	n.draft = ""
	flat := entry.Flatten(batches)
	n.mu.Unlock()

	n.Log.Info().Str("batch", b.ID).Int("items", len(b.Items)).Msg("draft confirmed")
	n.changed()

	var errs []error
	if err := n.saveEntries(ctx, flat); err != nil {
		errs = append(errs, err)
	}
	if err := n.clearDraft(ctx); err != nil {
		errs = append(errs, err)
	}
	return b.Clone(), errors.Join(errs...)
}

// Batches returns a copy of the confirmed batches in confirm order.
func (n *Notebook) Batches() []entry.Batch {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]entry.Batch, len(n.batches))
	for i, b := range n.batches {
		out[i] = b.Clone()
	}
	return out
}

// Days groups the confirmed entries by calendar day in loc.
func (n *Notebook) Days(loc *time.Location) []daygroup.Day {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return daygroup.ByLocalDay(n.batches, loc)
}

// Find returns the entry with itemID. An empty batchID searches every batch.
func (n *Notebook) Find(itemID, batchID string) (entry.Entry, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	bi, ii, err := locate(n.batches, itemID, batchID)
	if err != nil {
		return entry.Entry{}, err
	}
	return n.batches[bi].Clone().Items[ii], nil
}

// Delete removes one entry. An empty batchID searches every batch. Emptied
// batches are kept until the next reload.
func (n *Notebook) Delete(ctx context.Context, itemID, batchID string) error {
	n.mu.Lock()
	bi, ii, err := locate(n.batches, itemID, batchID)
	if err != nil {
		n.mu.Unlock()
		return err
	}
	batches := n.cloneBatches()
	items := batches[bi].Items
	batches[bi].Items = append(items[:ii:ii], items[ii+1:]...)
	n.batches = batches
	flat := entry.Flatten(batches)
	n.mu.Unlock()

	n.Log.Info().Str("id", itemID).Str("batch", batches[bi].ID).Msg("entry deleted")
	n.changed()
	return n.saveEntries(ctx, flat)
}

// ToggleComplete flips the completion flag of a task entry and returns the
// updated entry.
func (n *Notebook) ToggleComplete(ctx context.Context, itemID, batchID string) (entry.Entry, error) {
	n.mu.Lock()
	bi, ii, err := locate(n.batches, itemID, batchID)
	if err != nil {
		n.mu.Unlock()
		return entry.Entry{}, err
	}
	if n.batches[bi].Items[ii].Type != glyph.TypeTask {
		n.mu.Unlock()
		return entry.Entry{}, ErrNotCompletable
	}
	batches := n.cloneBatches()
	e := batches[bi].Items[ii]
	done := !e.Completed()
	batches[bi].Items[ii] = e.WithCompleted(done)
	n.batches = batches
	flat := entry.Flatten(batches)
	n.mu.Unlock()

	n.Log.Info().Str("id", itemID).Bool("completed", done).Msg("entry toggled")
	n.changed()
	return e.WithCompleted(done), n.saveEntries(ctx, flat)
}

// ClearDraft empties the editor text.
func (n *Notebook) ClearDraft(ctx context.Context) error {
	n.mu.Lock()
	n.draft = ""
	n.mu.Unlock()
	n.changed()
	return n.clearDraft(ctx)
}

// Reset drops the draft and every batch, in memory and in storage.
func (n *Notebook) Reset(ctx context.Context) error {
	n.mu.Lock()
	n.draft = ""
	n.batches = nil
	n.mu.Unlock()
	n.Log.Warn().Msg("notebook reset")
	n.changed()
	if n.Store == nil {
		return nil
	}
	return n.Store.ClearAll(ctx)
}

// Watch subscribes to storage change events when the backend supports it.
func (n *Notebook) Watch(ctx context.Context) (<-chan store.Event, error) {
	if n.Store == nil {
		return nil, errors.New("app: no store configured")
	}
	w, ok := n.Store.(store.Watcher)
	if !ok {
		return nil, store.ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

func (n *Notebook) saveDraft(ctx context.Context, text string) error {
	if n.Store == nil {
		return nil
	}
	return n.Store.SaveDraft(ctx, text)
}

func (n *Notebook) clearDraft(ctx context.Context) error {
	if n.Store == nil {
		return nil
	}
	return n.Store.ClearDraft(ctx)
}

func (n *Notebook) saveEntries(ctx context.Context, list []entry.Entry) error {
	if n.Store == nil {
		return nil
	}
	return n.Store.SaveEntries(ctx, list)
}

// cloneBatches must be called with n.mu held.
func (n *Notebook) cloneBatches() []entry.Batch {
	out := make([]entry.Batch, len(n.batches))
	for i, b := range n.batches {
		out[i] = b.Clone()
	}
	return out
}

func locate(batches []entry.Batch, itemID, batchID string) (int, int, error) {
	found := batchID == ""
	for bi, b := range batches {
		if batchID != "" && b.ID != batchID {
			continue
		}
		found = true
		for ii, e := range b.Items {
			if e.ID == itemID {
				return bi, ii, nil
			}
		}
	}
	if !found {
		return 0, 0, ErrBatchNotFound
	}
	return 0, 0, ErrEntryNotFound
}
