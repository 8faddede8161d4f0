package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/glyph"
	"tableflip.dev/bnote/pkg/idgen"
	"tableflip.dev/bnote/pkg/parser"
	"tableflip.dev/bnote/pkg/store"
	"tableflip.dev/bnote/pkg/timeutil"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newNotebook(s store.Adapter) (*Notebook, *clock) {
	c := &clock{now: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)}
	nb := &Notebook{
		Store:  s,
		Parser: parser.New(parser.WithIDs(idgen.Sequence()), parser.WithClock(c.Now)),
		Log:    zerolog.Nop(),
	}
	return nb, c
}

// failingStore accepts reads but rejects every write.
type failingStore struct {
	*store.Memory
}

func (f failingStore) SaveEntries(context.Context, []entry.Entry) error {
	return &store.Error{Op: store.OpSaveEntries, Code: store.CodeSaveFailed, Message: "saveEntries failed after 3 attempts"}
}

func (f failingStore) SaveDraft(context.Context, string) error {
	return &store.Error{Op: store.OpSaveDraft, Code: store.CodeSaveFailed, Message: "saveDraft failed after 3 attempts"}
}

func TestConfirmSavesBatchAndClearsDraft(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	nb, _ := newNotebook(mem)

	if err := nb.SetDraft(ctx, "• buy milk\nplain text\nO standup"); err != nil {
		t.Fatalf("set draft: %v", err)
	}
	if !nb.CanConfirm() {
		t.Fatal("expected draft to be confirmable")
	}

	b, err := nb.Confirm(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if b.ID != "category-1" {
		t.Fatalf("expected batch id category-1, got %q", b.ID)
	}
	if len(b.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(b.Items))
	}
	if b.Items[0].Type != glyph.TypeTask || b.Items[1].Type != glyph.TypeEvent {
		t.Fatalf("unexpected types: %v %v", b.Items[0].Type, b.Items[1].Type)
	}
	if nb.Draft() != "" {
		t.Fatalf("expected empty draft, got %q", nb.Draft())
	}

	saved, err := mem.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(saved) != 2 || saved[0].BatchID != "category-1" {
		t.Fatalf("unexpected saved entries: %+v", saved)
	}
	draft, err := mem.LoadDraft(ctx)
	if err != nil {
		t.Fatalf("load draft: %v", err)
	}
	if draft != "" {
		t.Fatalf("expected stored draft cleared, got %q", draft)
	}
}

func TestConfirmRejectsUnmarkedDraft(t *testing.T) {
	ctx := context.Background()
	nb, _ := newNotebook(store.NewMemory())
	_ = nb.SetDraft(ctx, "just prose\n•   \n")

	if nb.CanConfirm() {
		t.Fatal("expected draft to be unconfirmable")
	}
	if _, err := nb.Confirm(ctx); !errors.Is(err, ErrNothingToConfirm) {
		t.Fatalf("expected ErrNothingToConfirm, got %v", err)
	}
	if nb.Draft() != "just prose\n•   \n" {
		t.Fatal("draft must be left alone")
	}
}

func TestLoadRegroupsStoredEntries(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	first, _ := newNotebook(mem)
	_ = first.SetDraft(ctx, "• one")
	if _, err := first.Confirm(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	_ = first.SetDraft(ctx, "– two")
	if _, err := first.Confirm(ctx); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	_ = first.SetDraft(ctx, "• unfinished")

	second, _ := newNotebook(mem)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	batches := second.Batches()
	if len(batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(batches))
	}
	if batches[0].ID != "category-1" || batches[1].ID != "category-2" {
		t.Fatalf("unexpected batch order: %s, %s", batches[0].ID, batches[1].ID)
	}
	if second.Draft() != "• unfinished" {
		t.Fatalf("expected draft restored, got %q", second.Draft())
	}
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	nb, _ := newNotebook(mem)
	_ = nb.SetDraft(ctx, "• a\n• b")
	b, err := nb.Confirm(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := nb.Delete(ctx, b.Items[0].ID, "category-9"); !errors.Is(err, ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
	if err := nb.Delete(ctx, "note-99", b.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if err := nb.Delete(ctx, b.Items[0].ID, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got := nb.Batches()
	if len(got[0].Items) != 1 || got[0].Items[0].Content != "b" {
		t.Fatalf("unexpected items after delete: %+v", got[0].Items)
	}
	if len(b.Items) != 2 {
		t.Fatal("returned batch must not share state with the notebook")
	}

	if err := nb.Delete(ctx, got[0].Items[0].ID, ""); err != nil {
		t.Fatalf("delete without batch: %v", err)
	}
	saved, _ := mem.LoadEntries(ctx)
	if len(saved) != 0 {
		t.Fatalf("expected no stored entries, got %d", len(saved))
	}
}

func TestToggleComplete(t *testing.T) {
	ctx := context.Background()
	nb, _ := newNotebook(store.NewMemory())
	_ = nb.SetDraft(ctx, "• task\nO event")
	b, _ := nb.Confirm(ctx)

	e, err := nb.ToggleComplete(ctx, b.Items[0].ID, b.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !e.Completed() {
		t.Fatal("expected task completed")
	}
	e, _ = nb.ToggleComplete(ctx, b.Items[0].ID, "")
	if e.Completed() {
		t.Fatal("expected task reopened")
	}

	if _, err := nb.ToggleComplete(ctx, b.Items[1].ID, b.ID); !errors.Is(err, ErrNotCompletable) {
		t.Fatalf("expected ErrNotCompletable, got %v", err)
	}
}

func TestStorageFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	nb, _ := newNotebook(failingStore{store.NewMemory()})

	err := nb.SetDraft(ctx, "• keep me")
	var se *store.Error
	if !errors.As(err, &se) || se.Code != store.CodeSaveFailed {
		t.Fatalf("expected save-failed storage error, got %v", err)
	}
	if nb.Draft() != "• keep me" {
		t.Fatal("draft must be updated despite the failure")
	}

	b, err := nb.Confirm(ctx)
	if !errors.As(err, &se) || se.Op != store.OpSaveEntries {
		t.Fatalf("expected saveEntries error, got %v", err)
	}
	if len(b.Items) != 1 || len(nb.Batches()) != 1 {
		t.Fatal("confirmed batch must stay in the session")
	}
}

func TestInsertSymbolSavesDraft(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	nb, _ := newNotebook(mem)
	_ = nb.SetDraft(ctx, "buy milk\nO call mom")

	res, err := nb.InsertSymbol(ctx, 12, 12, glyph.Task)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if res.Text != "buy milk\n• call mom" {
		t.Fatalf("unexpected text %q", res.Text)
	}
	stored, _ := mem.LoadDraft(ctx)
	if stored != res.Text {
		t.Fatalf("expected stored draft %q, got %q", res.Text, stored)
	}
}

func TestDaysAndReset(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	nb, c := newNotebook(mem)
	calls := 0
	nb.OnChange = func() { calls++ }

	_ = nb.SetDraft(ctx, "• yesterday")
	_, _ = nb.Confirm(ctx)
	c.now = c.now.Add(24 * time.Hour)
	_ = nb.SetDraft(ctx, "• today")
	_, _ = nb.Confirm(ctx)

	days := nb.Days(time.UTC)
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if want := timeutil.DayKey(c.now, time.UTC); days[0].Key != want {
		t.Fatalf("expected newest day %s first, got %s", want, days[0].Key)
	}
	if days[0].Entries[0].BatchID != "category-2" {
		t.Fatalf("unexpected batch ref %q", days[0].Entries[0].BatchID)
	}
	if calls == 0 {
		t.Fatal("expected change notifications")
	}

	if err := nb.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(nb.Batches()) != 0 || nb.Draft() != "" {
		t.Fatal("expected empty session after reset")
	}
	saved, _ := mem.LoadEntries(ctx)
	if len(saved) != 0 {
		t.Fatal("expected storage cleared")
	}
}
