package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/bnote/pkg/app"
	"tableflip.dev/bnote/pkg/idgen"
	"tableflip.dev/bnote/pkg/parser"
	"tableflip.dev/bnote/pkg/store"
)

func newService(now time.Time) (*Service, *store.Memory) {
	mem := store.NewMemory()
	nb := &app.Notebook{
		Store:  mem,
		Parser: parser.New(parser.WithIDs(idgen.Sequence()), parser.WithClock(func() time.Time { return now })),
		Log:    zerolog.Nop(),
	}
	svc := NewService(nb)
	svc.Location = time.UTC
	svc.Now = func() time.Time { return now }
	return svc, mem
}

func TestServiceParseNoteDoesNotSave(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC))

	entries, err := svc.ParseNote("• buy milk\nscratch\n- aside")
	if err != nil {
		t.Fatalf("ParseNote failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Type != "task" || entries[0].Symbol != "•" || entries[0].Label != "Task" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Type != "note" || entries[1].Content != "aside" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}

	saved, _ := mem.LoadEntries(ctx)
	if len(saved) != 0 {
		t.Fatalf("parse must not save, found %d entries", len(saved))
	}
}

func TestServiceInsertSymbol(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(time.Now())

	text := "call mom"
	res, err := svc.InsertSymbol(ctx, &text, 3, 3, "event")
	if err != nil {
		t.Fatalf("InsertSymbol failed: %v", err)
	}
	if res.Text != "O call mom" || res.Cursor != 5 || res.Replaced {
		t.Fatalf("unexpected result: %+v", res)
	}
	if d, _ := mem.LoadDraft(ctx); d != "" {
		t.Fatalf("explicit text must not touch the draft, got %q", d)
	}

	if _, err := svc.SetDraft(ctx, "O call mom"); err != nil {
		t.Fatalf("SetDraft failed: %v", err)
	}
	res, err = svc.InsertSymbol(ctx, nil, 0, 0, "task")
	if err != nil {
		t.Fatalf("InsertSymbol on draft failed: %v", err)
	}
	if res.Text != "• call mom" || !res.Replaced {
		t.Fatalf("unexpected draft result: %+v", res)
	}
	if d, _ := mem.LoadDraft(ctx); d != "• call mom" {
		t.Fatalf("expected draft saved, got %q", d)
	}

	if _, err := svc.InsertSymbol(ctx, &text, 0, 0, "priority"); err == nil {
		t.Fatal("expected unknown symbol error")
	}
}

func TestServiceConfirmListDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	svc, _ := newService(now)

	batch, err := svc.ConfirmNote(ctx, "• one\nO two")
	if err != nil {
		t.Fatalf("ConfirmNote failed: %v", err)
	}
	if batch.ID != "category-1" || len(batch.Entries) != 2 {
		t.Fatalf("unexpected batch: %+v", batch)
	}
	if batch.Entries[0].BatchID != batch.ID {
		t.Fatalf("expected entries to carry the batch id, got %q", batch.Entries[0].BatchID)
	}

	days, err := svc.ListDays(24 * time.Hour)
	if err != nil {
		t.Fatalf("ListDays failed: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2024-03-09" || days[0].Count != 2 {
		t.Fatalf("unexpected days: %+v", days)
	}

	dto, err := svc.ToggleComplete(ctx, batch.Entries[0].ID, "")
	if err != nil || !dto.IsCompleted {
		t.Fatalf("expected completed task, got %+v, %v", dto, err)
	}

	if err := svc.DeleteEntry(ctx, batch.Entries[1].ID, batch.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := svc.DeleteEntry(ctx, batch.Entries[1].ID, batch.ID); !errors.Is(err, app.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	if _, err := svc.ConfirmNote(ctx, ""); !errors.Is(err, app.ErrNothingToConfirm) {
		t.Fatalf("expected ErrNothingToConfirm, got %v", err)
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	svc, _ := newService(time.Now())
	if srv := NewServer(svc, "bnote", "test"); srv == nil {
		t.Fatal("expected server")
	}
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatal("expected runner without a notebook to fail")
	}
}
