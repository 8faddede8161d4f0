package app

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/bnote/pkg/store"
)

func TestReportTalliesWithinWindow(t *testing.T) {
	ctx := context.Background()
	nb, c := newNotebook(store.NewMemory())
	start := c.now

	_ = nb.SetDraft(ctx, "• old task")
	_, _ = nb.Confirm(ctx)

	c.now = start.Add(48 * time.Hour)
	_ = nb.SetDraft(ctx, "• a\n• b\nO meeting\n– idea\n- aside")
	b, err := nb.Confirm(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := nb.ToggleComplete(ctx, b.Items[0].ID, b.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	res := nb.Report(c.now, start.Add(time.Hour), time.UTC)
	if !res.Since.Before(res.Until) {
		t.Fatal("expected bounds to be ordered")
	}
	if res.Total != 5 {
		t.Fatalf("expected 5 entries, got %d", res.Total)
	}
	if len(res.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(res.Sections))
	}
	s := res.Sections[0]
	if s.Tasks != 2 || s.Completed != 1 || s.Open() != 1 || s.Events != 1 || s.Notes != 2 {
		t.Fatalf("unexpected tallies: %+v", s)
	}
}
