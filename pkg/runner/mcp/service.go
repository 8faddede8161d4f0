// Package mcp provides the Model Context Protocol server integration for bnote.
package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/bnote/pkg/app"
	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/glyph"
	"tableflip.dev/bnote/pkg/insert"
	"tableflip.dev/bnote/pkg/parser"
)

// Service adapts the notebook session to transport-friendly values.
type Service struct {
	Notebook *app.Notebook
	Location *time.Location
	Now      func() time.Time
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          string `json:"id"`
	BatchID     string `json:"batchId,omitempty"`
	Content     string `json:"content"`
	Type        string `json:"type"`
	Symbol      string `json:"symbol"`
	Label       string `json:"label"`
	IsCompleted bool   `json:"isCompleted"`
	CreatedISO  string `json:"created"`
	CreatedAt   int64  `json:"createdAt"`
}

// DayDTO is one calendar day of entries.
type DayDTO struct {
	Date    string     `json:"date"`
	Count   int        `json:"count"`
	Entries []EntryDTO `json:"entries"`
}

// DraftDTO describes the editor text.
type DraftDTO struct {
	Text       string `json:"text"`
	CanConfirm bool   `json:"canConfirm"`
}

// InsertDTO is the outcome of a symbol insertion.
type InsertDTO struct {
	Text     string `json:"text"`
	Cursor   int    `json:"cursor"`
	Replaced bool   `json:"replaced"`
}

// BatchDTO is a confirmed batch.
type BatchDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt int64      `json:"createdAt"`
	Entries   []EntryDTO `json:"entries"`
}

// NewService builds a service over nb using the local time zone.
func NewService(nb *app.Notebook) *Service {
	return &Service{Notebook: nb, Location: time.Local}
}

func (s *Service) ready() error {
	if s.Notebook == nil {
		return errors.New("notebook is not configured")
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ParseNote classifies text without saving anything.
func (s *Service) ParseNote(text string) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	p := s.Notebook.Parser
	if p == nil {
		p = parser.New()
	}
	return toDTOs(p.Parse(text), ""), nil
}

// InsertSymbol applies an insertion to text. When text is nil the stored
// draft is edited and saved instead.
func (s *Service) InsertSymbol(ctx context.Context, text *string, start, end int, symbol string) (*InsertDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sym, err := s.ParseSymbol(symbol)
	if err != nil {
		return nil, err
	}
	var res insert.Result
	if text != nil {
		res = insert.InsertWith(s.grammar(), *text, start, end, sym)
	} else {
		res, err = s.Notebook.InsertSymbol(ctx, start, end, sym)
		if err != nil {
			return nil, err
		}
	}
	return &InsertDTO{Text: res.Text, Cursor: res.Cursor, Replaced: res.Replaced}, nil
}

// ConfirmNote saves text, or the stored draft when text is empty, as a new
// batch.
func (s *Service) ConfirmNote(ctx context.Context, text string) (*BatchDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) != "" {
		if err := s.Notebook.SetDraft(ctx, text); err != nil {
			return nil, err
		}
	}
	b, err := s.Notebook.Confirm(ctx)
	if err != nil && len(b.Items) == 0 {
		return nil, err
	}
	dto := &BatchDTO{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.Created.Millis(),
		Entries:   toDTOs(b.Items, b.ID),
	}
	return dto, err
}

// ListDays returns the grouped view, limited to window when it is positive.
func (s *Service) ListDays(window time.Duration) ([]DayDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	days := s.Notebook.Days(s.Location)
	if window > 0 {
		days = daygroup.Within(days, s.now(), window, s.Location)
	}
	out := make([]DayDTO, 0, len(days))
	for _, d := range days {
		entries := make([]EntryDTO, 0, len(d.Entries))
		for _, r := range d.Entries {
			entries = append(entries, toDTO(r.Entry, r.BatchID))
		}
		out = append(out, DayDTO{Date: d.Key, Count: len(entries), Entries: entries})
	}
	return out, nil
}

// DeleteEntry removes an entry; batchID may be empty.
func (s *Service) DeleteEntry(ctx context.Context, id, batchID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Notebook.Delete(ctx, id, batchID)
}

// ToggleComplete flips a task's completion flag.
func (s *Service) ToggleComplete(ctx context.Context, id, batchID string) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	e, err := s.Notebook.ToggleComplete(ctx, id, batchID)
	if err != nil && e.ID == "" {
		return nil, err
	}
	dto := toDTO(e, e.BatchID)
	return &dto, err
}

// Draft returns the stored editor text.
func (s *Service) Draft() (*DraftDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return &DraftDTO{Text: s.Notebook.Draft(), CanConfirm: s.Notebook.CanConfirm()}, nil
}

// SetDraft replaces the stored editor text.
func (s *Service) SetDraft(ctx context.Context, text string) (*DraftDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.Notebook.SetDraft(ctx, text); err != nil {
		return nil, err
	}
	return s.Draft()
}

func (s *Service) grammar() *glyph.Grammar {
	if s.Notebook != nil && s.Notebook.Parser != nil && s.Notebook.Parser.Grammar != nil {
		return s.Notebook.Parser.Grammar
	}
	return glyph.Default()
}

// ParseSymbol resolves a key ("task", "dash"), a type or a literal symbol.
func (s *Service) ParseSymbol(input string) (glyph.Symbol, error) {
	sym, ok := s.grammar().Lookup(input)
	if !ok {
		return "", errors.New("unknown symbol " + strings.TrimSpace(input))
	}
	return sym, nil
}

func toDTOs(entries []entry.Entry, batchID string) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		id := batchID
		if id == "" {
			id = e.BatchID
		}
		out = append(out, toDTO(e, id))
	}
	return out
}

func toDTO(e entry.Entry, batchID string) EntryDTO {
	sym := e.Symbol(nil)
	return EntryDTO{
		ID:          e.ID,
		BatchID:     batchID,
		Content:     e.Content,
		Type:        e.Type.String(),
		Symbol:      sym.String(),
		Label:       glyph.Default().Label(sym),
		IsCompleted: e.Completed(),
		CreatedISO:  entry.FormatTime(e.Created.Time),
		CreatedAt:   e.Created.Millis(),
	}
}
