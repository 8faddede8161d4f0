// Package parser turns free text into journal entries. Lines that start with
// a marker from the grammar become entries; every other line is ignored.
package parser

import (
	"strings"
	"time"

	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/glyph"
	"tableflip.dev/bnote/pkg/idgen"
)

// Parser classifies lines. The zero value uses the default grammar, UUID
// ids and the wall clock.
type Parser struct {
	Grammar *glyph.Grammar
	IDs     idgen.Generator
	Now     func() time.Time
}

type Option func(*Parser)

func WithGrammar(g *glyph.Grammar) Option {
	return func(p *Parser) { p.Grammar = g }
}

func WithIDs(ids idgen.Generator) Option {
	return func(p *Parser) { p.IDs = ids }
}

func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.Now = now }
}

func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = &Parser{}

func (p *Parser) grammar() *glyph.Grammar {
	if p == nil || p.Grammar == nil {
		return glyph.Default()
	}
	return p.Grammar
}

func (p *Parser) ids() idgen.Generator {
	if p.IDs == nil {
		return idgen.UUID()
	}
	return p.IDs
}

func (p *Parser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Lines normalizes CRLF and lone CR line endings and splits on "\n".
func Lines(content string) []string {
	if strings.Contains(content, "\r") {
		content = strings.ReplaceAll(content, "\r\n", "\n")
		content = strings.ReplaceAll(content, "\r", "\n")
	}
	return strings.Split(content, "\n")
}

// Parse returns an entry for every marked line, in source order. All entries
// of one call share a timestamp. Parse never fails; empty input yields an
// empty slice.
func (p *Parser) Parse(content string) []entry.Entry {
	out := []entry.Entry{}
	if content == "" {
		return out
	}
	var (
		ids     = p.ids()
		created = entry.At(p.now())
		g       = p.grammar()
	)
	for _, line := range Lines(content) {
		if !p.IsMarkedLine(line) {
			continue
		}
		sym, _ := p.SymbolOf(line)
		typ, _ := g.TypeOf(sym)
		out = append(out, entry.Entry{
			ID:      ids.NewID(idgen.EntryPrefix),
			Content: p.ContentOf(line),
			Type:    typ,
			Created: created,
		})
	}
	return out
}

// ParseBatch parses content into a new save-batch. The batch and its entries
// share one timestamp and every entry carries the batch id.
func (p *Parser) ParseBatch(content string) entry.Batch {
	now := p.now()
	fixed := &Parser{Grammar: p.Grammar, IDs: p.IDs, Now: func() time.Time { return now }}
	items := fixed.Parse(content)
	b := entry.Batch{
		ID:      p.ids().NewID(idgen.BatchPrefix),
		Name:    entry.DefaultBatchName,
		Created: entry.At(now),
	}
	for i := range items {
		items[i].BatchID = b.ID
	}
	b.Items = items
	return b
}

// HasMarkedContent reports whether Parse would produce at least one entry.
func (p *Parser) HasMarkedContent(content string) bool {
	for _, line := range Lines(content) {
		if p.IsMarkedLine(line) {
			return true
		}
	}
	return false
}

// Parse parses content with the default grammar.
func Parse(content string) []entry.Entry {
	return defaultParser.Parse(content)
}

// HasMarkedContent checks content against the default grammar.
func HasMarkedContent(content string) bool {
	return defaultParser.HasMarkedContent(content)
}
