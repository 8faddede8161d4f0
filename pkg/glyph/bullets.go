// Package glyph defines the marker symbols that classify journal lines.
package glyph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Type is the semantic category a marker maps to.
type Type string

const (
	TypeTask  Type = "task"
	TypeEvent Type = "event"
	TypeNote  Type = "note"
)

// legacyEvent is how events were stored before they were renamed.
const legacyEvent = "bullet"

// AllTypes returns the supported entry types.
func AllTypes() []Type {
	return []Type{TypeTask, TypeEvent, TypeNote}
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case TypeTask, TypeEvent, TypeNote:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ParseType converts a string to a Type. The legacy "bullet" value maps to
// TypeEvent.
func ParseType(raw string) (Type, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == legacyEvent {
		return TypeEvent, nil
	}
	t := Type(v)
	if !t.Valid() {
		return "", fmt.Errorf("glyph: unknown type %q", raw)
	}
	return t, nil
}

// UnmarshalJSON decodes a type name, accepting the legacy "bullet" value.
func (t *Type) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Symbol is a leading marker token.
type Symbol string

const (
	Task  Symbol = "•"
	Event Symbol = "O"
	Note  Symbol = "–"
	Dash  Symbol = "-"
)

func (s Symbol) String() string {
	return string(s)
}

// Glyph is one row of a grammar.
type Glyph struct {
	Key    string
	Symbol Symbol
	Type   Type
	Label  string
}

// DefaultGlyphs returns the built-in markers in priority order.
func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:    "task",
		Symbol: Task,
		Type:   TypeTask,
		Label:  "Task",
	}, {
		Key:    "event",
		Symbol: Event,
		Type:   TypeEvent,
		Label:  "Event",
	}, {
		Key:    "note",
		Symbol: Note,
		Type:   TypeNote,
		Label:  "Note",
	}, {
		Key:    "dash",
		Symbol: Dash,
		Type:   TypeNote,
		Label:  "Note",
	}}
}

// Grammar is an ordered set of markers. Matching walks the glyphs in
// declaration order and the first prefix match wins.
type Grammar struct {
	glyphs []Glyph
	byKey  map[Symbol]Glyph
}

var defaultGrammar = NewGrammar(DefaultGlyphs()...)

// Default returns the shared built-in grammar. It must not be mutated.
func Default() *Grammar {
	return defaultGrammar
}

// NewGrammar builds a grammar from glyphs. Empty symbols and duplicates are
// skipped; the first declaration of a symbol wins.
func NewGrammar(glyphs ...Glyph) *Grammar {
	g := &Grammar{
		glyphs: make([]Glyph, 0, len(glyphs)),
		byKey:  make(map[Symbol]Glyph, len(glyphs)),
	}
	for _, gl := range glyphs {
		if gl.Symbol == "" {
			continue
		}
		if _, dup := g.byKey[gl.Symbol]; dup {
			continue
		}
		g.glyphs = append(g.glyphs, gl)
		g.byKey[gl.Symbol] = gl
	}
	return g
}

// Glyphs returns a copy of the grammar rows.
func (g *Grammar) Glyphs() []Glyph {
	out := make([]Glyph, len(g.glyphs))
	copy(out, g.glyphs)
	return out
}

// Symbols returns the markers in priority order.
func (g *Grammar) Symbols() []Symbol {
	out := make([]Symbol, 0, len(g.glyphs))
	for _, gl := range g.glyphs {
		out = append(out, gl.Symbol)
	}
	return out
}

// TypeOf maps a symbol to its entry type.
func (g *Grammar) TypeOf(s Symbol) (Type, bool) {
	gl, ok := g.byKey[s]
	return gl.Type, ok
}

// Label returns the display label for s, or "" when s is unknown.
func (g *Grammar) Label(s Symbol) string {
	return g.byKey[s].Label
}

// Known reports whether s belongs to the grammar.
func (g *Grammar) Known(s Symbol) bool {
	_, ok := g.byKey[s]
	return ok
}

// Match returns the first symbol that prefixes text.
func (g *Grammar) Match(text string) (Symbol, bool) {
	for _, gl := range g.glyphs {
		if strings.HasPrefix(text, string(gl.Symbol)) {
			return gl.Symbol, true
		}
	}
	return "", false
}

// SymbolFor returns the first declared symbol of the given type.
func (g *Grammar) SymbolFor(t Type) (Symbol, bool) {
	for _, gl := range g.glyphs {
		if gl.Type == t {
			return gl.Symbol, true
		}
	}
	return "", false
}

// Lookup resolves a glyph key ("task", "dash"), a type name or a literal
// symbol.
func (g *Grammar) Lookup(name string) (Symbol, bool) {
	if g.Known(Symbol(name)) {
		return Symbol(name), true
	}
	v := strings.ToLower(strings.TrimSpace(name))
	for _, gl := range g.glyphs {
		if gl.Key == v {
			return gl.Symbol, true
		}
	}
	if t, err := ParseType(v); err == nil {
		return g.SymbolFor(t)
	}
	return "", false
}
