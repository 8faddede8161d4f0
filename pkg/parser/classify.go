package parser

import (
	"strings"

	"tableflip.dev/bnote/pkg/glyph"
)

// SymbolOf returns the marker that prefixes the trimmed line, whether or not
// any content follows it.
func (p *Parser) SymbolOf(line string) (glyph.Symbol, bool) {
	return p.grammar().Match(strings.TrimSpace(line))
}

// IsMarkedLine reports whether line starts with a known marker and has
// non-blank content after it.
func (p *Parser) IsMarkedLine(line string) bool {
	sym, ok := p.SymbolOf(line)
	if !ok {
		return false
	}
	return strip(line, sym) != ""
}

// ContentOf returns the trimmed text after the marker. Lines without a marker
// come back trimmed and otherwise unchanged; callers check IsMarkedLine first.
func (p *Parser) ContentOf(line string) string {
	sym, ok := p.SymbolOf(line)
	if !ok {
		return strings.TrimSpace(line)
	}
	return strip(line, sym)
}

func strip(line string, sym glyph.Symbol) string {
	trimmed := strings.TrimSpace(line)
	return strings.TrimSpace(trimmed[len(sym):])
}

// IsMarkedLine classifies line with the default grammar.
func IsMarkedLine(line string) bool {
	return defaultParser.IsMarkedLine(line)
}

// SymbolOf matches line against the default grammar.
func SymbolOf(line string) (glyph.Symbol, bool) {
	return defaultParser.SymbolOf(line)
}

// ContentOf extracts content using the default grammar.
func ContentOf(line string) string {
	return defaultParser.ContentOf(line)
}
