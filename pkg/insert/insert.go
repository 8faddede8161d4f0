// Package insert places marker symbols into raw editor text at the cursor.
//
// Offsets are byte offsets into the UTF-8 text. Only the line that holds
// the cursor is rewritten; every other byte of the text is preserved.
package insert

import (
	"strings"
	"unicode"

	"tableflip.dev/bnote/pkg/glyph"
)

// Result is the rewritten text and the collapsed cursor position.
type Result struct {
	Text     string
	Cursor   int
	Replaced bool
}

// Insert applies sym to the cursor line using the default grammar.
func Insert(text string, start, end int, sym glyph.Symbol) Result {
	return InsertWith(glyph.Default(), text, start, end, sym)
}

// InsertWith puts sym at the head of the line that contains start. If the
// line already begins with a marker from g, that marker and the whitespace
// after it are replaced; otherwise sym and a space are prepended.
func InsertWith(g *glyph.Grammar, text string, start, end int, sym glyph.Symbol) Result {
	start = clamp(start, len(text))
	end = clamp(end, len(text))
	if end < start {
		end = start
	}

	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	line := text[lineStart:lineEnd]
	prefix := string(sym) + " "

	// The line tail, including trailing whitespace and "\r", is kept as is.
	body := strings.TrimLeftFunc(line, unicode.IsSpace)
	if existing, ok := g.Match(body); ok {
		rest := strings.TrimLeftFunc(body[len(existing):], unicode.IsSpace)
		return Result{
			Text:     text[:lineStart] + prefix + rest + text[lineEnd:],
			Cursor:   lineStart + len(prefix),
			Replaced: true,
		}
	}

	return Result{
		Text:   text[:lineStart] + prefix + text[lineStart:],
		Cursor: start + len(prefix),
	}
}

func clamp(v, max int) int {
	switch {
	case v < 0:
		return 0
	case v > max:
		return max
	}
	return v
}

// Editor holds the text of an editing session and reports every change.
type Editor struct {
	Text     string
	Grammar  *glyph.Grammar
	OnChange func(text string)
}

// Insert rewrites the cursor line and notifies OnChange with the full text.
func (e *Editor) Insert(start, end int, sym glyph.Symbol) Result {
	g := e.Grammar
	if g == nil {
		g = glyph.Default()
	}
	res := InsertWith(g, e.Text, start, end, sym)
	e.Text = res.Text
	if e.OnChange != nil {
		e.OnChange(res.Text)
	}
	return res
}
