package insert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tableflip.dev/bnote/pkg/glyph"
)

func TestInsert(t *testing.T) {
	tests := map[string]struct {
		text       string
		start, end int
		sym        glyph.Symbol
		want       Result
	}{
		"fresh insert cursor at end": {
			text: "hello", start: 5, end: 5, sym: glyph.Task,
			want: Result{Text: "• hello", Cursor: 5 + len("• ")},
		},
		"fresh insert cursor at start": {
			text: "hello", start: 0, end: 0, sym: glyph.Task,
			want: Result{Text: "• hello", Cursor: len("• ")},
		},
		"replace marker keeps content": {
			text: "• hello", start: 3, end: 3, sym: glyph.Event,
			want: Result{Text: "O hello", Cursor: 2, Replaced: true},
		},
		"replace bare marker": {
			text: "•", start: 0, end: 0, sym: glyph.Dash,
			want: Result{Text: "- ", Cursor: 2, Replaced: true},
		},
		"replace collapses indentation and gap": {
			text: "  -    spaced", start: 4, end: 4, sym: glyph.Task,
			want: Result{Text: "• spaced", Cursor: len("• "), Replaced: true},
		},
		"empty text": {
			text: "", start: 0, end: 0, sym: glyph.Note,
			want: Result{Text: "– ", Cursor: len("– ")},
		},
		"middle line only": {
			text: "one\ntwo\nthree", start: 6, end: 6, sym: glyph.Event,
			want: Result{Text: "one\nO two\nthree", Cursor: 8},
		},
		"last line without trailing newline": {
			text: "one\n• two", start: 9, end: 9, sym: glyph.Dash,
			want: Result{Text: "one\n- two", Cursor: 6, Replaced: true},
		},
		"cursor on empty trailing line": {
			text: "one\n", start: 4, end: 4, sym: glyph.Event,
			want: Result{Text: "one\nO ", Cursor: 6},
		},
		"cursor right after newline targets next line": {
			text: "a\nb", start: 2, end: 2, sym: glyph.Dash,
			want: Result{Text: "a\n- b", Cursor: 4},
		},
		"fresh insert keeps leading whitespace": {
			text: "  indented", start: 3, end: 3, sym: glyph.Dash,
			want: Result{Text: "-   indented", Cursor: 5},
		},
		"mid-line marker is not a marker": {
			text: "a - b", start: 1, end: 1, sym: glyph.Task,
			want: Result{Text: "• a - b", Cursor: 1 + len("• ")},
		},
		"offsets are clamped": {
			text: "abc", start: -4, end: 99, sym: glyph.Dash,
			want: Result{Text: "- abc", Cursor: 2},
		},
		"inverted selection collapses to start": {
			text: "x\ny", start: 2, end: 0, sym: glyph.Dash,
			want: Result{Text: "x\n- y", Cursor: 4},
		},
		"replace keeps trailing spaces": {
			text: "• hello  ", start: 0, end: 0, sym: glyph.Event,
			want: Result{Text: "O hello  ", Cursor: 2, Replaced: true},
		},
		"replace keeps trailing tab": {
			text: "• hello\t", start: 0, end: 0, sym: glyph.Event,
			want: Result{Text: "O hello\t", Cursor: 2, Replaced: true},
		},
		"replace drops indentation but keeps tail": {
			text: "  • hi  \nnext", start: 0, end: 0, sym: glyph.Event,
			want: Result{Text: "O hi  \nnext", Cursor: 2, Replaced: true},
		},
		"crlf line keeps carriage return": {
			text: "• a\r\nb", start: 4, end: 4, sym: glyph.Event,
			want: Result{Text: "O a\r\nb", Cursor: 2, Replaced: true},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Insert(tc.text, tc.start, tc.end, tc.sym)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInsertNeverTouchesOtherLines(t *testing.T) {
	text := "• first\nsecond\n  O third\n"
	lines := []struct {
		offset int
		want   string
	}{
		{0, "- first\nsecond\n  O third\n"},
		{len("• first\n") + 2, "• first\n- second\n  O third\n"},
		{len("• first\nsecond\n") + 4, "• first\nsecond\n- third\n"},
	}
	for _, l := range lines {
		got := Insert(text, l.offset, l.offset, glyph.Dash)
		assert.Equal(t, l.want, got.Text)
	}
}

func TestSelectionEndSetsLineEnd(t *testing.T) {
	got := Insert("• a\nb\nc", 0, 6, glyph.Event)
	assert.Equal(t, "O a\nb\nc", got.Text)
	assert.Equal(t, 2, got.Cursor)
	assert.True(t, got.Replaced)
}

func TestEditorNotifiesOnChange(t *testing.T) {
	var seen []string
	ed := &Editor{Text: "hello", OnChange: func(s string) { seen = append(seen, s) }}

	res := ed.Insert(5, 5, glyph.Task)
	assert.Equal(t, "• hello", ed.Text)
	assert.Equal(t, 5+len("• "), res.Cursor)

	ed.Insert(0, 0, glyph.Event)
	assert.Equal(t, []string{"• hello", "O hello"}, seen)
}
