package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/glyph"
	"tableflip.dev/bnote/pkg/idgen"
)

var fixedNow = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func testParser() *Parser {
	return New(WithIDs(idgen.Sequence()), WithClock(func() time.Time { return fixedNow }))
}

func TestIsMarkedLine(t *testing.T) {
	tests := map[string]struct {
		line string
		want bool
	}{
		"task":                 {line: "• buy milk", want: true},
		"event":                {line: "O standup", want: true},
		"en dash note":         {line: "– idea", want: true},
		"hyphen note":          {line: "- idea", want: true},
		"leading whitespace":   {line: "   - indented", want: true},
		"no space after mark":  {line: "-x", want: true},
		"bare marker":          {line: "-", want: false},
		"marker and spaces":    {line: "-   ", want: false},
		"marker and tab":       {line: "•\t", want: false},
		"mid-line marker":      {line: "a - b", want: false},
		"plain text":           {line: "plain text", want: false},
		"empty":                {line: "", want: false},
		"whitespace only":      {line: "   \t", want: false},
		"unknown marker":       {line: "* star", want: false},
		"lowercase o is plain": {line: "o lower", want: false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMarkedLine(tc.line))
		})
	}
}

func TestSymbolOfIgnoresContentCheck(t *testing.T) {
	sym, ok := SymbolOf("  •  ")
	require.True(t, ok)
	assert.Equal(t, glyph.Task, sym)

	_, ok = SymbolOf("text • not a marker")
	assert.False(t, ok)
}

func TestContentOf(t *testing.T) {
	assert.Equal(t, "x", ContentOf("-  x"))
	assert.Equal(t, "spaced out", ContentOf("  •     spaced out   "))
	assert.Equal(t, "", ContentOf("O"))
	assert.Equal(t, "plain", ContentOf("  plain "))
}

func TestParseEndToEnd(t *testing.T) {
	entries := testParser().Parse("- first\nplain text\n- second")
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Content)
	assert.Equal(t, "second", entries[1].Content)
	for _, e := range entries {
		assert.Equal(t, glyph.TypeNote, e.Type)
		assert.True(t, e.Created.Equal(fixedNow))
	}
	assert.Equal(t, "note-1", entries[0].ID)
	assert.Equal(t, "note-2", entries[1].ID)
}

func TestParseAssignsTypesBySymbol(t *testing.T) {
	entries := testParser().Parse("• task\nO event\n– note\n- dash")
	require.Len(t, entries, 4)
	assert.Equal(t,
		[]glyph.Type{glyph.TypeTask, glyph.TypeEvent, glyph.TypeNote, glyph.TypeNote},
		[]glyph.Type{entries[0].Type, entries[1].Type, entries[2].Type, entries[3].Type})
}

func TestParseSkipsEmptyMarkers(t *testing.T) {
	entries := testParser().Parse("- \n- valid item\n-   ")
	require.Len(t, entries, 1)
	assert.Equal(t, "valid item", entries[0].Content)
}

func TestParseEmpty(t *testing.T) {
	entries := Parse("")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.False(t, HasMarkedContent(""))
}

func TestParseNormalizesLineEndings(t *testing.T) {
	entries := testParser().Parse("• one\r\nO two\rplain\r\n- three\r\n")
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.NotContains(t, e.Content, "\r")
	}
	assert.Equal(t, "three", entries[2].Content)
}

func TestHasMarkedContentMatchesParse(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"-",
		"- \n•  \nO",
		"text - dash",
		"- one",
		"plain\n\n  O meeting at 3",
		"• a\r\n",
	}
	p := testParser()
	for _, in := range inputs {
		assert.Equal(t, len(p.Parse(in)) > 0, p.HasMarkedContent(in), "input %q", in)
	}
}

func TestUnmarkedTextYieldsNothing(t *testing.T) {
	in := "just words\n  more words\nnumber 1 - one\n\t\n"
	assert.False(t, HasMarkedContent(in))
	assert.Empty(t, Parse(in))
}

func TestReparseExtractedContent(t *testing.T) {
	p := testParser()
	in := "intro\n•   write report  \n  O  review\nnoise - here\n– idea\n- x"
	first := p.Parse(in)
	require.Len(t, first, 4)

	var lines []string
	for _, e := range first {
		lines = append(lines, string(e.Symbol(nil))+" "+e.Content)
	}
	second := p.Parse(strings.Join(lines, "\n"))
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
		assert.Equal(t, first[i].Type, second[i].Type)
	}
}

func TestParseBatch(t *testing.T) {
	b := testParser().ParseBatch("- a\n• b")
	assert.Equal(t, "category-1", b.ID)
	assert.Equal(t, entry.DefaultBatchName, b.Name)
	assert.True(t, b.Created.Equal(fixedNow))
	require.Len(t, b.Items, 2)
	for _, e := range b.Items {
		assert.Equal(t, b.ID, e.BatchID)
		assert.True(t, e.Created.Equal(b.Created.Time))
	}
}

func TestCustomGrammar(t *testing.T) {
	g := glyph.NewGrammar(
		glyph.Glyph{Key: "todo", Symbol: "[ ]", Type: glyph.TypeTask},
		glyph.Glyph{Key: "mark", Symbol: "[", Type: glyph.TypeNote},
	)
	p := New(WithGrammar(g), WithIDs(idgen.Sequence()))
	entries := p.Parse("[ ] ship it\n[x] done\n- dash is unknown here")
	require.Len(t, entries, 2)
	assert.Equal(t, "ship it", entries[0].Content)
	assert.Equal(t, glyph.TypeTask, entries[0].Type)
	assert.Equal(t, "x] done", entries[1].Content)
	assert.Equal(t, glyph.TypeNote, entries[1].Type)
}
