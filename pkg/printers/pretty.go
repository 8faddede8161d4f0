package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/parser"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints one row per entry: completion mark, symbol and content.
func (pp *PrettyPrint) Entries(refs ...daygroup.Ref) {
	if len(refs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	done := color.New(color.Faint, color.CrossedOut)

	tbl := uitable.New()
	tbl.Separator = " "
	for _, r := range refs {
		mark, sym, content := r.Entry.Row()
		if r.Entry.Completed() {
			content = done.Sprint(content)
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(r.Entry.ID), y.Sprint(r.BatchID), mark, sym, content)
		} else {
			tbl.AddRow(mark, sym, content)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Days prints every day as a titled block of entries.
func (pp *PrettyPrint) Days(days []daygroup.Day) {
	if len(days) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "No saved notes yet.")
		return
	}
	for _, d := range days {
		pp.TitleWithCount(d.Date.Format("Monday, 2006-01-02"), len(d.Entries))
		pp.Entries(d.Entries...)
	}
}

// Batch prints a freshly confirmed batch.
func (pp *PrettyPrint) Batch(b entry.Batch) {
	pp.TitleWithCount(fmt.Sprintf("%s %s", b.Name, b.ID), len(b.Items))
	refs := make([]daygroup.Ref, 0, len(b.Items))
	for _, e := range b.Items {
		refs = append(refs, daygroup.Ref{Entry: e, BatchID: b.ID})
	}
	pp.Entries(refs...)
}

// Draft echoes the editor text, dimming the lines that will not be saved.
func (pp *PrettyPrint) Draft(p *parser.Parser, text string) {
	if p == nil {
		p = parser.New()
	}
	if strings.TrimSpace(text) == "" {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), " empty draft")
		return
	}
	marked := color.New(color.Bold)
	plain := color.New(color.Faint)
	for _, line := range parser.Lines(text) {
		if p.IsMarkedLine(line) && p.ContentOf(line) != "" {
			_, _ = marked.Fprintln(pp.out(), line)
		} else {
			_, _ = plain.Fprintln(pp.out(), line)
		}
	}
}
