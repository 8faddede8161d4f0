// Package key provides CLI helpers to display the marker legend.
package key

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/bnote/pkg/glyph"
)

// Key prints the markers the parser recognizes and the display legend.
type Key struct {
	Grammar *glyph.Grammar
	Version string
	Out     io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

// Do renders the marker table and the legend.
func (k *Key) Do(ctx context.Context) error {
	g := k.Grammar
	if g == nil {
		g = glyph.Default()
	}
	_, _ = fmt.Fprintln(k.out(), "")
	k.Markers(ctx, g)
	_, _ = fmt.Fprintln(k.out(), "")
	k.Types(ctx, g)
	_, _ = fmt.Fprintln(k.out(), "")
	k.Legend(ctx, glyph.Rules(k.Version))
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Markers renders one row per glyph in matching order.
func (k *Key) Markers(_ context.Context, g *glyph.Grammar) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Marker"), bold.Sprint("Type"), bold.Sprint("Flag"))
	for _, v := range g.Glyphs() {
		tbl.AddRow(v.Symbol, v.Label, faint.Sprint("--"+v.Key))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}

// Types renders each entry type with the marker it is shown with and
// any other markers that parse to it.
func (k *Key) Types(_ context.Context, g *glyph.Grammar) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Type"), bold.Sprint("Shown as"), bold.Sprint("Also"))
	for _, t := range glyph.AllTypes() {
		canonical, ok := g.SymbolFor(t)
		if !ok {
			tbl.AddRow(t, "-", "")
			continue
		}
		var also []string
		for _, v := range g.Glyphs() {
			if v.Type == t && v.Symbol != canonical {
				also = append(also, v.Symbol.String())
			}
		}
		tbl.AddRow(t, canonical, strings.Join(also, " "))
	}

	_, _ = fmt.Fprintln(k.out(), tbl)
}

// Legend renders the bilingual meaning table.
func (k *Key) Legend(_ context.Context, rules []glyph.Rule) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Legend"), bold.Sprint("Meaning"), "")
	for _, r := range rules {
		tbl.AddRow(r.Symbol, r.Meaning, r.MeaningEn)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
}
