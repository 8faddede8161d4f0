package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/glyph"
)

// SymbolOptions picks the marker to insert.
type SymbolOptions struct {
	Task  bool
	Event bool
	Note  bool
	Dash  bool
	Name  string
}

func AddSymbolArgs(cmd *cobra.Command, o *SymbolOptions) {
	cmd.Flags().BoolVarP(&o.Task, "task", "t", false,
		"Insert the task marker.")
	cmd.Flags().BoolVarP(&o.Event, "event", "e", false,
		"Insert the event marker.")
	cmd.Flags().BoolVarP(&o.Note, "note", "n", false,
		"Insert the note marker.")
	cmd.Flags().BoolVarP(&o.Dash, "dash", "d", false,
		"Insert the dash note marker.")
	cmd.Flags().StringVarP(&o.Name, "symbol", "s", "",
		"Insert a marker by key, type name or literal symbol.")
}

var ErrNoSymbol = errors.New("choose exactly one of --task, --event, --note, --dash or --symbol")

// Symbol resolves the selected marker against g, or the default grammar
// when g is nil.
func (o *SymbolOptions) Symbol(g *glyph.Grammar) (glyph.Symbol, error) {
	if g == nil {
		g = glyph.Default()
	}
	var names []string
	for name, set := range map[string]bool{
		"task":  o.Task,
		"event": o.Event,
		"note":  o.Note,
		"dash":  o.Dash,
	} {
		if set {
			names = append(names, name)
		}
	}
	if o.Name != "" {
		names = append(names, o.Name)
	}
	if len(names) != 1 {
		return "", ErrNoSymbol
	}
	sym, ok := g.Lookup(names[0])
	if !ok {
		return "", errors.New("unknown symbol " + names[0])
	}
	return sym, nil
}
