package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/commands/options"
	"tableflip.dev/bnote/pkg/printers"
)

func addDraft(topLevel *cobra.Command, r *root) {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Show or edit the unsaved note",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDraftShow(cmd, r)
	addDraftSet(cmd, r)
	addDraftInsert(cmd, r)
	addDraftClear(cmd, r)
	topLevel.AddCommand(cmd)
}

func addDraftShow(parent *cobra.Command, r *root) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the draft, dimming lines that will not be saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			nb, err := r.load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer r.close(nb)

			if oo.JSON {
				return oo.Print(map[string]any{
					"text":       nb.Draft(),
					"canConfirm": nb.CanConfirm(),
				})
			}
			pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
			pp.Draft(nb.Parser, nb.Draft())
			return nil
		},
	}

	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addDraftSet(parent *cobra.Command, r *root) {
	in := &options.InputOptions{}
	var appendText bool

	cmd := &cobra.Command{
		Use:   "set [line...]",
		Short: "Replace the draft",
		Example: `
bnote draft set "• buy milk" "O dentist at 3"
bnote draft set --append "– remember the receipt"
bnote draft set -f notes.txt
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text, err := in.Read(args)
			if err != nil {
				return err
			}
			nb, err := r.load(cmd.Context())
			if err != nil {
				return err
			}
			defer r.close(nb)

			if appendText && nb.Draft() != "" {
				text = strings.TrimRight(nb.Draft(), "\n") + "\n" + text
			}
			return nb.SetDraft(cmd.Context(), text)
		},
	}

	options.AddInputArgs(cmd, in)
	cmd.Flags().BoolVarP(&appendText, "append", "a", false, "Append to the draft instead of replacing it.")
	parent.AddCommand(cmd)
}

func addDraftInsert(parent *cobra.Command, r *root) {
	so := &options.SymbolOptions{}
	var (
		at   int
		end  int
		line int
	)

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Put a marker at the start of a draft line",
		Long: `Insert places a marker at the start of the line holding the cursor.
A marker already on that line is replaced. The cursor is a byte offset given
with --at, or the start of a 1-based --line.`,
		Example: `
bnote draft insert --task --line 2
bnote draft insert --symbol event --at 14
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			nb, err := r.load(cmd.Context())
			if err != nil {
				return err
			}
			defer r.close(nb)

			sym, err := so.Symbol(nb.Parser.Grammar)
			if err != nil {
				return err
			}
			start := at
			if line > 0 {
				if start, err = lineOffset(nb.Draft(), line); err != nil {
					return err
				}
			}
			stop := start
			if cmd.Flags().Changed("end") {
				stop = end
			}
			res, err := nb.InsertSymbol(cmd.Context(), start, stop, sym)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "cursor %d\n", res.Cursor)
			pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
			pp.Draft(nb.Parser, res.Text)
			return nil
		},
	}

	options.AddSymbolArgs(cmd, so)
	cmd.Flags().IntVar(&at, "at", 0, "Cursor byte offset.")
	cmd.Flags().IntVar(&end, "end", 0, "Selection end byte offset (defaults to --at).")
	cmd.Flags().IntVarP(&line, "line", "l", 0, "Put the cursor at the start of this 1-based line.")
	parent.AddCommand(cmd)
}

func addDraftClear(parent *cobra.Command, r *root) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			nb, _, err := r.open()
			if err != nil {
				return err
			}
			defer r.close(nb)
			return nb.ClearDraft(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// lineOffset returns the byte offset of the start of the 1-based line n.
func lineOffset(text string, n int) (int, error) {
	offset := 0
	for i := 1; i < n; i++ {
		j := strings.IndexByte(text[offset:], '\n')
		if j < 0 {
			return 0, errors.New("draft has fewer lines than requested")
		}
		offset += j + 1
	}
	return offset, nil
}
