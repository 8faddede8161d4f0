package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/app"
	"tableflip.dev/bnote/pkg/commands/options"
	"tableflip.dev/bnote/pkg/printers"
)

func addConfirm(topLevel *cobra.Command, r *root) {
	in := &options.InputOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "confirm [line...]",
		Aliases: []string{"save"},
		Short:   "Save the marked lines of the draft as a new batch",
		Long: `Confirm parses the draft, saves its marked lines as one batch and clears
the draft. Text given as arguments or with --file replaces the draft first.`,
		Example: `
bnote confirm
bnote confirm "• pay rent" "O lunch with Sam"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			nb, err := r.load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer r.close(nb)

			if len(args) > 0 || in.File != "" {
				text, err := in.Read(args)
				if err != nil {
					return oo.HandleError(err)
				}
				if strings.TrimSpace(text) != "" {
					// A failed save still leaves the text in the session.
					if err := nb.SetDraft(cmd.Context(), text); err != nil {
						nb.Log.Warn().Err(err).Msg("draft not saved")
					}
				}
			}

			b, err := nb.Confirm(cmd.Context())
			if errors.Is(err, app.ErrNothingToConfirm) {
				return oo.HandleError(errors.New("nothing to save: no line starts with a marker"))
			}
			if oo.JSON && len(b.Items) > 0 {
				if perr := oo.Print(b); perr != nil {
					return perr
				}
			} else if len(b.Items) > 0 {
				pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
				pp.Batch(b)
			}
			return oo.HandleError(err)
		},
	}

	options.AddInputArgs(cmd, in)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
