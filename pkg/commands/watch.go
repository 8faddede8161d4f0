package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/printers"
	"tableflip.dev/bnote/pkg/store"
)

func addWatch(topLevel *cobra.Command, r *root) {
	var show bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow changes made to the notes by other processes",
		Long: `Watch reloads the notebook whenever another bnote process saves entries
or the draft, and prints what changed. Only the diskv backend reports changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			nb, err := r.load(ctx)
			if err != nil {
				return err
			}
			defer r.close(nb)

			events, err := nb.Watch(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			pp := &printers.PrettyPrint{Out: out}
			_, _ = fmt.Fprintln(out, "watching for changes, interrupt to stop")

			for ev := range events {
				if err := nb.Load(ctx); err != nil {
					nb.Log.Error().Err(err).Msg("reload failed")
					continue
				}
				stamp := time.Now().Format("15:04:05")
				switch ev.Type {
				case store.EventDraftChanged:
					_, _ = fmt.Fprintf(out, "%s draft changed\n", stamp)
					if show {
						pp.Draft(nb.Parser, nb.Draft())
					}
				default:
					days := nb.Days(nil)
					_, _ = fmt.Fprintf(out, "%s %s: %d entries over %d days\n", stamp, ev.Type, daygroup.Count(days), len(days))
					if show {
						pp.Days(days)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the changed draft or days after each change.")
	topLevel.AddCommand(cmd)
}
