package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/commands/options"
	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/printers"
)

func addDays(topLevel *cobra.Command, r *root) {
	do := &options.DayOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "days",
		Aliases: []string{"list", "ls"},
		Short:   "List saved entries grouped by day, newest first",
		Example: `
bnote days
bnote days --last 3d --show-id
bnote days --calendar --on 2024-3-1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			window, err := do.Window()
			if err != nil {
				return err
			}
			nb, err := r.load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer r.close(nb)

			loc := do.Location()
			now := time.Now().In(loc)
			days := daygroup.Within(nb.Days(loc), now, window, loc)

			if oo.JSON {
				return oo.Print(days)
			}
			pp := &printers.PrettyPrint{ShowID: ido.ShowID, Out: cmd.OutOrStdout()}
			if do.Calendar {
				on, err := do.GetOn(now)
				if err != nil {
					return err
				}
				pp.Calendar(on, days)
				return nil
			}
			pp.Days(days)
			return nil
		},
	}

	options.AddDayArgs(cmd, do)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
