package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/commands/options"
)

func addComplete(topLevel *cobra.Command, r *root) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "complete <entry id>",
		Aliases: []string{"done", "toggle"},
		Short:   "Mark a task done, or reopen a done task",
		Example: `
bnote complete <entry id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an entry id")
			}
			io.ID = strings.TrimSpace(args[0])
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			nb, err := r.load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer r.close(nb)

			e, err := nb.ToggleComplete(cmd.Context(), io.ID, io.BatchID)
			if err != nil && e.ID == "" {
				return oo.HandleError(err)
			}
			if oo.JSON {
				if perr := oo.Print(e); perr != nil {
					return perr
				}
			} else {
				state := "open"
				if e.Completed() {
					state = "done"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  (%s)\n", e, state)
			}
			return oo.HandleError(err)
		},
	}

	options.AddBatchArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
