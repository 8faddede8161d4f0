package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/commands/options"
)

func addDelete(topLevel *cobra.Command, r *root) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <entry id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved entry",
		Example: `
bnote days --show-id
bnote delete note-5f0c... --batch category-9a1e...
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
			return oo.HandleError(nb.Delete(cmd.Context(), io.ID, io.BatchID))
		},
	}

	options.AddBatchArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
