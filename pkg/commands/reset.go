package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

func addReset(topLevel *cobra.Command, r *root) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every saved entry and the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if !yes {
				return errors.New("reset deletes everything; pass --yes to confirm")
			}
			nb, _, err := r.open()
			if err != nil {
				return err
			}
			defer r.close(nb)
			return nb.Reset(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting all saved data.")
	topLevel.AddCommand(cmd)
}
