package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID  bool
	ID      string
	BatchID string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ids of entries and their batches.")
}

func AddBatchArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringVar(&o.BatchID, "batch", "",
		"Specify the batch holding the entry. Every batch is searched when empty.")
}
