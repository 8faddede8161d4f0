package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, r *root) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where notes are stored.",
		Example: `
bnote info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			nb, cfg, err := r.open()
			if err != nil {
				return err
			}
			defer r.close(nb)
			s := info.Info{
				Config:   cfg,
				Notebook: nb,
				Out:      cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
