package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/glyph"
	"tableflip.dev/bnote/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	var version string

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the markers and what they mean",
		Example: `
bnote key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Version: version, Out: cmd.OutOrStdout()}
			return k.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&version, "rules", glyph.CurrentRules, "Legend version to show.")
	topLevel.AddCommand(cmd)
}
