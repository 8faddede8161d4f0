package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/commands/options"
	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/parser"
	"tableflip.dev/bnote/pkg/printers"
)

func addParse(topLevel *cobra.Command) {
	in := &options.InputOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "parse [line...]",
		Short: "Show which lines of a note would be saved, without saving",
		Example: `
bnote parse "• buy milk" "just thinking" "O standup"
cat notes.txt | bnote parse --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text, err := in.Read(args)
			if err != nil {
				return oo.HandleError(err)
			}
			entries := parser.Parse(text)
			if oo.JSON {
				return oo.Print(entries)
			}
			pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
			pp.TitleWithCount("Parsed", len(entries))
			refs := make([]daygroup.Ref, 0, len(entries))
			for _, e := range entries {
				refs = append(refs, daygroup.Ref{Entry: e})
			}
			pp.Entries(refs...)
			return nil
		},
	}

	options.AddInputArgs(cmd, in)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
