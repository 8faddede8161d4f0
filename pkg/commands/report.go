package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/app"
	"tableflip.dev/bnote/pkg/commands/options"
	"tableflip.dev/bnote/pkg/printers"
	"tableflip.dev/bnote/pkg/timeutil"
)

func addReport(topLevel *cobra.Command, r *root) {
	var last string
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize tasks, events and notes per day",
		Long: `Report tallies the entries saved within the specified time window, per day.

Examples:
  bnote report
  bnote report --last 3d
  bnote report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			duration, label, err := timeutil.ParseWindow(last)
			if err != nil {
				return err
			}
			until := time.Now()
			since := until.Add(-duration)

			nb, err := r.load(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer r.close(nb)

			result := nb.Report(since, until, time.Local)
			if oo.JSON {
				return oo.Print(result)
			}
			renderReport(cmd.OutOrStdout(), result, label, ido.ShowID)
			return nil
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func renderReport(w io.Writer, result app.ReportResult, label string, showID bool) {
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(w, "Report · last %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(w, "  No entries found in this window.")
		_, _ = fmt.Fprintln(w)
		return
	}

	pp := &printers.PrettyPrint{Out: w, ShowID: showID}
	for _, section := range result.Sections {
		_, _ = fmt.Fprintf(w, "\n%s  tasks %d (%d open) · events %d · notes %d\n",
			section.Day.Key, section.Tasks, section.Open(), section.Events, section.Notes)
		pp.Entries(section.Day.Entries...)
	}
	_, _ = fmt.Fprintf(w, "%d entries\n", result.Total)
}
