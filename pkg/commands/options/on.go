package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DayOptions selects which days to show.
type DayOptions struct {
	Last     string
	OnString string
	Calendar bool
	UTC      bool
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVar(&o.Last, "last", "",
		`Only show days within a window, example: --last=3d or --last=1w2d.`)
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Month to draw with --calendar, example: --on="2024-3-1" or --on="3/1".`)
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Draw a month calendar marking days with notes.")
	cmd.Flags().BoolVar(&o.UTC, "utc", false,
		"Group days in UTC instead of the local time zone.")
}

// Location is the zone days are grouped in.
func (o *DayOptions) Location() *time.Location {
	if o.UTC {
		return time.UTC
	}
	return time.Local
}

// Window returns the --last window, or zero when unset.
func (o *DayOptions) Window() (time.Duration, error) {
	if o.Last == "" {
		return 0, nil
	}
	d, _, err := timeutil.ParseWindow(o.Last)
	return d, err
}

func (o *DayOptions) GetOn(now time.Time) (time.Time, error) {
	if o.OnString == "" {
		return now, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, o.Location())
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, o.OnString, o.Location())
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
	}
	return t, nil
}
