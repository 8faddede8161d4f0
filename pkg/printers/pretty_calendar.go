package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/bnote/pkg/daygroup"
)

const weekHeader = "Su Mo Tu We Th Fr Sa"

// Calendar prints the month containing on. Days with saved entries are
// bold, on itself is underlined.
func (pp *PrettyPrint) Calendar(on time.Time, days []daygroup.Day) {
	first := time.Date(on.Year(), on.Month(), 1, 0, 0, 0, 0, on.Location())
	count := make([]int, DaysIn(first))
	var total, active int
	for _, d := range days {
		if d.Date.Year() != first.Year() || d.Date.Month() != first.Month() || len(d.Entries) == 0 {
			continue
		}
		count[d.Date.Day()-1] += len(d.Entries)
		total += len(d.Entries)
		active++
	}
	pp.PrintMonthCount(first, on.Day(), count)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "%d entries on %d days\n\n", total, active)
}

// PrintMonthCount draws a month grid for then. count[i] is the number of
// entries on day i+1; mark (1-based, 0 for none) is underlined.
func (pp *PrettyPrint) PrintMonthCount(then time.Time, mark int, count []int) {
	w := pp.out()

	title := fmt.Sprintf("%s %d", then.Month(), then.Year())
	pad := (len(weekHeader) - len(title)) / 2
	_, _ = color.New(color.FgWhite, color.Italic).Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), title)
	_, _ = color.New(color.Faint).Fprintln(w, weekHeader)

	quiet := color.New(color.Faint, color.FgWhite)
	busy := color.New(color.Bold, color.FgHiWhite)

	wd := StartDay(then)
	_, _ = fmt.Fprint(w, strings.Repeat("   ", int(wd)))
	for day := 1; day <= DaysIn(then); day++ {
		c := quiet
		if day <= len(count) && count[day-1] > 0 {
			c = busy
		}
		if day == mark {
			c = color.New(color.Underline, color.Bold)
		}
		_, _ = c.Fprintf(w, "%2d", day)

		if wd == time.Saturday {
			_, _ = fmt.Fprintln(w)
			wd = time.Sunday
			continue
		}
		_, _ = fmt.Fprint(w, " ")
		wd++
	}
	if wd != time.Sunday {
		_, _ = fmt.Fprintln(w)
	}
}

// DaysIn returns the number of days in then's month.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the first of then's month.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 12, 0, 0, 0, time.UTC).Weekday()
}
