package app

import (
	"time"

	"tableflip.dev/bnote/pkg/daygroup"
	"tableflip.dev/bnote/pkg/glyph"
)

// ReportSection tallies one calendar day.
type ReportSection struct {
	Day       daygroup.Day
	Tasks     int
	Completed int
	Events    int
	Notes     int
}

// Open is the number of tasks not yet completed.
func (s ReportSection) Open() int {
	return s.Tasks - s.Completed
}

// ReportResult summarizes the entries created between Since and Until.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report tallies entries per local day for entries created within
// [since, until]. Sections are newest first.
func (n *Notebook) Report(since, until time.Time, loc *time.Location) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	res := ReportResult{Since: since, Until: until}
	for _, day := range n.Days(loc) {
		section := ReportSection{Day: daygroup.Day{Key: day.Key, Date: day.Date}}
		for _, ref := range day.Entries {
			created := ref.Entry.Created.Time
			if created.Before(since) || created.After(until) {
				continue
			}
			section.Day.Entries = append(section.Day.Entries, ref)
			switch ref.Entry.Type {
			case glyph.TypeTask:
				section.Tasks++
				if ref.Entry.Completed() {
					section.Completed++
				}
			case glyph.TypeEvent:
				section.Events++
			case glyph.TypeNote:
				section.Notes++
			}
		}
		if len(section.Day.Entries) == 0 {
			continue
		}
		res.Total += len(section.Day.Entries)
		res.Sections = append(res.Sections, section)
	}
	return res
}
