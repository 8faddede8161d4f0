// Package daygroup buckets saved entries by the local calendar day they
// were created on.
package daygroup

import (
	"sort"
	"time"

	"tableflip.dev/bnote/pkg/entry"
	"tableflip.dev/bnote/pkg/timeutil"
)

// Ref is an entry together with the batch that owns it, so a later delete
// can find the right batch.
type Ref struct {
	Entry   entry.Entry `json:"entry"`
	BatchID string      `json:"batchId"`
}

// Day is one calendar day of entries.
type Day struct {
	Key     string    `json:"day"`
	Date    time.Time `json:"start"`
	Entries []Ref     `json:"entries"`
}

// ByLocalDay groups the entries of batches by calendar day in loc (nil means
// time.Local). Days are newest first and entries within a day are newest
// first; equal timestamps keep batch order, then item order. The input is
// not modified.
func ByLocalDay(batches []entry.Batch, loc *time.Location) []Day {
	if loc == nil {
		loc = time.Local
	}
	var days []Day
	index := make(map[string]int)
	for _, b := range batches {
		for _, e := range b.Items {
			if e.IsCompleted != nil {
				done := *e.IsCompleted
				e.IsCompleted = &done
			}
			key := timeutil.DayKey(e.Created.Time, loc)
			i, ok := index[key]
			if !ok {
				i = len(days)
				index[key] = i
				days = append(days, Day{Key: key, Date: timeutil.StartOfDay(e.Created.Time, loc)})
			}
			days[i].Entries = append(days[i].Entries, Ref{Entry: e, BatchID: b.ID})
		}
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	for _, d := range days {
		refs := d.Entries
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].Entry.Created.After(refs[j].Entry.Created.Time)
		})
	}
	return days
}

// Within keeps the days that start on or after the local day of now-window.
// A non-positive window keeps everything.
func Within(days []Day, now time.Time, window time.Duration, loc *time.Location) []Day {
	if window <= 0 {
		return days
	}
	cutoff := timeutil.StartOfDay(now.Add(-window), loc)
	out := make([]Day, 0, len(days))
	for _, d := range days {
		if !d.Date.Before(cutoff) {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the number of entries across days.
func Count(days []Day) int {
	var n int
	for _, d := range days {
		n += len(d.Entries)
	}
	return n
}
