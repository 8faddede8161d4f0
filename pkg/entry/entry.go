// Package entry holds the journal records produced by the parser.
package entry

import (
	"encoding/json"
	"fmt"

	"tableflip.dev/bnote/pkg/glyph"
)

// ImportedBatchID collects entries that were stored without a batch id.
const ImportedBatchID = "imported"

// DefaultBatchName is the name given to freshly parsed batches.
const DefaultBatchName = "Notes"

// Entry is a classified line. Content is never empty.
type Entry struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Type        glyph.Type `json:"type"`
	IsCompleted *bool      `json:"isCompleted,omitempty"`
	Created     Timestamp  `json:"createdAt"`
	BatchID     string     `json:"batchId,omitempty"`
}

// Completed reports whether a task entry has been marked done.
func (e Entry) Completed() bool {
	return e.IsCompleted != nil && *e.IsCompleted
}

// WithCompleted returns a copy of e with the completion flag set.
func (e Entry) WithCompleted(done bool) Entry {
	e.IsCompleted = &done
	return e
}

// Symbol returns the canonical marker for the entry type in g.
func (e Entry) Symbol(g *glyph.Grammar) glyph.Symbol {
	if g == nil {
		g = glyph.Default()
	}
	s, _ := g.SymbolFor(e.Type)
	return s
}

func (e Entry) Row() (string, string, string) {
	mark := " "
	if e.Completed() {
		mark = "✘"
	}
	return mark, e.Symbol(nil).String(), e.Content
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s", e.Symbol(nil), e.Content)
}

// Batch is a set of entries confirmed together.
type Batch struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Items   []Entry   `json:"items"`
	Created Timestamp `json:"createdAt"`
}

// Clone returns a deep copy of b.
func (b Batch) Clone() Batch {
	items := make([]Entry, len(b.Items))
	for i, e := range b.Items {
		if e.IsCompleted != nil {
			done := *e.IsCompleted
			e.IsCompleted = &done
		}
		items[i] = e
	}
	b.Items = items
	return b
}

// MarshalList encodes entries in the stored list format.
func MarshalList(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalList decodes the stored list format. Empty input is an empty list.
func UnmarshalList(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return []Entry{}, nil
	}
	var out []Entry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Entry{}
	}
	return out, nil
}

// Flatten lists every entry of batches in order, stamping each with its
// batch id.
func Flatten(batches []Batch) []Entry {
	var n int
	for _, b := range batches {
		n += len(b.Items)
	}
	out := make([]Entry, 0, n)
	for _, b := range batches {
		for _, e := range b.Items {
			e.BatchID = b.ID
			out = append(out, e)
		}
	}
	return out
}

// Regroup rebuilds batches from a flat list, in order of first appearance.
// A batch takes the creation time of its first entry.
func Regroup(entries []Entry) []Batch {
	var out []Batch
	index := make(map[string]int)
	for _, e := range entries {
		id := e.BatchID
		if id == "" {
			id = ImportedBatchID
			e.BatchID = id
		}
		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, Batch{ID: id, Name: DefaultBatchName, Created: e.Created})
		}
		out[i].Items = append(out[i].Items, e)
	}
	return out
}
