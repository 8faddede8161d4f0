// Package idgen supplies opaque unique identifiers for entries and batches.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

const (
	EntryPrefix = "note"
	BatchPrefix = "category"
)

// Generator produces unique identifiers.
type Generator interface {
	NewID(prefix string) string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(prefix string) string

func (f GeneratorFunc) NewID(prefix string) string {
	return f(prefix)
}

// UUID returns a generator of the form "<prefix>-<uuid>".
func UUID() Generator {
	return GeneratorFunc(func(prefix string) string {
		if prefix == "" {
			return uuid.NewString()
		}
		return prefix + "-" + uuid.NewString()
	})
}

// Sequence returns a deterministic generator of the form "<prefix>-<n>",
// counting per prefix from 1.
func Sequence() Generator {
	return &sequence{next: make(map[string]int)}
}

type sequence struct {
	mu   sync.Mutex
	next map[string]int
}

func (s *sequence) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next[prefix]++
	return fmt.Sprintf("%s-%d", prefix, s.next[prefix])
}
