// Package store persists saved entries and the editor draft.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/bnote/pkg/entry"
)

// Adapter is the persistence contract consumed by the notebook.
type Adapter interface {
	SaveEntries(ctx context.Context, entries []entry.Entry) error
	LoadEntries(ctx context.Context) ([]entry.Entry, error)
	SaveDraft(ctx context.Context, text string) error
	LoadDraft(ctx context.Context) (string, error)
	ClearAll(ctx context.Context) error
	ClearEntries(ctx context.Context) error
	ClearDraft(ctx context.Context) error
}

// Backend names.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Stored item names, joined to the configured key prefix.
const (
	keySavedNotes    = "saved-notes"
	keyEditorContent = "editor-content"
)

// ErrUnsupportedBackend is returned by Open for unknown backend names.
var ErrUnsupportedBackend = errors.New("store: unsupported backend")

// Open builds the configured backend wrapped with retry and error
// classification.
func Open(cfg Config) (Adapter, error) {
	var (
		backend Adapter
		err     error
	)
	switch strings.ToLower(cfg.Backend) {
	case "", BackendDiskv:
		d := NewDiskv(cfg.Path, cfg.KeyPrefix)
		d.Log = cfg.Log
		backend = d
	case BackendSQLite:
		backend, err = NewSQLite(cfg.Path, cfg.KeyPrefix)
	case BackendMemory:
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Resilient(backend, cfg.Retrier()), nil
}

// Close releases a if it holds resources.
func Close(a Adapter) error {
	if c, ok := a.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func storageKey(prefix, name string) string {
	prefix = strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(prefix))
	if prefix == "" {
		return name
	}
	return prefix + "-" + name
}
