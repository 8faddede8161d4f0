package store

import (
	"context"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/bnote/pkg/entry"
)

// Diskv stores entries and the draft as two files under a base directory,
// named "<prefix>-saved-notes" and "<prefix>-editor-content".
type Diskv struct {
	d          *diskv.Diskv
	basePath   string
	entriesKey string
	draftKey   string

	Log zerolog.Logger
}

// NewDiskv returns a diskv backend rooted at basePath.
func NewDiskv(basePath, prefix string) *Diskv {
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: 0, // files may change under us; see Watch
		}),
		basePath:   basePath,
		entriesKey: storageKey(prefix, keySavedNotes),
		draftKey:   storageKey(prefix, keyEditorContent),
		Log:        zerolog.Nop(),
	}
}

func flatTransform(string) []string {
	return []string{}
}

func (s *Diskv) BasePath() string {
	return s.basePath
}

func (s *Diskv) Describe() string {
	return fmt.Sprintf("diskv:%s", s.basePath)
}

func (s *Diskv) available(op string) error {
	if s.basePath == "" {
		return unavailable(op, fmt.Errorf("store: base path unknown"))
	}
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return unavailable(op, err)
	}
	return nil
}

func (s *Diskv) read(op, key string) ([]byte, error) {
	if err := s.available(op); err != nil {
		return nil, err
	}
	if !s.d.Has(key) {
		return nil, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		return nil, operationFailed(op, err)
	}
	return val, nil
}

func (s *Diskv) write(op, key string, val []byte) error {
	if err := s.available(op); err != nil {
		return err
	}
	if err := s.d.Write(key, val); err != nil {
		return operationFailed(op, err)
	}
	return nil
}

func (s *Diskv) erase(op string, keys ...string) error {
	if err := s.available(op); err != nil {
		return err
	}
	for _, key := range keys {
		if !s.d.Has(key) {
			continue
		}
		if err := s.d.Erase(key); err != nil {
			return operationFailed(op, err)
		}
	}
	return nil
}

func (s *Diskv) SaveEntries(_ context.Context, entries []entry.Entry) error {
	data, err := entry.MarshalList(entries)
	if err != nil {
		return operationFailed(OpSaveEntries, err)
	}
	return s.write(OpSaveEntries, s.entriesKey, data)
}

func (s *Diskv) LoadEntries(_ context.Context) ([]entry.Entry, error) {
	data, err := s.read(OpLoadEntries, s.entriesKey)
	if err != nil {
		return nil, err
	}
	list, err := entry.UnmarshalList(data)
	if err != nil {
		return nil, decodeFailed(OpLoadEntries, err)
	}
	return list, nil
}

func (s *Diskv) SaveDraft(_ context.Context, text string) error {
	return s.write(OpSaveDraft, s.draftKey, []byte(text))
}

func (s *Diskv) LoadDraft(_ context.Context) (string, error) {
	data, err := s.read(OpLoadDraft, s.draftKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Diskv) ClearAll(_ context.Context) error {
	return s.erase(OpClearAll, s.entriesKey, s.draftKey)
}

func (s *Diskv) ClearEntries(_ context.Context) error {
	return s.erase(OpClearEntries, s.entriesKey)
}

func (s *Diskv) ClearDraft(_ context.Context) error {
	return s.erase(OpClearDraft, s.draftKey)
}
