package store

import (
	"context"
	"sync"

	"tableflip.dev/bnote/pkg/entry"
)

// Memory keeps entries and the draft in process. It serializes entries the
// same way the file backends do so callers never share slices with it.
type Memory struct {
	mu      sync.Mutex
	entries []byte
	draft   *string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveEntries(_ context.Context, entries []entry.Entry) error {
	data, err := entry.MarshalList(entries)
	if err != nil {
		return operationFailed(OpSaveEntries, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = data
	return nil
}

func (m *Memory) LoadEntries(_ context.Context) ([]entry.Entry, error) {
	m.mu.Lock()
	data := m.entries
	m.mu.Unlock()
	list, err := entry.UnmarshalList(data)
	if err != nil {
		return nil, decodeFailed(OpLoadEntries, err)
	}
	return list, nil
}

func (m *Memory) SaveDraft(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = &text
	return nil
}

func (m *Memory) LoadDraft(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return "", nil
	}
	return *m.draft, nil
}

func (m *Memory) ClearAll(ctx context.Context) error {
	if err := m.ClearEntries(ctx); err != nil {
		return err
	}
	return m.ClearDraft(ctx)
}

func (m *Memory) ClearEntries(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

func (m *Memory) ClearDraft(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
	return nil
}

func (m *Memory) Describe() string {
	return "memory"
}
