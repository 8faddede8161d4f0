package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventEntriesChanged indicates the saved entry list was rewritten or
	// removed.
	EventEntriesChanged EventType = iota
	// EventDraftChanged indicates the editor draft changed.
	EventDraftChanged
	// EventInvalidated signals a change that could not be classified;
	// callers should reload everything.
	EventInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventEntriesChanged:
		return "entries"
	case EventDraftChanged:
		return "draft"
	default:
		return "all"
	}
}

// Event is emitted by Watch when underlying storage changes.
type Event struct {
	Type EventType
}

// Watcher is implemented by backends that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// ErrWatchUnsupported is returned when the backend cannot report changes.
var ErrWatchUnsupported = errors.New("store: backend does not support watching")

// Watch streams change events until ctx is cancelled. Bursts of writes are
// coalesced into one event per type. The channel is closed once ctx is done
// or the watcher fails.
func (s *Diskv) Watch(ctx context.Context) (<-chan Event, error) {
	if err := s.available("watch"); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(s.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", s.basePath, err)
	}

	events := make(chan Event, 16)
	go func() {
		throttle := newEventThrottle(100 * time.Millisecond)
		defer close(events)
		defer throttle.Stop()
		defer func() {
			if err := watcher.Close(); err != nil {
				s.Log.Warn().Err(err).Str("path", s.basePath).Msg("closing watcher")
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// The consumer reloads on the next event anyway.
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(EventInvalidated, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if t, ok := s.eventFor(evt.Name); ok {
					throttle.Enqueue(t, send)
				}
			}
		}
	}()

	return events, nil
}

func (s *Diskv) eventFor(path string) (EventType, bool) {
	switch filepath.Base(path) {
	case s.entriesKey:
		return EventEntriesChanged, true
	case s.draftKey:
		return EventDraftChanged, true
	}
	return 0, false
}

// eventThrottle coalesces rapid change notifications so consumers reload
// once per burst of filesystem activity.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev EventType, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	for _, typ := range []EventType{EventEntriesChanged, EventDraftChanged, EventInvalidated} {
		if _, ok := pending[typ]; ok {
			send(Event{Type: typ})
		}
	}
}

// Stop cancels any pending flush. It must run before the event channel is
// closed.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
