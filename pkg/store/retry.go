package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"tableflip.dev/bnote/pkg/entry"
)

// Retrier runs an operation up to Attempts times with a fixed Delay between
// attempts. Timer replaces the wall-clock wait; tests inject one that fires
// immediately. A disabled Retrier runs each operation once.
type Retrier struct {
	Enabled  bool
	Attempts int
	Delay    time.Duration
	Timer    backoff.Timer
	Log      zerolog.Logger
}

// DefaultRetrier returns three attempts one second apart.
func DefaultRetrier() Retrier {
	return Retrier{Enabled: true, Attempts: 3, Delay: time.Second, Log: zerolog.Nop()}
}

func (r Retrier) attempts() int {
	if !r.Enabled || r.Attempts < 1 {
		return 1
	}
	return r.Attempts
}

// Do runs fn until it succeeds, returns a decode failure, ctx is done or
// the attempts run out. Failures come back as an *Error classified by op.
func (r Retrier) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	total := r.attempts()
	var b backoff.BackOff = backoff.NewConstantBackOff(r.Delay)
	b = backoff.WithMaxRetries(b, uint64(total-1))
	b = backoff.WithContext(b, ctx)

	attempt := 0
	err := backoff.RetryNotifyWithTimer(func() error {
		attempt++
		err := fn(ctx)
		if err != nil && HasCode(err, CodeDecodeFailed) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, next time.Duration) {
		r.Log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Int("attempts", total).
			Dur("retry_in", next).
			Msg("storage operation failed, retrying")
	}, r.Timer)
	if err == nil {
		return nil
	}

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	r.Log.Error().Err(err).Str("op", op).Int("attempts", attempt).Msg("storage operation failed")
	return &Error{
		Op:      op,
		Code:    codeFor(op),
		Message: fmt.Sprintf("%s failed after %d attempts", op, attempt),
		Details: err,
	}
}

// Resilient wraps next so every operation is retried by r and failures are
// reported as *Error values.
func Resilient(next Adapter, r Retrier) Adapter {
	return &resilient{next: next, retry: r}
}

type resilient struct {
	next  Adapter
	retry Retrier
}

func (s *resilient) SaveEntries(ctx context.Context, entries []entry.Entry) error {
	return s.retry.Do(ctx, OpSaveEntries, func(ctx context.Context) error {
		return s.next.SaveEntries(ctx, entries)
	})
}

func (s *resilient) LoadEntries(ctx context.Context) ([]entry.Entry, error) {
	var out []entry.Entry
	err := s.retry.Do(ctx, OpLoadEntries, func(ctx context.Context) error {
		var err error
		out, err = s.next.LoadEntries(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *resilient) SaveDraft(ctx context.Context, text string) error {
	return s.retry.Do(ctx, OpSaveDraft, func(ctx context.Context) error {
		return s.next.SaveDraft(ctx, text)
	})
}

func (s *resilient) LoadDraft(ctx context.Context) (string, error) {
	var out string
	err := s.retry.Do(ctx, OpLoadDraft, func(ctx context.Context) error {
		var err error
		out, err = s.next.LoadDraft(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *resilient) ClearAll(ctx context.Context) error {
	return s.retry.Do(ctx, OpClearAll, s.next.ClearAll)
}

func (s *resilient) ClearEntries(ctx context.Context) error {
	return s.retry.Do(ctx, OpClearEntries, s.next.ClearEntries)
}

func (s *resilient) ClearDraft(ctx context.Context) error {
	return s.retry.Do(ctx, OpClearDraft, s.next.ClearDraft)
}

// Watch forwards to the wrapped backend when it supports change events.
func (s *resilient) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.next.(Watcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

func (s *resilient) Close() error {
	return Close(s.next)
}

// Describe reports the backend location for diagnostics.
func (s *resilient) Describe() string {
	if d, ok := s.next.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	return "unknown"
}
