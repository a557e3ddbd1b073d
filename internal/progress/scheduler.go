// Package progress owns the practice history and decides when items are due.
//
// The Scheduler is the only component that mutates progress state. Each
// mutation builds a new state snapshot, swaps it in, saves it to the store
// and then notifies subscribers. Readers always see a complete snapshot.
package progress

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/algoviz/practice/internal/model"
	"github.com/algoviz/practice/internal/notify"
	"github.com/algoviz/practice/internal/store"
)

// Scheduler manages practice progress, review scheduling and streaks.
type Scheduler struct {
	store  store.Store
	hub    *notify.Hub
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location

	mu    sync.Mutex // serializes read-modify-write
	state atomic.Pointer[model.ProgressState]
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithLocation sets the time zone that defines calendar days for streaks.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) { s.loc = loc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithNotifier shares an existing hub instead of creating one.
func WithNotifier(h *notify.Hub) Option {
	return func(s *Scheduler) { s.hub = h }
}

// New creates a scheduler and loads its state from st. A missing, unreadable
// or corrupt blob yields an empty state; the failure is logged, not returned.
func New(ctx context.Context, st store.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.hub == nil {
		s.hub = notify.NewHub()
	}

	s.state.Store(s.load(ctx))
	return s
}

func (s *Scheduler) load(ctx context.Context) *model.ProgressState {
	if s.store == nil {
		return model.NewProgressState()
	}
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("progress state unreadable, starting empty", "error", err)
		return model.NewProgressState()
	}
	if loaded == nil {
		s.logger.Debug("no saved progress state, starting empty")
		return model.NewProgressState()
	}
	s.logger.Debug("progress state loaded", "items", len(loaded.Items), "streak", loaded.StreakCount)
	return loaded
}

// current returns the live snapshot. Callers must not modify it.
func (s *Scheduler) current() *model.ProgressState {
	return s.state.Load()
}

// clock returns the current time truncated to milliseconds, in UTC, so that
// in-memory timestamps match their persisted form.
func (s *Scheduler) clock() time.Time {
	return time.UnixMilli(s.now().UnixMilli()).UTC()
}

// commit swaps in next, saves it and notifies subscribers. A failed save is
// logged; the in-memory state stays updated.
func (s *Scheduler) commit(ctx context.Context, next *model.ProgressState, e notify.Event) {
	s.state.Store(next)
	if s.store != nil {
		if err := s.store.Save(ctx, next); err != nil {
			s.logger.Error("save progress state", "error", err, "event", e.Kind)
		}
	}
}

// Subscribe registers fn to run after every mutation.
func (s *Scheduler) Subscribe(fn notify.Listener) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// State returns a deep copy of the current state.
func (s *Scheduler) State() model.ProgressState {
	return *s.current().Clone()
}

// Location returns the time zone used for calendar days.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}
