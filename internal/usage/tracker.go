package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/contentstudio/server/internal/logger"
)

var errReservationClosed = errors.New("reservation already committed or released")

// sets the daily cap (defaults to MaxFreeUsage)
func WithLimit(limit int) Option {
	return func(t *Tracker) {
		if limit > 0 {
			t.limit = limit
		}
	}
}

// sets the time zone that defines a calendar day (defaults to time.Local)
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.location = loc
		}
	}
}

// creates a tracker over the given store and clock.
// a nil store keeps usage in memory only.
func NewTracker(store Store, clock Clock, opts ...Option) *Tracker {
	fallback := NewMemoryStore()

	if store == nil {
		store = fallback
	}

	if clock == nil {
		clock = SystemClock{}
	}

	t := &Tracker{
		store:    store,
		fallback: fallback,
		clock:    clock,
		location: time.Local,
		limit:    MaxFreeUsage,
		pending:  make(map[string]int),
		locks:    make(map[string]*keyLock),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// returns the daily cap
func (t *Tracker) Limit() int {
	return t.limit
}

// returns today's calendar-day identifier
func (t *Tracker) Today() string {
	return t.clock.Now().In(t.location).Format(DateLayout)
}

// returns generations left in a record, never below zero
func (t *Tracker) Remaining(record Record) int {
	return max(0, t.limit-record.Count)
}

// reads today's record, creating it or resetting it after a day rollover
func (t *Tracker) CurrentUsage(ctx context.Context, key string) (Record, error) {
	today := t.Today()

	var current Record
	err := t.run(ctx, key, "current_usage", func(store Store) error {
		stored, err := store.Load(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to load usage: %w", err)
		}

		if stored != nil && stored.Date == today {
			current = *stored
			return nil
		}

		fresh := Record{Count: 0, Date: today}
		if err := store.Save(ctx, key, fresh); err != nil {
			return fmt.Errorf("failed to save usage: %w", err)
		}

		current = fresh
		return nil
	})

	return current, err
}

// reports whether another generation fits in today's quota.
// capacity already held by outstanding reservations counts as used.
func (t *Tracker) HasCapacity(ctx context.Context, key string) (bool, error) {
	unlock := t.lockKey(key)
	defer unlock()

	record, err := t.CurrentUsage(ctx, key)
	if err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return record.Count+t.pending[key] < t.limit, nil
}

// adds one generation to today's count. the cap is not enforced here,
// callers check HasCapacity (or use Reserve) first.
func (t *Tracker) RecordUsage(ctx context.Context, key string) (Record, error) {
	return t.increment(ctx, key, Unlimited)
}

// atomically checks capacity and holds one unit of it until the
// reservation is committed or released
func (t *Tracker) Reserve(ctx context.Context, key string) (*Reservation, error) {
	unlock := t.lockKey(key)
	defer unlock()

	record, err := t.CurrentUsage(ctx, key)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if record.Count+t.pending[key] >= t.limit {
		return nil, ErrQuotaExhausted
	}

	t.pending[key]++

	return &Reservation{tracker: t, key: key}, nil
}

// records the reserved generation. the store enforces the cap again so
// that two processes sharing a store cannot both take the last unit.
func (r *Reservation) Commit(ctx context.Context) (Record, error) {
	if err := r.close(); err != nil {
		return Record{}, err
	}

	unlock := r.tracker.lockKey(r.key)
	defer unlock()
	defer r.tracker.releasePending(r.key)

	return r.tracker.increment(ctx, r.key, r.tracker.limit)
}

// gives the reserved unit back without consuming it. safe to call more than once.
func (r *Reservation) Release() {
	if err := r.close(); err != nil {
		return
	}

	r.tracker.releasePending(r.key)
}

func (r *Reservation) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return errReservationClosed
	}

	r.done = true
	return nil
}

// holds the per-key lock so store I/O for one client never blocks another
func (t *Tracker) lockKey(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &keyLock{}
		t.locks[key] = l
	}
	l.refs++
	t.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		t.mu.Lock()
		defer t.mu.Unlock()

		l.refs--
		if l.refs == 0 {
			delete(t.locks, key)
		}
	}
}

func (t *Tracker) releasePending(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending[key] <= 1 {
		delete(t.pending, key)
		return
	}

	t.pending[key]--
}

func (t *Tracker) increment(ctx context.Context, key string, limit int) (Record, error) {
	today := t.Today()

	var (
		record  Record
		allowed bool
	)

	err := t.run(ctx, key, "increment", func(store Store) error {
		var err error
		record, allowed, err = store.Increment(ctx, key, today, limit)
		if err != nil {
			return fmt.Errorf("failed to increment usage: %w", err)
		}
		return nil
	})

	if err != nil {
		return Record{}, err
	}

	if !allowed {
		return record, ErrQuotaExhausted
	}

	return record, nil
}

// runs fn against the primary store and fails open to the in-memory
// fallback when the primary is unreachable. usage then counts from zero
// for as long as the primary keeps failing.
func (t *Tracker) run(ctx context.Context, key, op string, fn func(Store) error) error {
	err := fn(t.store)
	if err == nil || t.store == Store(t.fallback) {
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	logger.Warn("usage store unavailable, failing open to memory",
		"op", op,
		"client_key", key,
		"error", err,
	)

	return fn(t.fallback)
}
