package usage

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	// free generations per calendar day
	MaxFreeUsage = 5

	// no cap; used by RecordUsage, which never enforces the limit
	Unlimited = -1

	// calendar-day identifier format stored in Record.Date
	DateLayout = "2006-01-02"

	// fixed storage key; stores namespace it per client
	StorageKey = "ai_content_studio_usage"
)

// returned when no generations remain for today
var ErrQuotaExhausted = errors.New("daily generation quota exhausted")

// generations consumed on one calendar day
type Record struct {
	Count int    `json:"count"`
	Date  string `json:"date"`
}

// persistence backend for usage records, keyed by client
type Store interface {
	// returns nil, nil when nothing (or nothing readable) is stored
	Load(ctx context.Context, key string) (*Record, error)
	Save(ctx context.Context, key string, record Record) error

	// atomically resets a stale record to today and adds one while count < limit.
	// limit < 0 means no cap. the bool reports whether the count was incremented.
	Increment(ctx context.Context, key, today string, limit int) (Record, bool, error)
}

// source of the current time
type Clock interface {
	Now() time.Time
}

// enforces the per-day quota on top of a Store
type Tracker struct {
	store    Store
	fallback *MemoryStore
	clock    Clock
	location *time.Location
	limit    int

	mu      sync.Mutex
	pending map[string]int
	locks   map[string]*keyLock
}

// serializes reservations for one key, dropped once nobody holds or waits on it
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// configures a Tracker
type Option func(*Tracker)

// holds one unit of capacity between the check and the commit
type Reservation struct {
	tracker *Tracker
	key     string

	mu   sync.Mutex
	done bool
}
