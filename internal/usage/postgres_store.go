package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// the subset of pgxpool.Pool used by the store
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// implements Store using Postgres
type PostgresStore struct {
	db DBTX
}

// creates a new Postgres-backed usage store
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the usage_records table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, querySchema); err != nil {
		return fmt.Errorf("failed to create usage_records table: %w", err)
	}

	return nil
}

// retrieves the record for a client
func (s *PostgresStore) Load(ctx context.Context, key string) (*Record, error) {
	var record Record

	err := s.db.QueryRow(ctx, queryLoadUsage, key).Scan(&record.Count, &record.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load usage record: %w", err)
	}

	if record.Date == "" || record.Count < 0 {
		return nil, nil
	}

	return &record, nil
}

// overwrites the record for a client
func (s *PostgresStore) Save(ctx context.Context, key string, record Record) error {
	if _, err := s.db.Exec(ctx, querySaveUsage, key, record.Count, record.Date); err != nil {
		return fmt.Errorf("failed to save usage record: %w", err)
	}

	return nil
}

// increments the record in a single upsert; the row lock serializes concurrent callers
func (s *PostgresStore) Increment(ctx context.Context, key, today string, limit int) (Record, bool, error) {
	var record Record

	err := s.db.QueryRow(ctx, queryIncrementUsage, key, today, limit).Scan(&record.Count, &record.Date)
	if err == nil {
		return record, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, fmt.Errorf("failed to increment usage record: %w", err)
	}

	// cap reached: report the current record unchanged
	current, err := s.Load(ctx, key)
	if err != nil {
		return Record{}, false, err
	}

	if current == nil {
		return Record{Count: 0, Date: today}, false, nil
	}

	return *current, false, nil
}
