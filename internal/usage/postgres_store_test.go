package usage

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements pgx.Row for testing
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		}
	}

	return nil
}

// implements DBTX for testing
type fakeDB struct {
	execFunc     func(sql string, args ...any) error
	queryRowFunc func(sql string, args ...any) pgx.Row
	queries      []string
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	if f.execFunc != nil {
		return pgconn.CommandTag{}, f.execFunc(sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	return f.queryRowFunc(sql, args...)
}

func TestPostgresStore_Load(t *testing.T) {
	ctx := context.Background()

	db := &fakeDB{queryRowFunc: func(_ string, args ...any) pgx.Row {
		if args[0] == "missing" {
			return fakeRow{err: pgx.ErrNoRows}
		}
		return fakeRow{values: []any{2, "2026-10-18"}}
	}}
	store := NewPostgresStore(db)

	record, err := store.Load(ctx, "client-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, Record{Count: 2, Date: "2026-10-18"}, *record)

	record, err = store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestPostgresStore_Save(t *testing.T) {
	var gotArgs []any
	db := &fakeDB{execFunc: func(_ string, args ...any) error {
		gotArgs = args
		return nil
	}}
	store := NewPostgresStore(db)

	err := store.Save(context.Background(), "client-1", Record{Count: 0, Date: "2026-10-18"})
	require.NoError(t, err)
	assert.Equal(t, []any{"client-1", 0, "2026-10-18"}, gotArgs)
	assert.Equal(t, querySaveUsage, db.queries[0])
}

func TestPostgresStore_Increment(t *testing.T) {
	ctx := context.Background()

	t.Run("allowed", func(t *testing.T) {
		db := &fakeDB{queryRowFunc: func(sql string, args ...any) pgx.Row {
			assert.Equal(t, queryIncrementUsage, sql)
			assert.Equal(t, []any{"client-1", "2026-10-18", 5}, args)
			return fakeRow{values: []any{3, "2026-10-18"}}
		}}

		record, ok, err := NewPostgresStore(db).Increment(ctx, "client-1", "2026-10-18", 5)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, record.Count)
	})

	t.Run("capped", func(t *testing.T) {
		db := &fakeDB{queryRowFunc: func(sql string, _ ...any) pgx.Row {
			if sql == queryIncrementUsage {
				return fakeRow{err: pgx.ErrNoRows}
			}
			return fakeRow{values: []any{5, "2026-10-18"}}
		}}

		record, ok, err := NewPostgresStore(db).Increment(ctx, "client-1", "2026-10-18", 5)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 5, record.Count)
	})

	t.Run("error", func(t *testing.T) {
		db := &fakeDB{queryRowFunc: func(string, ...any) pgx.Row {
			return fakeRow{err: errors.New("connection refused")}
		}}

		_, _, err := NewPostgresStore(db).Increment(ctx, "client-1", "2026-10-18", 5)
		assert.Error(t, err)
	})
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	db := &fakeDB{}

	require.NoError(t, NewPostgresStore(db).EnsureSchema(context.Background()))
	assert.Equal(t, []string{querySchema}, db.queries)
}
