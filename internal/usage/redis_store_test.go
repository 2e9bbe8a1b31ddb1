package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNow() time.Time {
	return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
}

func TestRedisStore_Load(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("ai_content_studio_usage:client-1").SetVal(`{"count":2,"date":"2026-10-18"}`)

		record, err := store.Load(ctx, "client-1")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, Record{Count: 2, Date: "2026-10-18"}, *record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("ai_content_studio_usage:client-2").RedisNil()

		record, err := store.Load(ctx, "client-2")
		require.NoError(t, err)
		assert.Nil(t, record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed", func(t *testing.T) {
		mock.ExpectGet("ai_content_studio_usage:client-3").SetVal(`garbage`)

		record, err := store.Load(ctx, "client-3")
		require.NoError(t, err)
		assert.Nil(t, record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectGet("ai_content_studio_usage:client-4").SetErr(errors.New("connection reset"))

		_, err := store.Load(ctx, "client-4")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStore_Save(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)

	mock.ExpectSet("ai_content_studio_usage:client-1", `{"count":0,"date":"2026-10-18"}`, 0).SetVal("OK")

	err := store.Save(ctx, "client-1", Record{Count: 0, Date: "2026-10-18"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Increment(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db)
	hash := store.increment.Hash()
	keys := []string{"ai_content_studio_usage:client-1"}

	t.Run("allowed", func(t *testing.T) {
		mock.ExpectEvalSha(hash, keys, "2026-10-18", 5).SetVal([]interface{}{int64(1), int64(3)})

		record, ok, err := store.Increment(ctx, "client-1", "2026-10-18", 5)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Record{Count: 3, Date: "2026-10-18"}, record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("capped", func(t *testing.T) {
		mock.ExpectEvalSha(hash, keys, "2026-10-18", 5).SetVal([]interface{}{int64(0), int64(5)})

		record, ok, err := store.Increment(ctx, "client-1", "2026-10-18", 5)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 5, record.Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectEvalSha(hash, keys, "2026-10-18", 5).SetErr(errors.New("connection reset"))

		_, _, err := store.Increment(ctx, "client-1", "2026-10-18", 5)
		assert.Error(t, err)
	})
}
