package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// usage:{clientKey} - JSON record {"count":n,"date":"YYYY-MM-DD"}
const keyUsageRecord = StorageKey + ":%s"

// read-modify-write of the JSON record in one step.
// ARGV[1] = today, ARGV[2] = limit (negative for no cap)
// returns {allowed, count}
const incrementScript = `
local today = ARGV[1]
local limit = tonumber(ARGV[2])
local count = 0

local raw = redis.call("GET", KEYS[1])
if raw then
  local ok, record = pcall(cjson.decode, raw)
  if ok and type(record) == "table" and record["date"] == today
    and type(record["count"]) == "number" and record["count"] >= 0 then
    count = record["count"]
  end
end

local allowed = 0
if limit < 0 or count < limit then
  count = count + 1
  allowed = 1
end

redis.call("SET", KEYS[1], cjson.encode({count = count, date = today}))

return {allowed, count}
`

// implements Store using Redis
type RedisStore struct {
	client    *redis.Client
	increment *redis.Script
}

// creates a new Redis-backed usage store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:    client,
		increment: redis.NewScript(incrementScript),
	}
}

// creates a new Redis-backed usage store from a URL
func NewRedisStoreFromURL(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStore(client), nil
}

// retrieves the record for a client
func (s *RedisStore) Load(ctx context.Context, key string) (*Record, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf(keyUsageRecord, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get usage from redis: %w", err)
	}

	return parseRecord(raw), nil
}

// overwrites the record for a client
func (s *RedisStore) Save(ctx context.Context, key string, record Record) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, fmt.Sprintf(keyUsageRecord, key), string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to set usage in redis: %w", err)
	}

	return nil
}

// increments the record with a Lua script so concurrent callers cannot lose updates
func (s *RedisStore) Increment(ctx context.Context, key, today string, limit int) (Record, bool, error) {
	result, err := s.increment.Run(ctx, s.client, []string{fmt.Sprintf(keyUsageRecord, key)}, today, limit).Int64Slice()
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to increment usage in redis: %w", err)
	}

	if len(result) != 2 {
		return Record{}, false, fmt.Errorf("unexpected increment result: %v", result)
	}

	return Record{Count: int(result[1]), Date: today}, result[0] == 1, nil
}

// returns the underlying Redis client
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// closes the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
