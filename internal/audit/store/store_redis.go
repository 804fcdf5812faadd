package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"appr/internal/audit"
	"appr/pkg/platform/sentinel"
)

const (
	recordKeyPrefix = "appr:validation:"
	recentListKey   = "appr:validations:recent"

	defaultRecordTTL  = 30 * 24 * time.Hour
	defaultRecentSize = 1000
)

// appendScript writes the record and indexes it in one step, so a stored
// record is always listed. A duplicate id changes nothing.
var appendScript = redis.NewScript(`
if redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2]) then
	redis.call('LPUSH', KEYS[2], ARGV[3])
	redis.call('LTRIM', KEYS[2], 0, ARGV[4])
	return 1
end
return 0
`)

// RedisStore keeps each record as a JSON value with a TTL and tracks
// recent ids in a capped list.
type RedisStore struct {
	client     *redis.Client
	ttl        time.Duration
	recentSize int64
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRecordTTL sets how long records are retained.
func WithRecordTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRecentSize caps the recent-id list.
func WithRecentSize(n int) RedisStoreOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.recentSize = int64(n)
		}
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:     client,
		ttl:        defaultRecordTTL,
		recentSize: defaultRecentSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func recordKey(requestID string) string {
	return recordKeyPrefix + requestID
}

// Append stores rec once; a second append for the same id is ignored.
func (s *RedisStore) Append(ctx context.Context, rec audit.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	keys := []string{recordKey(rec.RequestID), recentListKey}
	err = appendScript.Run(ctx, s.client, keys,
		payload, s.ttl.Milliseconds(), rec.RequestID, s.recentSize-1).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("store audit record: %w", err)
	}
	return nil
}

func (s *RedisStore) FindByRequestID(ctx context.Context, requestID string) (*audit.Record, error) {
	raw, err := s.client.Get(ctx, recordKey(requestID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load audit record: %w", err)
	}

	var rec audit.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode audit record: %w", err)
	}
	return &rec, nil
}

// ListRecent skips ids whose records have already expired.
func (s *RedisStore) ListRecent(ctx context.Context, limit int) ([]audit.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.client.LRange(ctx, recentListKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent audit ids: %w", err)
	}
	if len(ids) == 0 {
		return []audit.Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = recordKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load recent audit records: %w", err)
	}

	out := make([]audit.Record, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var rec audit.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode audit record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
