package dedup

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisTracker keeps the dedup window in Redis keys with a TTL equal to the
// window. Useful when the notification store is slow to scan or when several
// scanner instances share one window.
type RedisTracker struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisTracker creates a tracker over the given client. keyPrefix
// namespaces the keys, e.g. "maintops:stock_alert".
func NewRedisTracker(client redis.UniversalClient, keyPrefix string) *RedisTracker {
	return &RedisTracker{client: client, keyPrefix: keyPrefix}
}

func (t *RedisTracker) key(subjectID string) string {
	return t.keyPrefix + ":" + subjectID
}

// AlreadyNotified reports whether a window key exists for the subject.
func (t *RedisTracker) AlreadyNotified(ctx context.Context, subjectID string, _ time.Duration) (bool, error) {
	exists, err := t.client.Exists(ctx, t.key(subjectID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check dedup key: %w", err)
	}

	return exists > 0, nil
}

// Remember sets the window key with the window as TTL.
func (t *RedisTracker) Remember(ctx context.Context, subjectID string, window time.Duration) error {
	if err := t.client.Set(ctx, t.key(subjectID), "1", window).Err(); err != nil {
		return fmt.Errorf("failed to set dedup key: %w", err)
	}

	return nil
}
