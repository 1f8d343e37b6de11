// Package lock provides ports.Locker implementations: a Redis one for
// multi-instance deployments and an in-process one for a single instance.
package lock

import (
	"context"
	"fmt"
	"time"

	"workshop/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "lock:"
	defaultTries  = 3
	defaultWait   = 100 * time.Millisecond
	releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) end return 0`
)

var release = redis.NewScript(releaseScript)

// RedisLocker takes SET NX locks with a random token. Release deletes the key
// only while it still carries that token, so an expired lock taken over by
// someone else is left alone.
type RedisLocker struct {
	client redis.UniversalClient
	tries  int
	wait   time.Duration
}

func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client, tries: defaultTries, wait: defaultWait}
}

// WithRetry sets how many times Acquire tries before giving up with ports.ErrLockHeld.
func (l *RedisLocker) WithRetry(tries int, wait time.Duration) *RedisLocker {
	l.tries = max(tries, 1)
	l.wait = wait
	return l
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	token := uuid.NewString()
	redisKey := keyPrefix + key

	for attempt := range l.tries {
		ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				return release.Run(ctx, l.client, []string{redisKey}, token).Err()
			}, nil
		}
		if attempt == l.tries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.wait):
		}
	}
	return nil, ports.ErrLockHeld
}
