package lock

import (
	"context"
	"sync"
	"time"

	"workshop/internal/core/ports"
)

// LocalLocker keeps locks in memory. Expired entries are taken over on the
// next Acquire of the same key.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]entry
	clock func() time.Time
	seq   uint64
}

type entry struct {
	expires time.Time
	seq     uint64
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]entry), clock: time.Now}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if current, ok := l.held[key]; ok && now.Before(current.expires) {
		return nil, ports.ErrLockHeld
	}
	l.seq++
	mine := entry{expires: now.Add(ttl), seq: l.seq}
	l.held[key] = mine

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if current, ok := l.held[key]; ok && current.seq == mine.seq {
			delete(l.held, key)
		}
		return nil
	}, nil
}
