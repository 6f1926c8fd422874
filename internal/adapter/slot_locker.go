package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/turfhub/service-turf/pkg/domain"
)

// SlotLocker serialises admission attempts for one (venue, date, slot) key.
// The database unique constraint remains the authority; a lock only keeps
// concurrent requests from racing into it.
type SlotLocker interface {
	// Acquire blocks until the key is held or the wait time runs out, in
	// which case it returns a Conflict error. release must always be called.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// SlotKey builds the lock key for a booking triple.
func SlotKey(venueID uuid.UUID, date, slot string) string {
	return fmt.Sprintf("turf:slot:%s:%s:%s", venueID, date, slot)
}

func errSlotBusy() error {
	return domain.NewConflictError("slot is being booked, try again")
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSlotLocker holds keys with SET NX PX so every replica shares the lock.
type RedisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// NewRedisSlotLocker creates a RedisSlotLocker. ttl bounds how long a crashed
// holder can block a key; wait bounds how long Acquire polls.
func NewRedisSlotLocker(client *redis.Client, ttl, wait time.Duration, logger *zap.Logger) *RedisSlotLocker {
	return &RedisSlotLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  25 * time.Millisecond,
		logger: logger,
	}
}

// Acquire implements SlotLocker.
func (l *RedisSlotLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire slot lock: %w", err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, errSlotBusy()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *RedisSlotLocker) release(key, token string) {
	// The request context may already be cancelled; the key must still be freed.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.logger.Warn("failed to release slot lock", zap.String("key", key), zap.Error(err))
	}
}

// LocalSlotLocker is an in-process keyed mutex for single-replica deployments.
type LocalSlotLocker struct {
	mu   sync.Mutex
	keys map[string]*localKey
	wait time.Duration
}

type localKey struct {
	sem  chan struct{}
	refs int
}

// NewLocalSlotLocker creates a LocalSlotLocker with the given maximum wait.
func NewLocalSlotLocker(wait time.Duration) *LocalSlotLocker {
	return &LocalSlotLocker{keys: make(map[string]*localKey), wait: wait}
}

// Acquire implements SlotLocker.
func (l *LocalSlotLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	k, ok := l.keys[key]
	if !ok {
		k = &localKey{sem: make(chan struct{}, 1)}
		l.keys[key] = k
	}
	k.refs++
	l.mu.Unlock()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case k.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-k.sem
				l.unref(key, k)
			})
		}, nil
	case <-timer.C:
		l.unref(key, k)
		return nil, errSlotBusy()
	case <-ctx.Done():
		l.unref(key, k)
		return nil, ctx.Err()
	}
}

func (l *LocalSlotLocker) unref(key string, k *localKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k.refs--
	if k.refs == 0 {
		delete(l.keys, key)
	}
}

// size reports how many keys are tracked.
func (l *LocalSlotLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
