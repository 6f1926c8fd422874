package adapter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turfhub/service-turf/pkg/domain"
)

func TestSlotKey(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	assert.Equal(t, "turf:slot:11111111-1111-1111-1111-111111111111:2025-06-01:06:00-08:00",
		SlotKey(id, "2025-06-01", "06:00-08:00"))
}

func TestLocalSlotLocker_MutualExclusion(t *testing.T) {
	locker := NewLocalSlotLocker(time.Second)
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), "k")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Zero(t, locker.size())
}

func TestLocalSlotLocker_TimeoutIsConflict(t *testing.T) {
	locker := NewLocalSlotLocker(20 * time.Millisecond)
	release, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	_, err = locker.Acquire(context.Background(), "k")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestLocalSlotLocker_IndependentKeys(t *testing.T) {
	locker := NewLocalSlotLocker(20 * time.Millisecond)
	r1, err := locker.Acquire(context.Background(), "a")
	require.NoError(t, err)
	r2, err := locker.Acquire(context.Background(), "b")
	require.NoError(t, err)
	r1()
	r2()
	r2()
	assert.Zero(t, locker.size())
}

func TestLocalSlotLocker_ContextCancelled(t *testing.T) {
	locker := NewLocalSlotLocker(time.Second)
	release, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locker.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
