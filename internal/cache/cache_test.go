package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheWithoutRedisIsMiss(t *testing.T) {
	c := New(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetObject(ctx, "k", map[string]int{"a": 1}))
	var out map[string]int
	found, err := c.GetObject(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Invalidate(ctx, "k"))

	var nilCache *Cache
	found, err = nilCache.GetObject(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocalLockSerializesSameKey(t *testing.T) {
	l := NewLocker(nil)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithLock(ctx, "client:1", func() error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.local)
}

func TestLocalLockHonorsContext(t *testing.T) {
	l := NewLocker(nil)
	hold := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = l.WithLock(context.Background(), "snapshot:2025-01", func() error {
			close(started)
			<-hold
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.WithLock(ctx, "snapshot:2025-01", func() error { return nil })
	assert.ErrorIs(t, err, ErrLockNotObtained)

	// outra chave não espera
	require.NoError(t, l.WithLock(context.Background(), "snapshot:2025-02", func() error { return nil }))
	close(hold)
}

func TestLockPropagatesCallbackError(t *testing.T) {
	l := NewLocker(nil)
	boom := errors.New("boom")
	assert.ErrorIs(t, l.WithLock(context.Background(), "x", func() error { return boom }), boom)
}

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) Refresh(context.Context, time.Duration, *redislock.Options) error {
	c.calls.Add(1)
	return c.err
}

func TestKeepAliveRefreshesUntilStopped(t *testing.T) {
	r := &countingRefresher{}
	stop := keepAlive(context.Background(), r, 20*time.Millisecond)
	time.Sleep(75 * time.Millisecond)
	stop()

	calls := r.calls.Load()
	assert.GreaterOrEqual(t, calls, int32(2))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, r.calls.Load())
}

func TestKeepAliveGivesUpAfterRefreshError(t *testing.T) {
	r := &countingRefresher{err: redislock.ErrNotObtained}
	stop := keepAlive(context.Background(), r, 10*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	stop()
	assert.Equal(t, int32(1), r.calls.Load())
}
