package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotObtained = errors.New("não foi possível obter o lock")

// Locker serializa escritas por chave (ex.: "client:42"). Com Redis usa
// redislock e vale entre instâncias; sem Redis cai num mutex local por chave.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy

	mu    sync.Mutex
	local map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewLocker(rdb *redis.Client) *Locker {
	l := &Locker{
		ttl:   30 * time.Second,
		retry: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
		local: map[string]*keyLock{},
	}
	if rdb != nil {
		l.client = redislock.New(rdb)
	}
	return l
}

// WithLock executa fn segurando o lock da chave
func (l *Locker) WithLock(ctx context.Context, key string, fn func() error) error {
	if l.client != nil {
		lock, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, &redislock.Options{RetryStrategy: l.retry})
		if errors.Is(err, redislock.ErrNotObtained) {
			return fmt.Errorf("%w: %s", ErrLockNotObtained, key)
		} else if err != nil {
			return err
		}
		stop := keepAlive(ctx, lock, l.ttl)
		defer func() {
			stop()
			_ = lock.Release(context.WithoutCancel(ctx))
		}()
		return fn()
	}

	k := l.acquireRef(key)
	defer l.releaseRef(key, k)
	select {
	case k.ch <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %s: %v", ErrLockNotObtained, key, ctx.Err())
	}
	defer func() { <-k.ch }()
	return fn()
}

func (l *Locker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	k, ok := l.local[key]
	if !ok {
		k = &keyLock{ch: make(chan struct{}, 1)}
		l.local[key] = k
	}
	k.refs++
	return k
}

func (l *Locker) releaseRef(key string, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k.refs--
	if k.refs == 0 {
		delete(l.local, key)
	}
}

type refresher interface {
	Refresh(ctx context.Context, ttl time.Duration, opt *redislock.Options) error
}

// keepAlive renova o lock a cada ttl/2 enquanto fn roda, para jobs longos
// (captura, job diário) não perderem o lock no meio. stop espera a goroutine sair.
func keepAlive(ctx context.Context, lock refresher, ttl time.Duration) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := lock.Refresh(ctx, ttl, nil); err != nil {
					config.LogError(config.GetLogger(), "cache", "keepAlive", "renovando lock", nil, err)
					return
				}
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
