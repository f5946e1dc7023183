package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs n concurrent critical sections on one key and reports the
// highest number of holders seen at once.
func exercise(t *testing.T, l Locker, key string, n int) int32 {
	t.Helper()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			now := inside.Add(1)
			for {
				prev := maxInside.Load()
				if now <= prev || maxInside.CompareAndSwap(prev, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()
	return maxInside.Load()
}

func TestLocal_SerializesSameKey(t *testing.T) {
	l := NewLocal()

	assert.Equal(t, int32(1), exercise(t, l, "user:1", 8))
	assert.Zero(t, l.size())
}

func TestLocal_DifferentKeysDoNotContend(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "user:1")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	unlockB, err := l.Lock(ctx, "user:2")
	require.NoError(t, err)
	unlockB()
}

func TestLocal_ContextCancelled(t *testing.T) {
	l := NewLocal()

	unlock, err := l.Lock(context.Background(), "user:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "user:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // second call is a no-op
	assert.Zero(t, l.size())
}

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	l := NewRedis(client, time.Minute)
	l.retryDelay = time.Millisecond
	return l, mr
}

func TestRedis_SerializesSameKey(t *testing.T) {
	l, mr := newTestRedis(t)

	assert.Equal(t, int32(1), exercise(t, l, "user:1", 5))
	assert.False(t, mr.Exists(keyPrefix+"user:1"))
}

func TestRedis_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	l, mr := newTestRedis(t)
	ctx := context.Background()

	unlockOld, err := l.Lock(ctx, "user:1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	unlockNew, err := l.Lock(ctx, "user:1")
	require.NoError(t, err)

	// The stale holder must not delete the new holder's key
	unlockOld()
	assert.True(t, mr.Exists(keyPrefix+"user:1"))

	unlockNew()
	assert.False(t, mr.Exists(keyPrefix+"user:1"))
}

func TestRedis_ExtendsWhileHeld(t *testing.T) {
	l, mr := newTestRedis(t)
	l.ttl = 300 * time.Millisecond
	key := keyPrefix + "user:1"

	unlock, err := l.Lock(context.Background(), "user:1")
	require.NoError(t, err)

	// Without renewal the key would be gone after another 300ms
	mr.FastForward(250 * time.Millisecond)
	require.Eventually(t, func() bool {
		return mr.TTL(key) > 100*time.Millisecond
	}, 2*time.Second, 10*time.Millisecond)
	mr.FastForward(250 * time.Millisecond)
	assert.True(t, mr.Exists(key))

	unlock()
	assert.False(t, mr.Exists(key))

	// A released key is not renewed
	time.Sleep(150 * time.Millisecond)
	assert.False(t, mr.Exists(key))
}

func TestRedis_ContextCancelled(t *testing.T) {
	l, _ := newTestRedis(t)

	unlock, err := l.Lock(context.Background(), "user:1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "user:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr)
	assert.Error(t, err)
}
