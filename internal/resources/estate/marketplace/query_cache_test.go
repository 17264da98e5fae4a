package marketplace

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestQueryCacheTTL(t *testing.T) {
	c := NewQueryCache(time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := Fetch(context.Background(), c, KeyCounter, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = Fetch(context.Background(), c, KeyCounter, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	v, err = Fetch(context.Background(), c, KeyCounter, fetch)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	hits, misses := c.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(2), misses)
}

func TestQueryCacheErrorsNotCached(t *testing.T) {
	c := NewQueryCache(time.Minute)
	fail := true
	fetch := func(ctx context.Context) (string, error) {
		if fail {
			return "", errors.New("node down")
		}
		return "ok", nil
	}

	_, err := Fetch(context.Background(), c, KeyOwner, fetch)
	require.Error(t, err)
	require.Equal(t, 0, c.Len())

	fail = false
	v, err := Fetch(context.Background(), c, KeyOwner, fetch)
	require.NoError(t, err)
	require.Equal(t, "ok", v)
}

func TestQueryCacheDeduplicatesConcurrentFetches(t *testing.T) {
	c := NewQueryCache(time.Minute)
	calls := atomic.NewInt32(0)
	release := make(chan struct{})

	fetch := func(ctx context.Context) (int, error) {
		calls.Inc()
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, KeyProperties, fetch)
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
}

func TestQueryCacheInvalidationDuringFetch(t *testing.T) {
	c := NewQueryCache(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Fetch(context.Background(), c, KeyProperties, func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		assert.NoError(t, err)
	}()

	<-started
	c.Invalidate(KeyProperties)
	close(release)
	<-done

	// the result fetched before invalidation is not stored
	v, err := Fetch(context.Background(), c, KeyProperties, func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	require.Equal(t, "fresh", v)
}

func TestQueryCacheInvalidateAll(t *testing.T) {
	c := NewQueryCache(time.Minute)
	ctx := context.Background()
	value := func(ctx context.Context) (int, error) { return 1, nil }

	for _, key := range []string{PropertyKey(big.NewInt(1)), PropertyKey(big.NewInt(2)), BidsKey(big.NewInt(1)), KeyCounter} {
		_, err := Fetch(ctx, c, key, value)
		require.NoError(t, err)
	}
	require.Equal(t, 4, c.Len())

	c.Invalidate(KeyCounter)
	require.Equal(t, 3, c.Len())

	c.InvalidateAll()
	require.Equal(t, 0, c.Len())

	_, misses := c.Stats()
	_, err := Fetch(ctx, c, KeyCounter, value)
	require.NoError(t, err)
	_, missesAfter := c.Stats()
	require.Equal(t, misses+1, missesAfter)
}
