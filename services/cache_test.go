package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache returns a cache whose clock the test can move by hand.
func newTestCache() (*Cache, *time.Time) {
	now := time.Now()
	c := NewCache(5*time.Minute, 30*time.Minute)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_ServesFreshValueWithoutRefetch(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (interface{}, error) {
		calls++
		return "value", nil
	}

	v, err := c.Fetch(ctx, "posts|limit=10", fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.Fetch(ctx, "posts|limit=10", fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls)
}

func TestCache_RefetchesAfterFreshnessWindow(t *testing.T) {
	c, now := newTestCache()
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	v, err := c.Fetch(ctx, "posts", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	*now = now.Add(5*time.Minute + time.Second)

	v, err = c.Fetch(ctx, "posts", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
}

func TestCache_FailedRefetchKeepsOldEntry(t *testing.T) {
	c, now := newTestCache()
	ctx := context.Background()

	_, err := c.Fetch(ctx, "posts", func(context.Context) (interface{}, error) {
		return "stale-but-valid", nil
	})
	require.NoError(t, err)

	*now = now.Add(10 * time.Minute)

	_, err = c.Fetch(ctx, "posts", func(context.Context) (interface{}, error) {
		return nil, errors.New("upstream down")
	})
	require.Error(t, err)

	// The old entry was not dropped; once the upstream recovers nothing
	// was lost, and an immediate retry refetches.
	assert.Equal(t, 1, c.Len())
}

func TestCache_InvalidateByPrefix(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	keep := func(context.Context) (interface{}, error) { return 1, nil }
	for _, key := range []string{"posts", "posts|search|go", "comments|7", "tags"} {
		_, err := c.Fetch(ctx, key, keep)
		require.NoError(t, err)
	}

	c.Invalidate("posts")

	assert.Equal(t, 2, c.Len())

	calls := 0
	_, err := c.Fetch(ctx, "posts|search|go", func(context.Context) (interface{}, error) {
		calls++
		return 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Unrelated collections were untouched.
	_, err = c.Fetch(ctx, "comments|7", func(context.Context) (interface{}, error) {
		t.Fatal("comments key should still be cached")
		return nil, nil
	})
	require.NoError(t, err)
}

func TestCache_SweepEvictsIdleEntries(t *testing.T) {
	c, now := newTestCache()
	ctx := context.Background()

	_, err := c.Fetch(ctx, "idle", func(context.Context) (interface{}, error) { return 1, nil })
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	*now = now.Add(29 * time.Minute)
	assert.Zero(t, c.sweep())

	*now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, c.sweep())
	assert.Zero(t, c.Len())
}

func TestCache_IdenticalInFlightKeysShareOneFetch(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]interface{}, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Fetch(ctx, "posts", fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let every goroutine reach the flight group before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}
