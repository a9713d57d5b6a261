package client

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "/api/devices", Key("/api/devices", nil))

	params := url.Values{}
	params.Set("status", "new")
	params.Set("limit", "50")
	assert.Equal(t, "/api/security-events?limit=50&status=new", Key("/api/security-events", params))
}

func TestCacheFirstFetchRunsImmediately(t *testing.T) {
	c := NewCache()
	defer c.Close()

	c.Register("/api/devices", time.Hour, func(ctx context.Context) (any, error) {
		return []string{"r1"}, nil
	})

	waitFor(t, func() bool { return c.Get("/api/devices").Loaded() })
	snap := c.Get("/api/devices")
	require.NoError(t, snap.Err)
	assert.Equal(t, []string{"r1"}, snap.Data)
}

func TestCacheRegisterDuplicateIsNoop(t *testing.T) {
	c := NewCache()
	defer c.Close()

	var calls atomic.Int32
	c.Register("/api/devices", time.Hour, func(ctx context.Context) (any, error) {
		calls.Add(1)
		return 1, nil
	})
	c.Register("/api/devices", time.Hour, func(ctx context.Context) (any, error) {
		calls.Add(100)
		return 2, nil
	})

	waitFor(t, func() bool { return calls.Load() > 0 })
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Get("/api/devices").Data)
}

func TestCacheKeepsDataOnFailedFetch(t *testing.T) {
	c := NewCache()
	defer c.Close()

	var fail atomic.Bool
	var calls atomic.Int32
	c.Register("/api/devices", time.Hour, func(ctx context.Context) (any, error) {
		calls.Add(1)
		if fail.Load() {
			return nil, errors.New("connection refused")
		}
		return "good", nil
	})

	waitFor(t, func() bool { return calls.Load() >= 1 })
	require.NoError(t, c.Get("/api/devices").Err)

	fail.Store(true)
	c.Invalidate("/api/devices")
	waitFor(t, func() bool { return calls.Load() >= 2 })
	waitFor(t, func() bool { return c.Get("/api/devices").Err != nil })

	snap := c.Get("/api/devices")
	assert.Equal(t, "good", snap.Data, "stale data survives a failed refresh")
	assert.Error(t, snap.Err)
}

func TestCacheInvalidateMatchesParameterizedKeys(t *testing.T) {
	c := NewCache()
	defer c.Close()

	var plain, params, other atomic.Int32
	c.Register("/api/security-events", time.Hour, func(ctx context.Context) (any, error) {
		plain.Add(1)
		return nil, nil
	})
	c.Register("/api/security-events?status=new", time.Hour, func(ctx context.Context) (any, error) {
		params.Add(1)
		return nil, nil
	})
	c.Register("/api/devices", time.Hour, func(ctx context.Context) (any, error) {
		other.Add(1)
		return nil, nil
	})

	waitFor(t, func() bool {
		return plain.Load() >= 1 && params.Load() >= 1 && other.Load() >= 1
	})

	c.Invalidate("/api/security-events")
	waitFor(t, func() bool { return plain.Load() >= 2 && params.Load() >= 2 })
	assert.Equal(t, int32(1), other.Load(), "unrelated keys are not refetched")
}

func TestCacheMutate(t *testing.T) {
	c := NewCache()
	defer c.Close()

	var fetches atomic.Int32
	c.Register("/api/ids-rules", time.Hour, func(ctx context.Context) (any, error) {
		fetches.Add(1)
		return nil, nil
	})
	waitFor(t, func() bool { return fetches.Load() >= 1 })

	boom := errors.New("boom")
	err := c.Mutate("/api/ids-rules", func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fetches.Load(), "failed mutation must not invalidate")

	err = c.Mutate("/api/ids-rules", func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	waitFor(t, func() bool { return fetches.Load() >= 2 })
}

func TestCacheCloseStopsPolling(t *testing.T) {
	c := NewCache()

	var calls atomic.Int32
	c.Register("/api/devices", 5*time.Millisecond, func(ctx context.Context) (any, error) {
		calls.Add(1)
		return nil, nil
	})
	waitFor(t, func() bool { return calls.Load() >= 2 })

	c.Close()
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}
