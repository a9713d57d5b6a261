package client

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Poll intervals per query class. The system snapshot changes fastest,
// collection lists are in the middle, and slow-changing collections
// (rules, vaults) trail behind.
const (
	SnapshotInterval = 5 * time.Second
	ListInterval     = 10 * time.Second
	SlowInterval     = 30 * time.Second
)

// Snapshot is the latest completed fetch for a query key. When a fetch
// fails, Data keeps the previous value and Err carries the failure until
// the next tick succeeds.
type Snapshot struct {
	Data any
	Err  error
	At   time.Time
}

// Loaded reports whether any fetch has completed for the key.
func (s Snapshot) Loaded() bool { return !s.At.IsZero() }

// Key builds the cache key for an endpoint and its query parameters.
func Key(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

type query struct {
	key      string
	interval time.Duration
	fetch    func(context.Context) (any, error)
	refresh  chan struct{}
}

// Cache polls registered queries on fixed intervals and hands out the
// latest snapshot per key. Overlapping fetches for one key cannot happen:
// each key has exactly one poll goroutine.
type Cache struct {
	mu      sync.RWMutex
	snaps   map[string]Snapshot
	queries map[string]*query

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCache() *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		snaps:   map[string]Snapshot{},
		queries: map[string]*query{},
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register starts polling key at the given interval. The first fetch runs
// immediately. Registering an existing key is a no-op.
func (c *Cache) Register(key string, interval time.Duration, fetch func(context.Context) (any, error)) {
	c.mu.Lock()
	if _, ok := c.queries[key]; ok {
		c.mu.Unlock()
		return
	}
	q := &query{
		key:      key,
		interval: interval,
		fetch:    fetch,
		refresh:  make(chan struct{}, 1),
	}
	c.queries[key] = q
	c.mu.Unlock()

	c.wg.Add(1)
	go c.poll(q)
}

func (c *Cache) poll(q *query) {
	defer c.wg.Done()

	c.runFetch(q)

	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
		case <-q.refresh:
		}
		c.runFetch(q)
	}
}

func (c *Cache) runFetch(q *query) {
	data, err := q.fetch(c.ctx)

	c.mu.Lock()
	prev := c.snaps[q.key]
	snap := Snapshot{Data: data, Err: err, At: time.Now()}
	if err != nil {
		// keep showing the last good value alongside the error
		snap.Data = prev.Data
	}
	c.snaps[q.key] = snap
	c.mu.Unlock()
}

// Get returns the latest snapshot for key; a zero Snapshot means the first
// fetch has not completed yet.
func (c *Cache) Get(key string) Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snaps[key]
}

// Invalidate schedules an immediate refetch of every query whose key is
// the given collection path or a parameterized variant of it.
func (c *Cache) Invalidate(path string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for key, q := range c.queries {
		if key != path && !strings.HasPrefix(key, path+"?") && !strings.HasPrefix(key, path+"/") {
			continue
		}
		select {
		case q.refresh <- struct{}{}:
		default:
		}
	}
}

// Mutate runs a mutation and, only on success, invalidates the affected
// collection so the next read re-fetches instead of trusting client state.
func (c *Cache) Mutate(path string, fn func(context.Context) error) error {
	if err := fn(c.ctx); err != nil {
		return err
	}
	c.Invalidate(path)
	return nil
}

// Close stops all polling and waits for in-flight fetches to finish.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}
