package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"unicart/internal/pkg/clock"
	"unicart/internal/pkg/errs"

	"golang.org/x/sync/singleflight"
)

var ErrLoadFailed = errs.New("cache load failed")

type Result[T any] struct {
	Value     T
	FetchedAt time.Time
	// Stale is set when the loader failed and an expired entry was served instead.
	Stale bool
}

// Cache is a read-through cache with per-call TTLs. Concurrent misses for the
// same key share one loader call.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry[any]
	loads   map[string]*loadState
	group   singleflight.Group
	clock   clock.Clock
	logger  *slog.Logger
}

// loadState exists only while a load for the key is in flight. An
// invalidation bumps gen so the running load does not store its result.
type loadState struct {
	gen     uint64
	running int
}

func New(clk clock.Clock, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string]Entry[any]),
		loads:   make(map[string]*loadState),
		clock:   clk,
		logger:  logger,
	}
}

type loadResult struct {
	entry Entry[any]
}

// Get returns the cached value for key while it is fresh, otherwise calls
// loader and caches its result. When loader fails and an expired entry exists,
// that entry is returned with Stale=true and no error.
func Get[T any](ctx context.Context, c *Cache, key Key, ttl time.Duration, loader func(ctx context.Context) (T, error)) (Result[T], error) {
	k := key.String()

	entry, found := c.lookup(k)
	if found {
		if v, ok := entry.Value.(T); ok && entry.IsFresh(c.clock.Now()) {
			return Result[T]{Value: v, FetchedAt: entry.FetchedAt}, nil
		}
	}

	ch := c.group.DoChan(k, func() (any, error) {
		st, gen := c.beginLoad(k)
		// shared by every waiter, so one caller's cancellation must not fail the others
		v, err := loader(context.WithoutCancel(ctx))
		if err != nil {
			c.endLoad(k, st, gen, nil)
			return nil, err
		}
		fresh := Entry[any]{Value: v, FetchedAt: c.clock.Now(), TTL: ttl}
		c.endLoad(k, st, gen, &fresh)
		return loadResult{entry: fresh}, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}

	if res.Err == nil {
		lr := res.Val.(loadResult)
		v, ok := lr.entry.Value.(T)
		if !ok {
			return Result[T]{}, errs.Newf("cache: unexpected value type for %s", k)
		}
		return Result[T]{Value: v, FetchedAt: lr.entry.FetchedAt}, nil
	}

	if found {
		if v, ok := entry.Value.(T); ok {
			c.logger.Warn("serving stale cache entry after load failure",
				"key", k,
				"fetched_at", entry.FetchedAt,
				"error", res.Err)
			return Result[T]{Value: v, FetchedAt: entry.FetchedAt, Stale: true}, nil
		}
	}
	return Result[T]{}, errs.Mark(errs.Wrapf(res.Err, "load %s", k), ErrLoadFailed)
}

// Invalidate drops the entry so the next Get reloads. A load already in flight
// for the key will not repopulate it.
func (c *Cache) Invalidate(key Key) {
	k := key.String()
	c.mu.Lock()
	delete(c.entries, k)
	if st, ok := c.loads[k]; ok {
		st.gen++
	}
	c.mu.Unlock()
	c.group.Forget(k)
}

// InvalidatePrefix drops every entry whose key starts with prefix and detaches
// loads still in flight for such keys, so the next Get starts a new load.
// Returns the number of entries dropped.
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	dropped := 0
	forget := make(map[string]struct{})
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			forget[k] = struct{}{}
			dropped++
		}
	}
	for k, st := range c.loads {
		if strings.HasPrefix(k, prefix) {
			st.gen++
			forget[k] = struct{}{}
		}
	}
	c.mu.Unlock()

	for k := range forget {
		c.group.Forget(k)
	}
	return dropped
}

// Sweep drops entries that expired more than retain ago. Expired entries are
// kept for a while as the stale fallback when a reload fails.
func (c *Cache) Sweep(retain time.Duration) int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if now.Sub(e.FetchedAt) >= e.TTL+retain {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *Cache) InvalidateKind(kind string) int {
	return c.InvalidatePrefix(KindPrefix(kind))
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(k string) (Entry[any], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[k]
	return e, ok
}

func (c *Cache) beginLoad(k string) (*loadState, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.loads[k]
	if !ok {
		st = &loadState{}
		c.loads[k] = st
	}
	st.running++
	return st, st.gen
}

// endLoad stores e unless the key was invalidated since the load began.
func (c *Cache) endLoad(k string, st *loadState, gen uint64, e *Entry[any]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e != nil && st.gen == gen {
		c.entries[k] = *e
	}
	st.running--
	if st.running == 0 {
		delete(c.loads, k)
	}
}
