package geocode

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ray1729/films-map/pkg/logger"
	"github.com/ray1729/films-map/pkg/metrics"
)

// Memoizing cache based on "9.7 Example: Concurrent Non-Blocking Cache" from
// "The Go Programming Language", Alan A. A. Donovan and Brian W. Kernighan.
// Entries never expire: the dataset is static.

type entry struct {
	res       Entry
	cancelled bool          // the leader's context ended before res was known
	ready     chan struct{} // closed when res is ready
}

// Cache wraps a Resolver and remembers every outcome by place name,
// including failures. An optional Store persists definite outcomes across
// runs.
type Cache struct {
	resolver Resolver
	store    Store

	mu      sync.Mutex
	entries map[string]*entry
}

func NewCache(r Resolver, store Store) *Cache {
	return &Cache{resolver: r, store: store, entries: make(map[string]*entry)}
}

func (c *Cache) Geocode(ctx context.Context, place string) (Point, bool) {
	for {
		c.mu.Lock()
		e := c.entries[place]
		if e == nil {
			e = &entry{ready: make(chan struct{})}
			c.entries[place] = e
			c.mu.Unlock()
			var err error
			e.res, err = c.lookup(ctx, place)
			if err != nil && ctx.Err() != nil {
				// a cancelled caller must not poison the entry for everyone else
				e.cancelled = true
				c.mu.Lock()
				delete(c.entries, place)
				c.mu.Unlock()
			}
			close(e.ready)
			return e.res.Point, e.res.Found
		}
		c.mu.Unlock()
		select {
		case <-e.ready:
		case <-ctx.Done():
			return Point{}, false
		}
		if !e.cancelled {
			return e.res.Point, e.res.Found
		}
	}
}

// Len returns the number of place names seen so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(ctx context.Context, place string) (Entry, error) {
	l := logger.L()
	if c.store != nil {
		res, ok, err := c.store.Get(ctx, place)
		if err != nil {
			l.Warn("geocode_store_get_error", "place", place, "err", err)
		} else if ok {
			l.Debug("geocode_store_hit", "place", place, "found", res.Found)
			metrics.GeocodeLookupsTotal.WithLabelValues("store_hit").Inc()
			return res, nil
		}
	}
	start := time.Now()
	p, err := c.resolver.Resolve(ctx, place)
	metrics.GeocodeDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	var res Entry
	switch {
	case err == nil:
		res = Entry{Point: p, Found: true}
		metrics.GeocodeLookupsTotal.WithLabelValues("resolved").Inc()
	case errors.Is(err, ErrNotFound):
		l.Debug("geocode_not_found", "place", place)
		metrics.GeocodeLookupsTotal.WithLabelValues("not_found").Inc()
	default:
		l.Debug("geocode_error", "place", place, "err", err)
		metrics.GeocodeLookupsTotal.WithLabelValues("error").Inc()
		return Entry{}, err
	}
	if c.store != nil {
		if err := c.store.Put(ctx, place, res); err != nil {
			l.Warn("geocode_store_put_error", "place", place, "err", err)
		}
	}
	return res, nil
}
