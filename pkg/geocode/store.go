package geocode

import (
	"context"

	"github.com/ray1729/films-map/pkg/logger"
)

// Entry is a remembered lookup outcome. Found is false when the service had
// no match for the place.
type Entry struct {
	Point Point
	Found bool
}

// Store persists lookup outcomes between runs.
type Store interface {
	Get(ctx context.Context, place string) (Entry, bool, error)
	Put(ctx context.Context, place string, e Entry) error
}

// Chain consults stores in order. A hit in a later store is copied into the
// earlier ones; Put writes to all of them.
type Chain []Store

func (c Chain) Get(ctx context.Context, place string) (Entry, bool, error) {
	var firstErr error
	for i, s := range c {
		if s == nil {
			continue
		}
		e, ok, err := s.Get(ctx, place)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			for _, prev := range c[:i] {
				if prev == nil {
					continue
				}
				if err := prev.Put(ctx, place, e); err != nil {
					logger.L().Warn("geocode_store_backfill_error", "place", place, "err", err)
				}
			}
			return e, true, nil
		}
	}
	return Entry{}, false, firstErr
}

func (c Chain) Put(ctx context.Context, place string, e Entry) error {
	var firstErr error
	for _, s := range c {
		if s == nil {
			continue
		}
		if err := s.Put(ctx, place, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
