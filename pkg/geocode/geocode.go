// Package geocode resolves place names to coordinates through an external
// service, memoizing the outcome per name.
package geocode

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Resolver when the service has no match.
var ErrNotFound = errors.New("place not found")

type Point struct {
	Lat float64
	Lon float64
}

// Geocoder is what the dataset scanner consumes. A false result means the
// place could not be resolved for whatever reason and should be skipped.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Point, bool)
}

// Resolver is implemented by the geocoding providers.
type Resolver interface {
	Resolve(ctx context.Context, place string) (Point, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx context.Context, place string) (Point, error)

func (f ResolverFunc) Resolve(ctx context.Context, place string) (Point, error) {
	return f(ctx, place)
}
