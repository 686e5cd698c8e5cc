package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"googlemaps.github.io/maps"
)

// Google resolves places with the Google Maps Geocoding API.
type Google struct {
	client *maps.Client
}

func NewGoogle(apiKey string, httpClient *http.Client) (*Google, error) {
	if apiKey == "" {
		return nil, errors.New("missing Google Maps API key")
	}
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating Google Maps client: %w", err)
	}
	return &Google{client: c}, nil
}

func (g *Google) Resolve(ctx context.Context, place string) (Point, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: place})
	if err != nil {
		return Point{}, fmt.Errorf("error geocoding %s: %w", place, err)
	}
	if len(results) == 0 {
		return Point{}, fmt.Errorf("%w: %s", ErrNotFound, place)
	}
	loc := results[0].Geometry.Location
	return Point{Lat: loc.Lat, Lon: loc.Lng}, nil
}
