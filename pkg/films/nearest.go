// Package films finds the filming locations closest to a point for films
// released in a given year.
package films

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ray1729/films-map/pkg/geocode"
	"github.com/ray1729/films-map/pkg/geodist"
	"github.com/ray1729/films-map/pkg/logger"
	"github.com/ray1729/films-map/pkg/topk"
)

type Film struct {
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Point    geocode.Point `json:"point"`
}

// Result is a film with its distance, in kilometers, from the query point.
type Result struct {
	Film
	Distance float64 `json:"distance_km"`
}

type Query struct {
	Year  int
	Lat   float64
	Lon   float64
	Limit int // zero means topk.DefaultK
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return topk.DefaultK
	}
	return q.Limit
}

// Nearest scans the dataset read from r and returns the films of q.Year
// whose locations are closest to (q.Lat, q.Lon), nearest first. Rows that
// are malformed or whose location cannot be geocoded are skipped.
func Nearest(ctx context.Context, r io.Reader, q Query, g geocode.Geocoder) ([]Result, Stats, error) {
	l := logger.L()
	nearest := topk.New[Film](q.limit())
	s := NewScanner(r, q.Year)
	unresolved := 0
	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, s.Stats(), err
		}
		row := s.Row()
		p, ok := g.Geocode(ctx, row.Location)
		if !ok {
			l.Debug("location_skipped", "film", row.Name, "location", row.Location)
			unresolved++
			continue
		}
		d := geodist.Distance(p.Lat, p.Lon, q.Lat, q.Lon)
		nearest.Insert(Film{Name: row.Name, Location: row.Location, Point: p}, d)
	}
	stats := s.Stats()
	stats.Unresolved = unresolved
	if err := s.Err(); err != nil {
		return nil, stats, fmt.Errorf("error reading dataset: %w", err)
	}
	items := nearest.Results()
	results := make([]Result, len(items))
	for i, it := range items {
		results[i] = Result{Film: it.Value, Distance: it.Distance}
	}
	return results, stats, nil
}

// NearestInFile runs Nearest over the dataset at path.
func NearestInFile(ctx context.Context, path string, q Query, g geocode.Geocoder) ([]Result, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("error opening %s for reading: %w", path, err)
	}
	defer f.Close()
	results, stats, err := Nearest(ctx, f, q, g)
	if err != nil {
		return nil, stats, fmt.Errorf("error scanning %s: %w", path, err)
	}
	logger.L().Info("scan_done",
		"path", path,
		"year", q.Year,
		"lines", stats.Lines,
		"matched", stats.Matched,
		"malformed", stats.Malformed,
		"unresolved", stats.Unresolved,
		"results", len(results),
	)
	return results, stats, nil
}
