// Package places indexes already geocoded filming locations so nearby
// places can be listed without contacting a geocoding service.
package places

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/ray1729/films-map/pkg/geocode"
	"github.com/ray1729/films-map/pkg/geodist"
	"github.com/ray1729/films-map/pkg/topk"
)

// Half-width of the box around a place, in unit-sphere coordinates
// (about 6 mm on the ground).
const pointTolerance = 1e-9

type Place struct {
	Name  string
	Point geocode.Point
}

// Places are indexed as points on the unit sphere. Chord length between two
// such points grows with great-circle distance, so the tree's Euclidean
// ordering holds across the antimeridian and near the poles.
func (p *Place) Bounds() *rtreego.Rect {
	return unitVector(p.Point).ToRect(pointTolerance)
}

func unitVector(p geocode.Point) rtreego.Point {
	lat := p.Lat * math.Pi / 180
	lon := p.Lon * math.Pi / 180
	return rtreego.Point{
		math.Cos(lat) * math.Cos(lon),
		math.Cos(lat) * math.Sin(lon),
		math.Sin(lat),
	}
}

type Result struct {
	Place
	Distance float64
}

type Index struct {
	rt *rtreego.Rtree
}

func New(places ...Place) *Index {
	objs := make([]rtreego.Spatial, len(places))
	for i := range places {
		objs[i] = &places[i]
	}
	return &Index{rt: rtreego.NewTree(3, 25, 50, objs...)}
}

// FromEntries indexes the resolved entries of a geocode store, skipping
// remembered misses.
func FromEntries(entries map[string]geocode.Entry) *Index {
	names := make([]string, 0, len(entries))
	for name, e := range entries {
		if e.Found {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	places := make([]Place, len(names))
	for i, name := range names {
		places[i] = Place{Name: name, Point: entries[name].Point}
	}
	return New(places...)
}

func (ix *Index) Size() int {
	return ix.rt.Size()
}

// Nearest returns up to k places ordered by great-circle distance from p.
func (ix *Index) Nearest(p geocode.Point, k int) []Result {
	if k < 1 || ix.rt.Size() == 0 {
		return nil
	}
	if k > ix.rt.Size() {
		k = ix.rt.Size()
	}
	nearest := topk.New[*Place](k)
	for _, s := range ix.rt.NearestNeighbors(k, unitVector(p)) {
		pl, ok := s.(*Place)
		if !ok || pl == nil {
			continue
		}
		nearest.Insert(pl, geodist.Distance(pl.Point.Lat, pl.Point.Lon, p.Lat, p.Lon))
	}
	items := nearest.Results()
	results := make([]Result, len(items))
	for i, it := range items {
		results[i] = Result{Place: *it.Value, Distance: it.Distance}
	}
	return results
}
