package render

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/twpayne/go-gpx"

	"github.com/ray1729/films-map/pkg/films"
	"github.com/ray1729/films-map/pkg/geocode"
)

// GPX writes origin and every result as waypoints.
func GPX(w io.Writer, origin geocode.Point, results []films.Result) error {
	g := &gpx.GPX{
		Version: "1.1",
		Creator: "films-map",
		Wpt:     make([]*gpx.WptType, 0, len(results)+1),
	}
	g.Wpt = append(g.Wpt, &gpx.WptType{
		Lat:  origin.Lat,
		Lon:  origin.Lon,
		Name: "Selected location",
		Sym:  "Flag, Red",
	})
	for _, r := range results {
		g.Wpt = append(g.Wpt, &gpx.WptType{
			Lat:  r.Point.Lat,
			Lon:  r.Point.Lon,
			Name: r.Name,
			Desc: fmt.Sprintf("%s, %.2f km", r.Location, r.Distance),
			Sym:  "Flag, Blue",
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return g.WriteIndent(w, "", "  ")
}

func SaveGPX(path string, origin geocode.Point, results []films.Result) error {
	return writeFile(path, func(w io.Writer) error {
		return GPX(w, origin, results)
	})
}
