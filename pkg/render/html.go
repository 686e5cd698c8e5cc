// Package render writes query results as an interactive map and as
// GPX/XLSX exports.
package render

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"os"

	"github.com/ray1729/films-map/pkg/films"
	"github.com/ray1729/films-map/pkg/geocode"
)

const zoomStart = 3

// Marker is one map marker: a filming location and every result filmed
// there.
type Marker struct {
	Location string   `json:"location"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Films    []string `json:"films"`
	Distance float64  `json:"distance"`
}

// Group merges results sharing a location label into one marker, keeping
// the order in which locations first appear.
func Group(results []films.Result) []Marker {
	var markers []Marker
	byLocation := make(map[string]int)
	for _, r := range results {
		i, ok := byLocation[r.Location]
		if !ok {
			i = len(markers)
			byLocation[r.Location] = i
			markers = append(markers, Marker{
				Location: r.Location,
				Lat:      r.Point.Lat,
				Lon:      r.Point.Lon,
				Distance: math.Round(r.Distance*100) / 100,
			})
		}
		markers[i].Films = append(markers[i].Films, r.Name)
	}
	return markers
}

type page struct {
	Title   string
	Origin  geocode.Point
	Zoom    int
	Markers []Marker
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; width: 100%; margin: 0; padding: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
(function () {
  var origin = {{.Origin}};
  var markers = {{.Markers}};
  var map = L.map("map").setView([origin.Lat, origin.Lon], {{.Zoom}});
  L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
    maxZoom: 19,
    attribution: "&copy; OpenStreetMap contributors"
  }).addTo(map);

  function el(tag, text) {
    var e = document.createElement(tag);
    if (text !== undefined) {
      e.appendChild(document.createTextNode(text));
    }
    return e;
  }

  var films = L.featureGroup();
  var lines = L.featureGroup();
  (markers || []).forEach(function (m) {
    var popup = el("div");
    popup.appendChild(el("h3", m.location));
    popup.appendChild(el("b", "Films filmed here:"));
    var list = el("ul");
    m.films.forEach(function (name) {
      list.appendChild(el("li", name));
    });
    popup.appendChild(list);
    var dist = el("p");
    dist.appendChild(el("b", "Distance:"));
    dist.appendChild(document.createTextNode(" " + m.distance + " km"));
    popup.appendChild(dist);

    L.marker([m.lat, m.lon]).bindPopup(popup, {maxWidth: 300}).addTo(films);
    L.polyline([[m.lat, m.lon], [origin.Lat, origin.Lon]])
      .bindTooltip("Distance: " + m.distance + " km")
      .addTo(lines);
  });
  films.addTo(map);
  lines.addTo(map);

  L.circleMarker([origin.Lat, origin.Lon], {color: "red", fillColor: "red", fillOpacity: 0.8, radius: 9})
    .bindTooltip("Selected location")
    .addTo(map);
  L.control.layers(null, {"Films": films, "Lines": lines}).addTo(map);
})();
</script>
</body>
</html>
`))

// HTML writes a Leaflet map centred on origin with a marker per location
// and a line from each location to origin.
func HTML(w io.Writer, origin geocode.Point, results []films.Result) error {
	return mapTemplate.Execute(w, page{
		Title:   "Films map",
		Origin:  origin,
		Zoom:    zoomStart,
		Markers: Group(results),
	})
}

// SaveHTML writes the map to path, replacing any existing file.
func SaveHTML(path string, origin geocode.Point, results []films.Result) error {
	return writeFile(path, func(w io.Writer) error {
		return HTML(w, origin, results)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	wc, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", path, err)
	}
	if err := write(wc); err != nil {
		wc.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("error closing file %s: %w", path, err)
	}
	return nil
}
