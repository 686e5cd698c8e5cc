// Package metrics holds the Prometheus collectors for geocoding and the
// HTTP server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filmsmap_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "filmsmap_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 30000},
	}, []string{"route"})
	GeocodeLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "filmsmap_geocode_lookups_total",
		Help: "Geocode lookups by outcome (store_hit, resolved, not_found, error)",
	}, []string{"outcome"})
	GeocodeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "filmsmap_geocode_duration_ms",
		Help:    "Upstream geocoder call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(GeocodeLookupsTotal)
	prometheus.MustRegister(GeocodeDurationMs)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler { return promhttp.Handler() }
