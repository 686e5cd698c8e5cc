package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ray1729/films-map/pkg/films"
	"github.com/ray1729/films-map/pkg/geocode"
)

type fakeGeocoder map[string]geocode.Point

func (f fakeGeocoder) Geocode(_ context.Context, place string) (geocode.Point, bool) {
	p, ok := f[place]
	return p, ok
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "locations.list")
	data := "Film A (1999)\tsome\tfields\tLviv, Ukraine\n" +
		"Film B (1999)\tKyiv, Ukraine\t(studio)\n" +
		"Film C (2001)\tLviv, Ukraine\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	g := fakeGeocoder{
		"Lviv, Ukraine": {Lat: 49.841952, Lon: 24.0315921},
		"Kyiv, Ukraine": {Lat: 50.4501, Lon: 30.5234},
	}
	return NewHandler(path, g).Router()
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestNearest(t *testing.T) {
	r := newTestRouter(t)
	w := get(r, "/nearest?year=1999&lat=50.45&lon=30.52")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var results []films.Result
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Location != "Kyiv, Ukraine" || results[1].Location != "Lviv, Ukraine" {
		t.Errorf("unexpected order %+v", results)
	}

	w = get(r, "/nearest?year=1999&lat=50.45&lon=30.52&limit=1")
	json.Unmarshal(w.Body.Bytes(), &results)
	if len(results) != 1 {
		t.Errorf("limit=1 returned %d results", len(results))
	}
}

func TestNearestBadRequest(t *testing.T) {
	r := newTestRouter(t)
	for _, url := range []string{
		"/nearest",
		"/nearest?year=abc&lat=1&lon=2",
		"/nearest?year=1999&lat=91&lon=2",
		"/nearest?year=1999&lat=1&lon=east",
		"/nearest?year=1999&lat=1&lon=2&limit=0",
	} {
		if w := get(r, url); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, w.Code)
		}
	}
}

func TestMap(t *testing.T) {
	r := newTestRouter(t)
	w := get(r, "/map?year=1999&lat=49.84&lon=24.03")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Lviv, Ukraine") {
		t.Error("map does not mention Lviv")
	}
}

func TestMissingDataset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewHandler(filepath.Join(t.TempDir(), "missing"), fakeGeocoder{}).Router()
	if w := get(r, "/nearest?year=1999&lat=1&lon=2"); w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if w := get(r, "/healthz"); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	get(r, "/healthz")
	w := get(r, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `filmsmap_http_requests_total{route="/healthz",status="200"}`) {
		t.Errorf("request counter missing from /metrics output:\n%s", body)
	}
}
