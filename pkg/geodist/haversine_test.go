package geodist

import (
	"math"
	"testing"

	"github.com/umahmood/haversine"
)

func closeTo(got, want float64) bool {
	if want == 0 {
		return math.Abs(got) < 1e-9
	}
	return math.Abs(got-want)/math.Abs(want) <= 1e-6
}

func TestDistanceKnownValue(t *testing.T) {
	got := Distance(50, 23, 50, 24)
	if !closeTo(got, 71.47418874347893) {
		t.Errorf("Distance(50, 23, 50, 24) = %v, want 71.474188...", got)
	}
}

func TestDistanceIdenticalPoints(t *testing.T) {
	points := [][2]float64{{0, 0}, {49.841952, 24.0315921}, {-33.8688, 151.2093}, {90, 0}, {-90, 180}}
	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v) to itself = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	tests := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{49.841952, 24.0315921, 50.4501, 30.5234},
		{51.5074, -0.1278, 40.7128, -74.0060},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 0, 0, 180},
	}
	for _, tc := range tests {
		ab := Distance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
		ba := Distance(tc.lat2, tc.lon2, tc.lat1, tc.lon1)
		if !closeTo(ab, ba) {
			t.Errorf("asymmetric distance: %v vs %v", ab, ba)
		}
		if ab < 0 {
			t.Errorf("negative distance %v", ab)
		}
	}
}

func TestDistanceAgreesWithReference(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"Lviv-Kyiv", 49.841952, 24.0315921, 50.4501, 30.5234},
		{"London-New York", 51.5074, -0.1278, 40.7128, -74.0060},
		{"Sydney-Tokyo", -33.8688, 151.2093, 35.6762, 139.6503},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, want := haversine.Distance(
				haversine.Coord{Lat: tc.lat1, Lon: tc.lon1},
				haversine.Coord{Lat: tc.lat2, Lon: tc.lon2},
			)
			got := Distance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if !closeTo(got, want) {
				t.Errorf("got %v km, reference %v km", got, want)
			}
		})
	}
}

func TestDistanceAntipodal(t *testing.T) {
	got := Distance(0, 0, 0, 180)
	want := math.Pi * EarthRadius
	if !closeTo(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
