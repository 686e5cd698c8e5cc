package geodist

import "math"

// EarthRadius is in kilometers.
const EarthRadius = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance calculates the great-circle distance between two points given in
// degrees, in kilometers, using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(phi1)*math.Cos(phi2)*sinLon*sinLon
	// rounding can push a a hair outside [0,1] for antipodal points
	a = math.Min(1, math.Max(0, a))
	return 2 * EarthRadius * math.Asin(math.Sqrt(a))
}
