package search

import "math"

// EarthRadiusKm is the sphere radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// coordinates on a sphere of radius EarthRadiusKm.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// WithinRadius reports whether the row has usable coordinates and lies at
// most radiusKm from the origin. The radius bound is inclusive.
func WithinRadius(row *BuildingRow, originLat, originLng, radiusKm float64) bool {
	if !row.HasCoordinates() {
		return false
	}
	return HaversineKm(*row.Lat, *row.Lng, originLat, originLng) <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
