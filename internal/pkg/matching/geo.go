package matching

import (
	"math"

	"github.com/kesher-org/kesher-backend/internal/app/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula
const earthRadiusKm = 6371.0

// Haversine computes the great-circle distance in kilometers between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Distance returns the distance in kilometers between two optionally geocoded
// points. When either side has no coordinates the distance is 0: records with
// pending or failed geocoding are treated as co-located so that incomplete
// geodata never blocks a pairing.
func Distance(a, b *models.Coordinates) float64 {
	if a == nil || b == nil {
		return 0
	}
	return Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
