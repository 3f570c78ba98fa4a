package geofence

import (
	"math"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

// RadiusDegrees is the permitted distance from an authorized location,
// measured as plain Euclidean distance over raw latitude/longitude degrees,
// not a geodesic distance.
const RadiusDegrees = 10.0

// Authorized reports whether the point lies within RadiusDegrees of any
// authorized location. It is pure; the zone set is passed in by the caller.
func Authorized(lat, lon float64, zones []models.AuthorizedLocation) bool {
	for _, zone := range zones {
		dLat := lat - zone.Latitude
		dLon := lon - zone.Longitude
		if math.Sqrt(dLat*dLat+dLon*dLon) < RadiusDegrees {
			return true
		}
	}
	return false
}
