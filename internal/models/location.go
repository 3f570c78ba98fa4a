package models

import "time"

// AuthorizedLocation is a point around which clock-in and clock-out are
// permitted. The persisted set is the single source of truth for both the
// admin CRUD surface and geofence enforcement.
type AuthorizedLocation struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}
