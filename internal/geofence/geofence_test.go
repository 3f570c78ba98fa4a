package geofence

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

func TestAuthorized(t *testing.T) {
	t.Parallel()

	zones := []models.AuthorizedLocation{
		{ID: "hq", Name: "HQ", Latitude: 32.0853, Longitude: 34.7818},
		{ID: "branch", Name: "Branch", Latitude: -6.2088, Longitude: 106.8456},
	}

	t.Run("point at a zone center is authorized", func(t *testing.T) {
		require.True(t, Authorized(32.0853, 34.7818, zones))
	})

	t.Run("point within the radius of any zone is authorized", func(t *testing.T) {
		require.True(t, Authorized(32.0853+5, 34.7818+5, zones))
		require.True(t, Authorized(-6.2088-3, 106.8456+2, zones))
	})

	t.Run("point farther than the radius from every zone is rejected", func(t *testing.T) {
		require.False(t, Authorized(52.5200, 13.4050, zones))
		require.False(t, Authorized(0, 0, zones))
	})

	t.Run("boundary distance is exclusive", func(t *testing.T) {
		// Exactly RadiusDegrees away along one axis.
		require.False(t, Authorized(32.0853+RadiusDegrees, 34.7818, zones))
		// Just inside.
		require.True(t, Authorized(32.0853+RadiusDegrees-0.001, 34.7818, zones))
	})

	t.Run("empty zone set rejects everything", func(t *testing.T) {
		require.False(t, Authorized(32.0853, 34.7818, nil))
	})
}
