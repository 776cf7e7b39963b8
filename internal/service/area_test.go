package service_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/haversine"
	"github.com/UnknownOlympus/haversine/internal/models"
	"github.com/UnknownOlympus/haversine/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boundsTolerance = 1e-9

func assertContains(t *testing.T, area *models.Bounds, p haversine.Point) {
	t.Helper()
	assert.GreaterOrEqual(t, p.Latitude, area.MinLatitude-boundsTolerance, "point %+v", p)
	assert.LessOrEqual(t, p.Latitude, area.MaxLatitude+boundsTolerance, "point %+v", p)
	assert.GreaterOrEqual(t, p.Longitude, area.MinLongitude-boundsTolerance, "point %+v", p)
	assert.LessOrEqual(t, p.Longitude, area.MaxLongitude+boundsTolerance, "point %+v", p)
}

func TestServiceArea(t *testing.T) {
	t.Parallel()

	t.Run("no radius means no area", func(t *testing.T) {
		t.Parallel()
		origin := haversine.NewPoint(50.4501, 30.5234)

		assert.Nil(t, service.ServiceArea(origin, 0, haversine.Kilometers))
		assert.Nil(t, service.ServiceArea(origin, -5, haversine.Kilometers))
		assert.Nil(t, service.ServiceArea(origin, math.NaN(), haversine.Kilometers))
	})

	t.Run("box encloses the whole circle", func(t *testing.T) {
		t.Parallel()
		origins := []haversine.Point{
			haversine.NewPoint(50.4501, 30.5234),
			haversine.NewPoint(-33.8688, 151.2093),
			haversine.NewPoint(0, 0),
			haversine.NewPoint(70, -20),
		}

		for _, origin := range origins {
			for _, unit := range []haversine.Unit{haversine.Kilometers, haversine.Miles, haversine.Meters} {
				radius := 50 / haversine.Kilometers.EarthRadius() * unit.EarthRadius()
				area := service.ServiceArea(origin, radius, unit)
				require.NotNil(t, area)

				for bearing := 0.0; bearing < 360; bearing += 2.5 {
					assertContains(t, area, haversine.FindPoint(origin, radius, bearing, unit))
				}
			}
		}
	})

	t.Run("box is tight", func(t *testing.T) {
		t.Parallel()
		origin := haversine.NewPoint(50.4501, 30.5234)
		radius := 25.0

		area := service.ServiceArea(origin, radius, haversine.Kilometers)
		require.NotNil(t, area)

		angular := radius / haversine.EarthRadiusKilometers
		phi := origin.ToRadians().Latitude
		wantLon := math.Asin(math.Sin(angular)/math.Cos(phi)) * 180 / math.Pi
		wantLat := angular * 180 / math.Pi

		assert.InDelta(t, origin.Latitude+wantLat, area.MaxLatitude, 1e-9)
		assert.InDelta(t, origin.Latitude-wantLat, area.MinLatitude, 1e-9)
		assert.InDelta(t, origin.Longitude+wantLon, area.MaxLongitude, 1e-9)
		assert.InDelta(t, origin.Longitude-wantLon, area.MinLongitude, 1e-9)
		assert.Greater(t, area.MaxLongitude, haversine.FindPoint(origin, radius, 90, haversine.Kilometers).Longitude)
	})

	t.Run("circle over the north pole spans every longitude", func(t *testing.T) {
		t.Parallel()
		origin := haversine.NewPoint(89.9, 10)

		area := service.ServiceArea(origin, 50, haversine.Kilometers)
		require.NotNil(t, area)

		assert.InDelta(t, 90.0, area.MaxLatitude, 0)
		assert.Less(t, area.MinLatitude, origin.Latitude)
		assert.InDelta(t, -180.0, area.MinLongitude, 0)
		assert.InDelta(t, 180.0, area.MaxLongitude, 0)
	})

	t.Run("circle over the south pole spans every longitude", func(t *testing.T) {
		t.Parallel()
		origin := haversine.NewPoint(-89.95, -120)

		area := service.ServiceArea(origin, 20, haversine.Kilometers)
		require.NotNil(t, area)

		assert.InDelta(t, -90.0, area.MinLatitude, 0)
		assert.Greater(t, area.MaxLatitude, origin.Latitude)
		assert.InDelta(t, -180.0, area.MinLongitude, 0)
		assert.InDelta(t, 180.0, area.MaxLongitude, 0)
	})

	t.Run("circle across the antimeridian spans every longitude", func(t *testing.T) {
		t.Parallel()
		origin := haversine.NewPoint(-17.7134, 179.95)

		area := service.ServiceArea(origin, 30, haversine.Kilometers)
		require.NotNil(t, area)

		assert.InDelta(t, -180.0, area.MinLongitude, 0)
		assert.InDelta(t, 180.0, area.MaxLongitude, 0)
		assert.Less(t, area.MinLatitude, origin.Latitude)
		assert.Greater(t, area.MaxLatitude, origin.Latitude)
	})

	t.Run("radius beyond half the circumference covers the globe", func(t *testing.T) {
		t.Parallel()
		area := service.ServiceArea(haversine.NewPoint(10, 10), 25_000, haversine.Kilometers)

		assert.Equal(t, &models.Bounds{MinLatitude: -90, MaxLatitude: 90, MinLongitude: -180, MaxLongitude: 180}, area)
	})
}
