package service

import (
	"math"

	"github.com/UnknownOlympus/haversine"
	"github.com/UnknownOlympus/haversine/internal/models"
)

// ServiceArea returns the smallest latitude/longitude box containing every point within
// radius (in unit) of origin, or nil when radius is not positive.
//
// The latitude extremes lie due north and due south of the origin. The longitude extremes
// lie where the circle touches a meridian, at the bearing θ with cos θ = tan δ · tan φ.
// When the circle covers a pole or crosses the antimeridian the longitude range is the
// whole globe.
func ServiceArea(origin haversine.Point, radius float64, unit haversine.Unit) *models.Bounds {
	if !(radius > 0) {
		return nil
	}

	angularDeg := radius / unit.EarthRadius() * 180 / math.Pi

	area := &models.Bounds{
		MinLatitude:  -maxLatitude,
		MaxLatitude:  maxLatitude,
		MinLongitude: -maxLongitude,
		MaxLongitude: maxLongitude,
	}

	if origin.Latitude+angularDeg >= maxLatitude || origin.Latitude-angularDeg <= -maxLatitude {
		if origin.Latitude+angularDeg < maxLatitude {
			area.MaxLatitude = haversine.FindPoint(origin, radius, 0, unit).Latitude
		}
		if origin.Latitude-angularDeg > -maxLatitude {
			area.MinLatitude = haversine.FindPoint(origin, radius, 180, unit).Latitude
		}
		return area
	}

	area.MaxLatitude = haversine.FindPoint(origin, radius, 0, unit).Latitude
	area.MinLatitude = haversine.FindPoint(origin, radius, 180, unit).Latitude

	rad := origin.ToRadians()
	tangent := math.Acos(math.Tan(radius/unit.EarthRadius())*math.Tan(rad.Latitude)) * 180 / math.Pi

	east := haversine.FindPoint(origin, radius, tangent, unit)
	west := haversine.FindPoint(origin, radius, 360-tangent, unit)

	if west.Longitude < -maxLongitude || east.Longitude > maxLongitude {
		return area
	}

	area.MinLongitude = west.Longitude
	area.MaxLongitude = east.Longitude

	return area
}
