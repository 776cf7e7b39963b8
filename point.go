package haversine

import "math"

const (
	degreesToRadians = math.Pi / 180
	radiansToDegrees = 180 / math.Pi
)

// Point is a position on the earth's surface.
// Latitude and Longitude are in degrees unless the value came from ToRadians.
// Values are stored as given: nothing is range-checked or normalized.
type Point struct {
	Latitude  float64 // Latitude of the point.
	Longitude float64 // Longitude of the point.
}

// NewPoint creates a point with the given latitude and longitude.
func NewPoint(latitude, longitude float64) Point {
	return Point{Latitude: latitude, Longitude: longitude}
}

// ToRadians returns a copy of the point with both fields converted from degrees to radians.
func (p Point) ToRadians() Point {
	return Point{
		Latitude:  p.Latitude * degreesToRadians,
		Longitude: p.Longitude * degreesToRadians,
	}
}

// ToDegrees returns a copy of the point with both fields converted from radians to degrees.
func (p Point) ToDegrees() Point {
	return Point{
		Latitude:  p.Latitude * radiansToDegrees,
		Longitude: p.Longitude * radiansToDegrees,
	}
}
