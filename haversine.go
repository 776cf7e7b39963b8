// Package haversine implements great-circle geometry on a spherical earth model.
//
// All functions are pure: they take points in degrees, work in radians internally and
// return either a scalar (distance in the requested Unit, bearing in degrees) or a new Point
// in degrees. Inputs are never validated. Out-of-range coordinates, or a projection
// distance far beyond the earth's circumference, produce NaN or meaningless finite values
// rather than errors; validation is up to the caller.
package haversine

import "math"

// Haversine returns the haversine of theta, sin²(theta/2).
func Haversine(theta float64) float64 {
	half := math.Sin(theta / 2)
	return half * half
}

// Distance returns the great-circle distance between pointA and pointB in the given unit.
//
// The longitude difference is used as is. The haversine and cosine terms do not depend on
// which way around the globe the difference was taken, so points on either side of the
// antimeridian still yield the shortest arc.
func Distance(pointA, pointB Point, unit Unit) float64 {
	r := unit.EarthRadius()

	a := pointA.ToRadians()
	b := pointB.ToRadians()

	deltaLatitude := b.Latitude - a.Latitude
	deltaLongitude := b.Longitude - a.Longitude

	h := Haversine(deltaLatitude) +
		math.Cos(a.Latitude)*math.Cos(b.Latitude)*Haversine(deltaLongitude)

	return 2 * r * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing returns the initial compass bearing from pointA to pointB in degrees,
// clockwise from true north, in the range [0, 360).
func Bearing(pointA, pointB Point) float64 {
	a := pointA.ToRadians()
	b := pointB.ToRadians()

	deltaLongitude := b.Longitude - a.Longitude

	y := math.Sin(deltaLongitude) * math.Cos(b.Latitude)
	x := math.Cos(a.Latitude)*math.Sin(b.Latitude) -
		math.Sin(a.Latitude)*math.Cos(b.Latitude)*math.Cos(deltaLongitude)

	result := math.Atan2(y, x) * radiansToDegrees

	// atan2 lies in [-180, 180], one wrap is enough.
	if result < 0 {
		return result + 360
	}

	return result
}

// FindPoint returns the point reached by travelling distance (in unit) from origin along the
// great circle that starts at the given bearing (degrees clockwise from north).
//
// It is the inverse of Distance and Bearing combined:
// FindPoint(a, Distance(a, b, u), Bearing(a, b), u) is b up to rounding.
// The resulting longitude is not wrapped into [-180, 180].
func FindPoint(origin Point, distance, bearing float64, unit Unit) Point {
	r := unit.EarthRadius()

	o := origin.ToRadians()

	delta := distance / r
	theta := bearing * degreesToRadians

	latitude := math.Asin(math.Sin(o.Latitude)*math.Cos(delta) +
		math.Cos(o.Latitude)*math.Sin(delta)*math.Cos(theta))

	longitude := o.Longitude + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(o.Latitude),
		math.Cos(delta)-math.Sin(o.Latitude)*math.Sin(latitude),
	)

	return NewPoint(latitude, longitude).ToDegrees()
}
