package haversine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Unit is the distance unit used for results and inputs of the geodesy functions.
type Unit int

const (
	// Kilometers measures distances in kilometers.
	Kilometers Unit = iota
	// Miles measures distances in statute miles.
	Miles
	// Meters measures distances in meters.
	Meters
)

// Mean earth radius in each supported unit.
const (
	EarthRadiusKilometers = 6_371.0
	EarthRadiusMiles      = 3_959.0
	EarthRadiusMeters     = 6_371_000.0
)

// ErrUnknownUnit is returned by ParseUnit for names that do not map to a Unit.
var ErrUnknownUnit = errors.New("unknown distance unit")

// EarthRadius returns the mean earth radius expressed in u.
// A Unit outside the declared constants yields NaN.
func (u Unit) EarthRadius() float64 {
	switch u {
	case Kilometers:
		return EarthRadiusKilometers
	case Miles:
		return EarthRadiusMiles
	case Meters:
		return EarthRadiusMeters
	default:
		return math.NaN()
	}
}

// String returns the lower-case name of the unit.
func (u Unit) String() string {
	switch u {
	case Kilometers:
		return "kilometers"
	case Miles:
		return "miles"
	case Meters:
		return "meters"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit maps a unit name or abbreviation (case-insensitive) to a Unit.
// Accepted values: "kilometers"/"km", "miles"/"mi", "meters"/"m".
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kilometers", "km":
		return Kilometers, nil
	case "miles", "mi":
		return Miles, nil
	case "meters", "m":
		return Meters, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
}
