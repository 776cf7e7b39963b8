package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/haversine"
)

const (
	maxLatitude  = 90.0
	maxLongitude = 180.0
)

var (
	// ErrInvalidCoordinates is returned for locations outside the geographic coordinate ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrNonFiniteResult is returned when distance or bearing came out as NaN or infinity.
	ErrNonFiniteResult = errors.New("non-finite proximity result")
)

// ValidateLocation checks that p is a usable geographic position:
// latitude within [-90, 90] and longitude within [-180, 180], both finite.
func ValidateLocation(p haversine.Point) error {
	if math.IsNaN(p.Latitude) || p.Latitude < -maxLatitude || p.Latitude > maxLatitude {
		return fmt.Errorf("%w: latitude %v is outside [-90, 90]", ErrInvalidCoordinates, p.Latitude)
	}

	if math.IsNaN(p.Longitude) || p.Longitude < -maxLongitude || p.Longitude > maxLongitude {
		return fmt.Errorf("%w: longitude %v is outside [-180, 180]", ErrInvalidCoordinates, p.Longitude)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
