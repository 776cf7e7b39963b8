package geocoding

import (
	"context"

	"github.com/UnknownOlympus/haversine"
)

// Provider resolves a postal address to a point on the earth's surface.
// It is used once at startup when the dispatch origin is configured as an address.
type Provider interface {
	Geocode(ctx context.Context, address string) (*haversine.Point, error)
}
