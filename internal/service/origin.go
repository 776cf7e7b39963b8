package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/haversine"
	"github.com/UnknownOlympus/haversine/internal/geocoding"
	"github.com/UnknownOlympus/haversine/internal/metrics"
)

// ResolveOrigin geocodes the dispatch origin address through provider.
// The lookup duration is recorded under providerName.
func ResolveOrigin(
	ctx context.Context,
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	address string,
) (haversine.Point, error) {
	startTime := time.Now()
	point, err := provider.Geocode(ctx, address)
	metrics.OriginGeocode.WithLabelValues(providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		return haversine.Point{}, fmt.Errorf("failed to geocode dispatch origin: %w", err)
	}

	if err = ValidateLocation(*point); err != nil {
		return haversine.Point{}, fmt.Errorf("geocoded dispatch origin is unusable: %w", err)
	}

	log.InfoContext(ctx, "Dispatch origin resolved",
		"address", address,
		"lat", point.Latitude,
		"lon", point.Longitude,
	)

	return *point, nil
}
