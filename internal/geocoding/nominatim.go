package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/haversine"
)

const (
	nominatimBaseURL   = "https://nominatim.openstreetmap.org/search"
	nominatimUserAgent = "Haversine-Proximity-Service/1.0 (https://github.com/UnknownOlympus/haversine)"
)

// NominatimProvider geocodes addresses through OpenStreetMap's Nominatim API.
// The public instance allows one request per second, which is plenty for a single origin lookup.
type NominatimProvider struct {
	client  HTTPClient
	baseURL string
	log     *slog.Logger
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimProvider creates a Nominatim provider using the public endpoint.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10 * time.Second
	return NewNominatimProviderWithClient(&http.Client{Timeout: timeout}, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{client: client, baseURL: nominatimBaseURL, log: log}
}

// Geocode returns the location of the best Nominatim match for address.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*haversine.Point, error) {
	np.log.DebugContext(ctx, "Geocoding origin using Nominatim", "address", address)

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	// Nominatim usage policy requires an identifying User-Agent.
	header := http.Header{}
	header.Set("User-Agent", nominatimUserAgent)

	var results []nominatimResult
	if err := getJSON(ctx, np.client, np.log, ProviderTypeNominatim, np.baseURL, query, header, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	point := haversine.NewPoint(lat, lon)

	return &point, nil
}
