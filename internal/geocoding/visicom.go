package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/haversine"
	"golang.org/x/time/rate"
)

// VisicomBaseURL -- Visicom API base URL.
const VisicomBaseURL = "https://api.visicom.ua/data-api/5.0/uk/geocode.json"

// VisicomProvider geocodes addresses through the Visicom API.
type VisicomProvider struct {
	client  HTTPClient
	baseURL string
	apiKey  string
	log     *slog.Logger
	limiter *rate.Limiter
}

// Common errors for Visicom provider.
var (
	ErrVisicomEmptyResponse = errors.New("visicom API returned empty response")
	ErrVisicomEmptyAddress  = errors.New("visicom provider got empty address")
	ErrVisicomInvalidCoords = errors.New("visicom API returned invalid coordinates")
	ErrVisicomUnauthorized  = errors.New("visicom API unauthorized (invalid API key)")
)

// Visicom replies with a GeoJSON-like feature; only the centroid is used.
type visicomResponse struct {
	Centroid struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geo_centroid"`
}

// NewVisicomProvider creates a Visicom provider limited to rateLimit requests per second.
func NewVisicomProvider(apiKey string, rateLimit int, log *slog.Logger) *VisicomProvider {
	const timeout = 10 * time.Second
	return NewVisicomProviderWithClient(
		&http.Client{Timeout: timeout},
		apiKey,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewVisicomProviderWithClient allows injecting custom HTTP client.
func NewVisicomProviderWithClient(
	client HTTPClient,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *VisicomProvider {
	return &VisicomProvider{
		client:  client,
		baseURL: VisicomBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Geocode returns the centroid of the first Visicom feature matching address.
func (vp *VisicomProvider) Geocode(ctx context.Context, address string) (*haversine.Point, error) {
	const lonLatPair = 2

	if address == "" {
		return nil, ErrVisicomEmptyAddress
	}

	if err := vp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	vp.log.DebugContext(ctx, "Geocoding origin using Visicom", "address", address)

	query := url.Values{}
	query.Set("text", address)
	query.Set("limit", "1")
	query.Set("key", vp.apiKey)

	header := http.Header{}
	header.Set("Accept", "application/json")

	var result visicomResponse
	err := getJSON(ctx, vp.client, vp.log, ProviderTypeVisicom, vp.baseURL, query, header, &result)

	var statusErr *StatusError
	if errors.As(err, &statusErr) &&
		(statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden) {
		return nil, ErrVisicomUnauthorized
	}
	if err != nil {
		return nil, err
	}

	coords := result.Centroid.Coordinates
	switch len(coords) {
	case 0:
		return nil, ErrVisicomEmptyResponse
	case lonLatPair:
	default:
		return nil, ErrVisicomInvalidCoords
	}

	point := haversine.NewPoint(coords[1], coords[0])
	vp.log.InfoContext(ctx, "Visicom found origin", "address", address, "lat", point.Latitude, "lon", point.Longitude)

	return &point, nil
}
