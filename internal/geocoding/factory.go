package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType names the service used to turn the dispatch origin address into coordinates.
type ProviderType string

const (
	ProviderTypeGoogle    ProviderType = "google"
	ProviderTypeNominatim ProviderType = "nominatim"
	ProviderTypeVisicom   ProviderType = "visicom"
)

// The origin is looked up once per start, so a handful of requests per second is plenty.
const defaultVisicomRateLimit = 5

var errMissingAPIKey = errors.New("API key is required")

// ProviderConfig selects and configures the origin geocoder.
type ProviderConfig struct {
	Type      ProviderType
	APIKey    string // Google and Visicom only
	RateLimit int    // requests per second, 0 keeps the provider default
	Logger    *slog.Logger
}

// NewProvider builds the geocoder used to resolve the dispatch origin address.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.Logger), nil
	case ProviderTypeGoogle:
		if config.APIKey == "" {
			return nil, fmt.Errorf("%w for Google provider", errMissingAPIKey)
		}
		provider, err := googleFromConfig(config)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case ProviderTypeVisicom:
		if config.APIKey == "" {
			return nil, fmt.Errorf("%w for Visicom provider", errMissingAPIKey)
		}
		return visicomFromConfig(config), nil
	}

	return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
}

func googleFromConfig(config ProviderConfig) (*GoogleProvider, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.RateLimit > 0 {
		opts = append(opts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

func visicomFromConfig(config ProviderConfig) *VisicomProvider {
	limit := config.RateLimit
	if limit <= 0 {
		limit = defaultVisicomRateLimit
		config.Logger.Debug("Visicom rate limit not set, using default", "value", limit)
	}

	return NewVisicomProvider(config.APIKey, limit, config.Logger)
}
