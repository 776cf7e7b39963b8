package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/haversine"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the proximity service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - Workers: The number of concurrent workers for processing tasks.
// - Interval: The duration between polls.
// - Unit: The distance unit stored with each task.
// - Radius: The service-area radius in Unit, 0 disables the limit.
// - Origin: The dispatch origin coordinates, nil when it must be geocoded.
// - OriginAddress: The dispatch origin address used when Origin is nil.
// - ProviderType: The geocoding provider used to resolve OriginAddress.
// - APIKey: The API key for the geocoding provider (Google and Visicom).
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env           string
	Port          int
	Workers       int
	Interval      time.Duration
	Unit          haversine.Unit
	Radius        float64
	Origin        *haversine.Point
	OriginAddress string
	ProviderType  string
	APIKey        string
	Database      PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// configFileEnv names the optional YAML file read before the environment.
const configFileEnv = "PROXIMITY_CONFIG_FILE"

// bindings maps configuration keys to the environment variables that override them.
var bindings = map[string]string{
	"env":               "PROXIMITY_ENV",
	"port":              "PROXIMITY_HEALTH_PORT",
	"workers":           "PROXIMITY_WORKERS",
	"interval":          "PROXIMITY_INTERVAL",
	"unit":              "PROXIMITY_UNIT",
	"radius":            "PROXIMITY_RADIUS",
	"origin.latitude":   "PROXIMITY_ORIGIN_LAT",
	"origin.longitude":  "PROXIMITY_ORIGIN_LON",
	"origin.address":    "PROXIMITY_ORIGIN_ADDRESS",
	"provider.type":     "PROXIMITY_PROVIDER_TYPE",
	"provider.api_key":  "PROXIMITY_PROVIDER_KEY",
	"postgres.host":     "DB_HOST",
	"postgres.port":     "DB_PORT",
	"postgres.user":     "DB_USERNAME",
	"postgres.password": "DB_PASSWORD",
	"postgres.db_name":  "DB_NAME",
}

// MustLoad loads the configuration from the environment and, when PROXIMITY_CONFIG_FILE
// is set, from that YAML file. Environment values win over the file.
// It panics when a value cannot be parsed or the worker pool could not run with it.
func MustLoad() *Config {
	v := viper.New()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("workers", "10")
	v.SetDefault("interval", "10m")
	v.SetDefault("unit", haversine.Kilometers.String())
	v.SetDefault("radius", "0")
	v.SetDefault("provider.type", "nominatim")
	v.SetDefault("postgres.port", "5432")

	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
	_ = v.BindEnv("config_file", configFileEnv)

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("interval"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}
	if interval <= 0 {
		panic("interval must be positive")
	}

	healthPort, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}
	if workers <= 0 {
		panic("workers must be positive")
	}

	unit, err := haversine.ParseUnit(v.GetString("unit"))
	if err != nil {
		panic("failed to parse unit from configuration, must be kilometers, miles or meters")
	}

	radius, err := strconv.ParseFloat(v.GetString("radius"), 64)
	if err != nil {
		panic("failed to parse service area radius from configuration")
	}

	origin := mustParseOrigin(v)
	address := strings.TrimSpace(v.GetString("origin.address"))
	if origin == nil && address == "" {
		panic("dispatch origin is not configured, set coordinates or an address")
	}

	return &Config{
		Env:           v.GetString("env"),
		Port:          healthPort,
		Workers:       workers,
		Interval:      interval,
		Unit:          unit,
		Radius:        radius,
		Origin:        origin,
		OriginAddress: address,
		ProviderType:  v.GetString("provider.type"),
		APIKey:        v.GetString("provider.api_key"),
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

// mustParseOrigin returns nil when neither coordinate is set.
func mustParseOrigin(v *viper.Viper) *haversine.Point {
	rawLat, rawLon := v.GetString("origin.latitude"), v.GetString("origin.longitude")
	if rawLat == "" && rawLon == "" {
		return nil
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		panic("failed to parse origin latitude from configuration")
	}

	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		panic("failed to parse origin longitude from configuration")
	}

	origin := haversine.NewPoint(lat, lon)

	return &origin
}
