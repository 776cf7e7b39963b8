package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/haversine"
	"github.com/UnknownOlympus/haversine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOrigin(t *testing.T) {
	t.Helper()
	t.Setenv("PROXIMITY_ORIGIN_LAT", "50.4501")
	t.Setenv("PROXIMITY_ORIGIN_LON", "30.5234")
}

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("PROXIMITY_ENV", "local")
	t.Setenv("PROXIMITY_INTERVAL", "5m")
	t.Setenv("PROXIMITY_UNIT", "mi")
	t.Setenv("PROXIMITY_RADIUS", "12.5")
	t.Setenv("PROXIMITY_PROVIDER_KEY", "testAPIKey")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")
	setOrigin(t)

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, haversine.Miles, cfg.Unit)
	assert.InDelta(t, 12.5, cfg.Radius, 0)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	require.NotNil(t, cfg.Origin)
	assert.Equal(t, haversine.NewPoint(50.4501, 30.5234), *cfg.Origin)
}

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("PROXIMITY_ORIGIN_ADDRESS", "  Khreshchatyk St, 22, Kyiv  ")

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, haversine.Kilometers, cfg.Unit)
	assert.Zero(t, cfg.Radius)
	assert.Nil(t, cfg.Origin)
	assert.Equal(t, "Khreshchatyk St, 22, Kyiv", cfg.OriginAddress)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_ConfigFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", `
env: development
port: 9090
workers: 4
unit: meters
radius: 2500
origin:
  latitude: 49.8397
  longitude: 24.0297
provider:
  type: visicom
  api_key: fileKey
postgres:
  host: file-host
  db_name: tasks
`)
	t.Setenv("PROXIMITY_CONFIG_FILE", file.Name())
	t.Setenv("PROXIMITY_WORKERS", "8")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 8, cfg.Workers, "environment must win over the file")
	assert.Equal(t, haversine.Meters, cfg.Unit)
	assert.InDelta(t, 2500.0, cfg.Radius, 0)
	require.NotNil(t, cfg.Origin)
	assert.Equal(t, haversine.NewPoint(49.8397, 24.0297), *cfg.Origin)
	assert.Equal(t, "visicom", cfg.ProviderType)
	assert.Equal(t, "fileKey", cfg.APIKey)
	assert.Equal(t, "file-host", cfg.Database.Host)
	assert.Equal(t, "tasks", cfg.Database.Name)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_ConfigFileError(t *testing.T) {
	t.Setenv("PROXIMITY_CONFIG_FILE", "/nonexistent/proximity.yaml")

	assert.PanicsWithValue(t, "failed to read configuration file", func() {
		config.MustLoad()
	})
}

func TestMustLoad_IntervalError(t *testing.T) {
	setOrigin(t)
	t.Setenv("PROXIMITY_INTERVAL", "error_value")

	assert.PanicsWithValue(t, "failed to parse interval from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	setOrigin(t)
	t.Setenv("PROXIMITY_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	setOrigin(t)
	t.Setenv("PROXIMITY_WORKERS", "error_value")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersNonPositive(t *testing.T) {
	for _, workers := range []string{"0", "-3"} {
		t.Run(workers, func(t *testing.T) {
			setOrigin(t)
			t.Setenv("PROXIMITY_WORKERS", workers)

			assert.PanicsWithValue(t, "workers must be positive", func() {
				config.MustLoad()
			})
		})
	}
}

func TestMustLoad_IntervalNonPositive(t *testing.T) {
	for _, interval := range []string{"0s", "-1m"} {
		t.Run(interval, func(t *testing.T) {
			setOrigin(t)
			t.Setenv("PROXIMITY_INTERVAL", interval)

			assert.PanicsWithValue(t, "interval must be positive", func() {
				config.MustLoad()
			})
		})
	}
}

func TestMustLoad_UnitError(t *testing.T) {
	setOrigin(t)
	t.Setenv("PROXIMITY_UNIT", "furlongs")

	assert.PanicsWithValue(t, "failed to parse unit from configuration, must be kilometers, miles or meters", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RadiusError(t *testing.T) {
	setOrigin(t)
	t.Setenv("PROXIMITY_RADIUS", "far")

	assert.PanicsWithValue(t, "failed to parse service area radius from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_OriginErrors(t *testing.T) {
	t.Run("latitude", func(t *testing.T) {
		t.Setenv("PROXIMITY_ORIGIN_LAT", "north")
		t.Setenv("PROXIMITY_ORIGIN_LON", "30.5234")

		assert.PanicsWithValue(t, "failed to parse origin latitude from configuration", func() {
			config.MustLoad()
		})
	})

	t.Run("longitude missing", func(t *testing.T) {
		t.Setenv("PROXIMITY_ORIGIN_LAT", "50.4501")

		assert.PanicsWithValue(t, "failed to parse origin longitude from configuration", func() {
			config.MustLoad()
		})
	})

	t.Run("not configured", func(t *testing.T) {
		assert.PanicsWithValue(t, "dispatch origin is not configured, set coordinates or an address", func() {
			config.MustLoad()
		})
	})
}
