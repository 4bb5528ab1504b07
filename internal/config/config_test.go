package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Map.ShortResolution)
	assert.Equal(t, 100, cfg.Map.CrossingResolution)
	assert.Equal(t, 2, cfg.Map.WorldCopies)
	assert.InDelta(t, 0.001, cfg.Map.BoundaryEpsilon, 1e-12)
	assert.InDelta(t, 0.115, cfg.Emissions.KgPerKm, 1e-12)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.UsesDefaultSecret())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FLIGHTARCS_MAP_WORLD_COPIES", "4")
	t.Setenv("FLIGHTARCS_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("FLIGHTARCS_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Map.WorldCopies)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.False(t, cfg.UsesDefaultSecret())
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Port: ":8080"},
		Database: DatabaseConfig{Path: "x.db"},
		Auth:     AuthConfig{JWTSecret: "k", TokenTTL: time.Hour, RateLimit: 1},
		Map: MapConfig{
			ShortResolution:    0,
			CrossingResolution: 100,
			WorldCopies:        -1,
			BoundaryEpsilon:    0.001,
			GeometryCacheSize:  10,
		},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map.short_resolution")
	assert.Contains(t, err.Error(), "map.world_copies")
	assert.NotContains(t, err.Error(), "database.path")
}
