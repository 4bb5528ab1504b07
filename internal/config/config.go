package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Map       MapConfig       `mapstructure:"map"`
	Emissions EmissionsConfig `mapstructure:"emissions"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	CorsOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
	// Requests per minute per IP on login/register
	RateLimit int `mapstructure:"rate_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File enables rotating file output when set
	File string `mapstructure:"file"`
}

// MapConfig controls flight path geometry.
type MapConfig struct {
	ShortResolution    int     `mapstructure:"short_resolution"`
	CrossingResolution int     `mapstructure:"crossing_resolution"`
	WorldCopies        int     `mapstructure:"world_copies"`
	BoundaryEpsilon    float64 `mapstructure:"boundary_epsilon"`
	GeometryCacheSize  int     `mapstructure:"geometry_cache_size"`
	GeometryCacheTTL   time.Duration `mapstructure:"geometry_cache_ttl"`
}

type EmissionsConfig struct {
	KgPerKm float64 `mapstructure:"kg_per_km"`
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load 加载配置: defaults, then ./config.yaml if present, then FLIGHTARCS_* env vars.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.path", "./data/flightarcs.db")
	v.SetDefault("auth.jwt_secret", defaultJWTSecret)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.rate_limit", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("map.short_resolution", 30)
	v.SetDefault("map.crossing_resolution", 100)
	v.SetDefault("map.world_copies", 2)
	v.SetDefault("map.boundary_epsilon", 0.001)
	v.SetDefault("map.geometry_cache_size", 4096)
	v.SetDefault("map.geometry_cache_ttl", time.Hour)
	v.SetDefault("emissions.kg_per_km", 0.115)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// FLIGHTARCS_MAP_WORLD_COPIES → map.world_copies
	v.SetEnvPrefix("FLIGHTARCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port == "" {
		errs = append(errs, "server.port is required")
	}
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, "auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, "auth.token_ttl must be positive")
	}
	if c.Auth.RateLimit <= 0 {
		errs = append(errs, "auth.rate_limit must be positive")
	}
	if c.Map.ShortResolution < 1 {
		errs = append(errs, fmt.Sprintf("map.short_resolution must be >= 1, got %d", c.Map.ShortResolution))
	}
	if c.Map.CrossingResolution < 1 {
		errs = append(errs, fmt.Sprintf("map.crossing_resolution must be >= 1, got %d", c.Map.CrossingResolution))
	}
	if c.Map.WorldCopies < 0 {
		errs = append(errs, fmt.Sprintf("map.world_copies must be >= 0, got %d", c.Map.WorldCopies))
	}
	if c.Map.BoundaryEpsilon < 0 || c.Map.BoundaryEpsilon >= 1 {
		errs = append(errs, fmt.Sprintf("map.boundary_epsilon must be in [0, 1), got %v", c.Map.BoundaryEpsilon))
	}
	if c.Map.GeometryCacheSize < 1 {
		errs = append(errs, "map.geometry_cache_size must be positive")
	}
	if c.Emissions.KgPerKm < 0 {
		errs = append(errs, "emissions.kg_per_km must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// UsesDefaultSecret reports whether the JWT secret was never changed.
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.JWTSecret == defaultJWTSecret
}
