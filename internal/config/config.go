package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"pettrack/internal/core/model"
)

// Config is the process configuration: listen address and backend URLs come
// from the environment, tracking behavior and the ordered zone list from an
// optional yaml file.
type Config struct {
	Host     string `yaml:"-"`
	Port     string `yaml:"-"`
	LogLevel string `yaml:"-"`

	MongoURI      string `yaml:"-"`
	MongoDatabase string `yaml:"-"`
	RedisURL      string `yaml:"-"`

	Tracking TrackingConfig `yaml:"tracking"`
	Zones    []model.Zone   `yaml:"zones"`
}

// TrackingConfig tunes the telemetry core. MaxRoutePoints of zero is invalid
// configuration and rejected at load; the buffer's keep-newest rule has no
// defined meaning for an empty capacity.
type TrackingConfig struct {
	MinUpdateIntervalS int     `yaml:"min_update_interval_s" validate:"gte=0"`
	MaxRouteAgeH       int     `yaml:"max_route_age_h" validate:"gt=0"`
	MaxRoutePoints     int     `yaml:"max_route_points" validate:"gt=0"`
	DefaultAccuracyM   float64 `yaml:"default_accuracy_m" validate:"gte=0"`
	StateCacheTTLS     int     `yaml:"state_cache_ttl_s" validate:"gte=0"`
}

func (t TrackingConfig) MinUpdateInterval() time.Duration {
	return time.Duration(t.MinUpdateIntervalS) * time.Second
}

func (t TrackingConfig) MaxRouteAge() time.Duration {
	return time.Duration(t.MaxRouteAgeH) * time.Hour
}

func (t TrackingConfig) StateCacheTTL() time.Duration {
	return time.Duration(t.StateCacheTTLS) * time.Second
}

// Load builds the configuration from the environment plus the yaml file at
// path. An empty path falls back to TRACKING_CONFIG or ./tracking.yml, both
// optional; an explicitly given path must exist.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Host:          getEnv("HOST", "0.0.0.0"),
		Port:          getEnv("PORT", "8000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "pettrack"),
		RedisURL:      getEnv("REDIS_URL", ""),
		Tracking: TrackingConfig{
			MinUpdateIntervalS: 30,
			MaxRouteAgeH:       24,
			MaxRoutePoints:     1000,
			DefaultAccuracyM:   50,
			StateCacheTTLS:     300,
		},
	}

	explicit := path != ""
	if path == "" {
		path = getEnv("TRACKING_CONFIG", "tracking.yml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	v := validator.New()
	if err := v.Struct(cfg.Tracking); err != nil {
		return nil, fmt.Errorf("invalid tracking config: %w", err)
	}
	for i, z := range cfg.Zones {
		if err := v.Struct(z); err != nil {
			return nil, fmt.Errorf("invalid zone %d (%s): %w", i, z.Name, err)
		}
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}
