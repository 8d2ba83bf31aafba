package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds everything the CDV server needs, loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CDV_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"CDV_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"CDV_REDIS_ADDR"`
		Password string `yaml:"password" env:"CDV_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Session struct {
		TTLHours int `yaml:"ttlHours" env:"CDV_SESSION_TTL_HOURS"`
	} `yaml:"session"`
	JWT struct {
		Secret           string `yaml:"secret" env:"CDV_JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"CDV_JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt"`
	Admin struct {
		Username string `yaml:"username" env:"CDV_ADMIN_USERNAME"`
		Password string `yaml:"password" env:"CDV_ADMIN_PASSWORD"`
	} `yaml:"admin"`
	// StationsSeed optionally creates stations on startup, comma separated.
	StationsSeed string `yaml:"stationsSeed" env:"CDV_STATIONS_SEED"`
}

// Load reads configuration and applies defaults and validation.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Session.TTLHours = 12
	cfg.JWT.ExpiresInMinutes = 60

	if err := load(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.Redis.Addr == "" {
		return nil, errors.New("config: redis addr is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.Session.TTLHours <= 0 {
		cfg.Session.TTLHours = 12
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 60
	}

	return cfg, nil
}

// HTTPAddress returns a host:port listen address.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// SessionTTL converts the configured session lifetime to a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

// JWTExpiration converts the configured token expiry to a duration.
func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}

// SeedStations splits the optional seed list into trimmed station names.
func (c *Config) SeedStations() []string {
	if strings.TrimSpace(c.StationsSeed) == "" {
		return nil
	}
	parts := strings.Split(c.StationsSeed, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
