package config

import (
	"errors"
	"fmt"
	"strings"

	libconfig "chargelog/libs/config"
)

// Config defines chargelog service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CHARGELOG_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"CHARGELOG_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"CHARGELOG_REDIS_ADDR"`
		Password string `yaml:"password" env:"CHARGELOG_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Auth struct {
		Secret          string `yaml:"secret" env:"CHARGELOG_JWT_SECRET"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"CHARGELOG_TOKEN_TTL_MINUTES"`
	} `yaml:"auth"`
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Auth.TokenTTLMinutes = 24 * 60

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style string.
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
