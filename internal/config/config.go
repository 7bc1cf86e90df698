package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              int    `envconfig:"PORT" default:"8080"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	JWTSecret         string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins    string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	MaxShapesPerScene int    `envconfig:"MAX_SHAPES_PER_SCENE" default:"10000"`
	PlaygroundScene   string `envconfig:"PLAYGROUND_SCENE" default:"scene_playground"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.MaxShapesPerScene < 0 {
		return nil, fmt.Errorf("MAX_SHAPES_PER_SCENE must not be negative, got %d", cfg.MaxShapesPerScene)
	}
	return &cfg, nil
}

// Level maps LOG_LEVEL onto slog levels. Unknown names fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Origins splits ALLOWED_ORIGINS on commas, dropping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
