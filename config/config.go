// Package config reads runtime settings from WAYFARER_* environment
// variables. Command-line flags override what is parsed here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Scene overrides the catalog start scene.
	Scene string `env:"WAYFARER_SCENE"`
	// Destination overrides the catalog start destination.
	Destination string `env:"WAYFARER_DESTINATION"`
	Debug       bool   `env:"WAYFARER_DEBUG" envDefault:"false"`
	SavePath    string `env:"WAYFARER_SAVE_PATH" envDefault:"~/.wayfarer/save.db"`
	// PrefabDir is watched for edits in debug mode and read before the
	// embedded prefabs.
	PrefabDir    string `env:"WAYFARER_PREFAB_DIR" envDefault:"prefabs"`
	WindowWidth  int    `env:"WAYFARER_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight int    `env:"WAYFARER_WINDOW_HEIGHT" envDefault:"720"`
	LogLevel     string `env:"WAYFARER_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the environment configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.WindowWidth <= 0 || cfg.WindowHeight <= 0 {
		return Config{}, fmt.Errorf("config: window size %dx%d must be positive", cfg.WindowWidth, cfg.WindowHeight)
	}
	return cfg, nil
}
