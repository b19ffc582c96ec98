// Package config reads tool settings from the environment. Flags still win
// where a command defines one; the environment supplies defaults.
package config

import "github.com/caarlos0/env/v11"

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"true"`
}

// AppConfig holds tool-wide defaults.
type AppConfig struct {
	Log       LogConfig
	DBPath    string `env:"SDM_DB"`
	ServeAddr string `env:"SDM_ADDR" envDefault:":8460"`
}

// Load parses the full application config from the environment.
func Load() (AppConfig, error) {
	var cfg AppConfig
	err := env.Parse(&cfg)
	return cfg, err
}
