package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig carries the runtime settings of the example binaries. Values come
// from SCAFFOLD_-prefixed environment variables and can be overridden by flags.
type AppConfig struct {
	ConfigPath string        `envconfig:"CONFIG" default:"config.yaml"`
	InputPath  string        `envconfig:"INPUT" default:"data.csv"`
	OutputPath string        `envconfig:"OUTPUT" default:""`
	Logging    LoggingConfig `envconfig:"LOG"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// LoadApp reads AppConfig from the environment.
func LoadApp() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("SCAFFOLD", &cfg); err != nil {
		return nil, fmt.Errorf("load app config from env: %w", err)
	}
	return &cfg, nil
}
