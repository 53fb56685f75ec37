package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// defaultIcon is the icon cropped in place when no paths are provided.
const defaultIcon = "assets/images/mc_icon.png"

// Config holds the settings read from the environment.
// Command line flags take precedence over them.
type Config struct {
	Source      string  `env:"CROPICON_IN"`
	Destination string  `env:"CROPICON_OUT"`
	Padding     float64 `env:"CROPICON_PADDING" envDefault:"1.1"`
	LogLevel    string  `env:"CROPICON_LOG_LEVEL" envDefault:"info"`
	Quiet       bool    `env:"CROPICON_QUIET"`
}

// loadConfig parses the environment into a Config.
func loadConfig() (Config, error) {
	cfg := Config{
		Source:      defaultIcon,
		Destination: defaultIcon,
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// validate checks the settings once the flags have been applied.
func (c Config) validate() error {
	if c.Source == "" || c.Destination == "" {
		return fmt.Errorf("both the source and the destination should be provided")
	}
	if c.Padding < 1 {
		return fmt.Errorf("padding factor should be at least 1, got %v", c.Padding)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
