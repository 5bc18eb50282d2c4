package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Options are host runtime settings sourced from the environment
type Options struct {
	Profile      string  `env:"ACTORKIT_PROFILE"`
	TickRate     float64 `env:"ACTORKIT_TICK_RATE" envDefault:"60"`
	TelemetryURL string  `env:"ACTORKIT_TELEMETRY_URL"`
	LogLevel     string  `env:"ACTORKIT_LOG_LEVEL" envDefault:"info"`
	Mute         bool    `env:"ACTORKIT_MUTE"`
}

// ParseEnv loads runtime options from environment variables
func ParseEnv() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// SlogLevel maps the textual log level to a slog level, defaulting to
// info on unknown values
func (o Options) SlogLevel() slog.Level {
	switch o.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
