package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"go.uber.org/zap"

	"github.com/pthm/pulse"
)

// Config is read from the environment.
type Config struct {
	// Marker attribute. ENV: PULSE_MARKER
	Marker string `env:"PULSE_MARKER,default=pulse"`
	// LogLevel for diagnostics. ENV: PULSE_LOG_LEVEL
	LogLevel string `env:"PULSE_LOG_LEVEL,default=info"`
	// Key for decoding <marker>-props. ENV: PULSE_KEY
	Key string `env:"PULSE_KEY"`
	// Bindings is a comma list replacing the default binding table. ENV: PULSE_BINDINGS
	Bindings string `env:"PULSE_BINDINGS"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: PULSE_LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = level
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

func (c Config) document(logger *zap.Logger) (pulse.Config, error) {
	cfg := pulse.Config{
		Marker: c.Marker,
		Logger: logger,
	}
	for _, b := range strings.Split(c.Bindings, ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.Bindings = append(cfg.Bindings, strings.ToLower(b))
		}
	}
	if c.Key != "" {
		enc, err := pulse.NewEncoder([]byte(c.Key))
		if err != nil {
			return pulse.Config{}, fmt.Errorf("config: PULSE_KEY: %w", err)
		}
		cfg.Encoder = enc
	}
	return cfg, nil
}
