package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/pulseboard/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"PULSE_RUNTIME_PATH" envDefault:".pulseboard"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableTUI      bool `env:"ENABLE_TUI" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	// Relative runtime paths live under the home directory, same as
	// GetRuntimePath, so every surface resolves to one location.
	if !filepath.IsAbs(c.RuntimePath) {
		home, _ := os.UserHomeDir()
		c.RuntimePath = filepath.Join(home, c.RuntimePath)
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "pulseboard.db")
}

func (c AppConfig) GetLogPath() string {
	return filepath.Join(c.RuntimePath, "logs")
}

func (c AppConfig) GetEnvFilePath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
