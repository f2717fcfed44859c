package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/pulseboard/pkg/log"
)

type StreamConfig struct {
	URL            string        `env:"PULSE_STREAM_URL,required,notEmpty"`
	ConnectTimeout time.Duration `env:"PULSE_STREAM_CONNECT_TIMEOUT" envDefault:"10s"`
}

func NewStreamConfig(ctx context.Context) *StreamConfig {
	c := &StreamConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Stream config")
	}
	return c
}
