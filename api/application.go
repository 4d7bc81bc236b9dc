// Package api serves mosaic generation and PDF guides over HTTP.
package api

import (
	"github.com/submersibletoaster/mosaic"
)

type Config struct {
	HTTPPort       string
	AllowedOrigins []string
	MaxUploadBytes int64
	MaxUnits       int
	Resampler      string
	DevMode        bool
}

type Application struct {
	Config    Config
	Generator *mosaic.Generator
}

// NewApplication builds the generator described by cfg.
func NewApplication(cfg Config) (*Application, error) {
	r, err := mosaic.ParseResampler(cfg.Resampler)
	if err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	opts := mosaic.DefaultOptions()
	opts.Resampler = r
	if cfg.MaxUnits > 0 {
		opts.MaxUnits = cfg.MaxUnits
	}
	return &Application{
		Config:    cfg,
		Generator: mosaic.NewGenerator(opts),
	}, nil
}

// DefaultMaxUploadBytes caps request bodies at 16 MiB.
const DefaultMaxUploadBytes = 16 << 20
