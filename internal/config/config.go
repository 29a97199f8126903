// Package config loads the service configuration from the environment
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
)

// Config is the runtime configuration. Every field has a default, so an
// empty environment yields a working local setup.
type Config struct {
	DefaultEdition    coc.Edition    `env:"COC_DEFAULT_EDITION" envDefault:"6th"`
	DefaultDicePreset coc.DicePreset `env:"COC_DEFAULT_DICE_PRESET" envDefault:"standard_6th"`

	MaxImagesPerSheet      int      `env:"COC_MAX_IMAGES_PER_SHEET" envDefault:"10"`
	MaxImageBytes          int64    `env:"COC_MAX_IMAGE_BYTES" envDefault:"5242880"`
	MaxTotalImageBytes     int64    `env:"COC_MAX_TOTAL_IMAGE_BYTES_PER_SHEET" envDefault:"31457280"`
	AllowedImageMediaTypes []string `env:"COC_ALLOWED_IMAGE_MEDIA_TYPES" envDefault:"jpeg,png,gif" envSeparator:","`

	BulkExportConcurrency int  `env:"COC_BULK_EXPORT_CONCURRENCY" envDefault:"4"`
	VTTSyncEnabled        bool `env:"COC_VTT_SYNC_ENABLED" envDefault:"false"`

	RedisAddr string `env:"COC_REDIS_ADDR" envDefault:"localhost:6379"`
	GRPCPort  int    `env:"COC_GRPC_PORT" envDefault:"50051"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidConfig, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("COC_DEFAULT_EDITION", string(c.DefaultEdition), coc.EditionStrings(), vb)
	errors.ValidateEnum("COC_DEFAULT_DICE_PRESET", string(c.DefaultDicePreset), coc.DicePresetStrings(), vb)
	errors.ValidateMin("COC_MAX_IMAGES_PER_SHEET", c.MaxImagesPerSheet, 1, vb)
	errors.ValidateMin("COC_BULK_EXPORT_CONCURRENCY", c.BulkExportConcurrency, 1, vb)
	errors.ValidateRange("COC_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRequired("COC_REDIS_ADDR", c.RedisAddr, vb)

	if c.MaxImageBytes <= 0 {
		vb.InvalidField("COC_MAX_IMAGE_BYTES", "must be positive")
	}
	if c.MaxTotalImageBytes < c.MaxImageBytes {
		vb.InvalidField("COC_MAX_TOTAL_IMAGE_BYTES_PER_SHEET", "must be at least COC_MAX_IMAGE_BYTES")
	}
	if len(c.AllowedImageMediaTypes) == 0 {
		vb.RequiredField("COC_ALLOWED_IMAGE_MEDIA_TYPES")
	}
	for _, f := range c.AllowedImageMediaTypes {
		if _, ok := coc.MediaTypeFromFormat(strings.TrimSpace(f)); !ok {
			vb.InvalidField("COC_ALLOWED_IMAGE_MEDIA_TYPES", fmt.Sprintf("unsupported format %q", f))
		}
	}

	return vb.BuildWithCode(errors.CodeInvalidConfig)
}

// MediaTypes returns the allowed image formats as media types
func (c *Config) MediaTypes() []coc.MediaType {
	out := make([]coc.MediaType, 0, len(c.AllowedImageMediaTypes))
	for _, f := range c.AllowedImageMediaTypes {
		if mt, ok := coc.MediaTypeFromFormat(strings.TrimSpace(f)); ok {
			out = append(out, mt)
		}
	}
	return out
}

// GRPCAddr returns the listen address for the gRPC server
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}
