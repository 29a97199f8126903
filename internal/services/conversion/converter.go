// Package conversion provides centralized conversion logic between sheets
// and their exchange formats
package conversion

import (
	"github.com/KirkDiggler/coc-api/internal/errors"
)

// BasicRollLabels are the labels of the fixed roll commands in a VTT export
type BasicRollLabels struct {
	Sanity    string
	Idea      string
	Luck      string
	Knowledge string
}

// DefaultBasicRollLabels returns the labels CCFOLIA players expect
func DefaultBasicRollLabels() BasicRollLabels {
	return BasicRollLabels{
		Sanity:    "正気度ロール",
		Idea:      "アイデア",
		Luck:      "幸運",
		Knowledge: "知識",
	}
}

// ConverterConfig holds the configuration for creating a converter
type ConverterConfig struct {
	// Labels overrides the basic roll labels
	Labels *BasicRollLabels
}

// Validate ensures the configuration is valid
func (c *ConverterConfig) Validate() error {
	if c == nil || c.Labels == nil {
		return nil
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("labels.sanity", c.Labels.Sanity, vb)
	errors.ValidateRequired("labels.idea", c.Labels.Idea, vb)
	errors.ValidateRequired("labels.luck", c.Labels.Luck, vb)
	errors.ValidateRequired("labels.knowledge", c.Labels.Knowledge, vb)
	return vb.Build()
}

// converter is the concrete implementation of Converter
type converter struct {
	labels BasicRollLabels
}

// NewConverter creates a new converter instance
func NewConverter(cfg *ConverterConfig) (Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := &converter{labels: DefaultBasicRollLabels()}
	if cfg != nil && cfg.Labels != nil {
		c.labels = *cfg.Labels
	}
	return c, nil
}
