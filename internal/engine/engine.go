package engine

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
)

type engine struct{}

// Config holds engine dependencies. The rules are pure so there are none yet.
type Config struct{}

// Validate validates the config
func (cfg *Config) Validate() error {
	return nil
}

// New creates a rules engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{}, nil
}

func (e *engine) CalculateSheetStats(
	ctx context.Context,
	input *CalculateSheetStatsInput,
) (*CalculateSheetStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if !input.Edition.IsValid() {
		errors.ValidateEnum("edition", string(input.Edition), coc.EditionStrings(), vb)
	}
	coc.ValidateAbilities(input.Abilities, vb)
	coc.ValidateAge(input.Age, vb)
	if input.Edition == coc.EditionSeventh && input.LuckPoints != 0 {
		errors.ValidateRange("luck_points", input.LuckPoints, minLuck, maxLuck, vb)
	}
	errors.ValidateMin("cthulhu_mythos", input.CthulhuMythos, 0, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	stats := Derive(input.Edition, input.Abilities, input.Age, input.LuckPoints, input.CthulhuMythos)

	slog.DebugContext(ctx, "calculated sheet stats",
		"edition", input.Edition,
		"hp_max", stats.HPMax,
		"mp_max", stats.MPMax,
		"san_max", stats.SanMax)

	return &CalculateSheetStatsOutput{Stats: stats}, nil
}

func (e *engine) CalculateSanityMax(
	_ context.Context,
	input *CalculateSanityMaxInput,
) (*CalculateSanityMaxOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Edition.IsValid() {
		return nil, errors.InvalidArgumentf("unknown edition %q", input.Edition)
	}
	if input.CthulhuMythos < 0 {
		return nil, errors.InvalidArgument("cthulhu_mythos must be at least 0")
	}

	return &CalculateSanityMaxOutput{
		SanMax: SanityMax(input.Edition, input.SanStarting, input.POW, input.CthulhuMythos),
	}, nil
}
