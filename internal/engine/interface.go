// Package engine is the Stat Computer: deterministic derived-stat rules for
// the 6th and 7th edition rulesets
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/coc-api/internal/engine Engine

import (
	"context"
)

// Engine provides rules calculations over raw sheet data
type Engine interface {
	// CalculateSheetStats validates abilities, age and luck for the edition and
	// returns every derived stat a new sheet node needs
	CalculateSheetStats(ctx context.Context, input *CalculateSheetStatsInput) (*CalculateSheetStatsOutput, error)

	// CalculateSanityMax recomputes maximum sanity after the Cthulhu Mythos skill changes
	CalculateSanityMax(ctx context.Context, input *CalculateSanityMaxInput) (*CalculateSanityMaxOutput, error)
}
