package engine

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// CalculateSheetStatsInput contains the raw sheet data for stat calculation
type CalculateSheetStatsInput struct {
	Edition   coc.Edition
	Abilities coc.Abilities

	// Age is optional; zero is treated as under 40
	Age int

	// LuckPoints is the 7th edition luck roll; zero defaults to POW
	LuckPoints int

	// CthulhuMythos lowers 6th edition maximum sanity
	CthulhuMythos int
}

// CalculateSheetStatsOutput contains calculated sheet stats
type CalculateSheetStatsOutput struct {
	Stats *Derived
}

// CalculateSanityMaxInput contains the data needed to recompute maximum sanity
type CalculateSanityMaxInput struct {
	Edition       coc.Edition
	SanStarting   int
	POW           int
	CthulhuMythos int
}

// CalculateSanityMaxOutput contains the recomputed maximum sanity
type CalculateSanityMaxOutput struct {
	SanMax int
}

// Derived is the full set of stats computed from abilities.
// Exactly one of Sixth and Seventh is set.
type Derived struct {
	HPMax       int
	MPMax       int
	SanStarting int
	SanMax      int

	Sixth   *SixthDerived
	Seventh *SeventhDerived
}

// SixthDerived holds the cached 6th edition roll targets
type SixthDerived struct {
	IdeaRoll    int
	LuckRoll    int
	KnowRoll    int
	DamageBonus string
}

// SeventhDerived holds the 7th edition combat values
type SeventhDerived struct {
	LuckPoints  int
	Build       int
	MoveRate    int
	Dodge       int
	DamageBonus string
}

// ApplyTo writes the derived stats onto a sheet, resetting current HP, MP and
// SAN to their maxima and filling the edition extension. Free text already on
// the extension is preserved.
func (d *Derived) ApplyTo(s *coc.Sheet) {
	s.HPMax = d.HPMax
	s.HPCurrent = d.HPMax
	s.MPMax = d.MPMax
	s.MPCurrent = d.MPMax
	s.SanStarting = d.SanStarting
	s.SanMax = d.SanMax
	s.SanCurrent = min(d.SanStarting, d.SanMax)

	switch {
	case d.Sixth != nil:
		if s.Sixth == nil {
			s.Sixth = &coc.SixthEdition{}
		}
		s.Sixth.IdeaRoll = d.Sixth.IdeaRoll
		s.Sixth.LuckRoll = d.Sixth.LuckRoll
		s.Sixth.KnowRoll = d.Sixth.KnowRoll
		s.Sixth.DamageBonus = d.Sixth.DamageBonus
		s.Seventh = nil
	case d.Seventh != nil:
		if s.Seventh == nil {
			s.Seventh = &coc.SeventhEdition{}
		}
		s.Seventh.LuckPoints = d.Seventh.LuckPoints
		s.Seventh.Build = d.Seventh.Build
		s.Seventh.MoveRate = d.Seventh.MoveRate
		s.Seventh.Dodge = d.Seventh.Dodge
		s.Seventh.DamageBonus = d.Seventh.DamageBonus
		s.Sixth = nil
	}
}
