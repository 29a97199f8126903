package engine

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// Rule constants
const (
	baseMoveRate = 8
	minMoveRate  = 1
	minLuck      = 15
	maxLuck      = 90
)

// bracket maps an inclusive upper bound on STR+SIZ to a value
type bracket[T any] struct {
	upTo  int
	value T
}

var sixthDamageBonus = []bracket[string]{
	{64, "-1d4"},
	{84, "-1d2"},
	{124, "+0"},
	{164, "+1d4"},
	{204, "+1d6"},
	{284, "+2d6"},
	{364, "+3d6"},
	{444, "+4d6"},
}

const sixthDamageBonusMax = "+5d6"

var seventhBuild = []bracket[int]{
	{64, -2},
	{84, -1},
	{124, 0},
	{164, 1},
	{204, 2},
	{284, 3},
}

const seventhBuildMax = 4

var seventhDamageBonus = map[int]string{
	-2: "-2",
	-1: "-1",
	0:  "+0",
	1:  "+1d4",
	2:  "+1d6",
	3:  "+2d6",
	4:  "+3d6",
}

func lookup[T any](table []bracket[T], v int, above T) T {
	for _, b := range table {
		if v <= b.upTo {
			return b.value
		}
	}
	return above
}

// HPMax is (CON + SIZ) / 10 on stored values for both editions
func HPMax(con, siz int) int {
	return (con + siz) / 10
}

// MPMax is POW / 5 for both editions
func MPMax(pow int) int {
	return pow / 5
}

// DamageBonusSixth returns the 6th edition damage bonus for stored STR + SIZ
func DamageBonusSixth(strPlusSiz int) string {
	return lookup(sixthDamageBonus, strPlusSiz, sixthDamageBonusMax)
}

// Build returns the 7th edition build for STR + SIZ
func Build(strPlusSiz int) int {
	return lookup(seventhBuild, strPlusSiz, seventhBuildMax)
}

// DamageBonusSeventh returns the damage bonus label for a build value
func DamageBonusSeventh(build int) string {
	if build < -2 {
		build = -2
	}
	if build > seventhBuildMax {
		build = seventhBuildMax
	}
	return seventhDamageBonus[build]
}

// Dodge is DEX / 2
func Dodge(dex int) int {
	return dex / 2
}

// MoveRate starts at 8, loses one point per decade from 40 (-5 at 80 and
// over), then moves one point by how STR and DEX compare to SIZ
func MoveRate(str, dex, siz, age int) int {
	rate := baseMoveRate
	if age >= 40 {
		penalty := (age-40)/10 + 1
		rate -= min(penalty, 5)
	}

	switch {
	case str < siz && dex < siz:
		rate--
	case str > siz || dex > siz:
		rate++
	}

	return max(rate, minMoveRate)
}

// SanityMax returns the maximum sanity for an edition. 6th subtracts the
// Cthulhu Mythos skill from starting sanity; 7th caps POW at 99.
func SanityMax(edition coc.Edition, sanStarting, pow, mythos int) int {
	if edition == coc.EditionSeventh {
		return min(coc.MaxSanity, pow)
	}
	return max(0, min(coc.MaxSanity, sanStarting-mythos))
}

// Derive computes every derived stat. It is total for in-range input;
// callers validate first.
func Derive(edition coc.Edition, a coc.Abilities, age, luckPoints, mythos int) *Derived {
	d := &Derived{
		HPMax: HPMax(a.CON, a.SIZ),
		MPMax: MPMax(a.POW),
	}

	// Stored 6th POW is already raw x 5, which is starting sanity
	d.SanStarting = a.POW
	d.SanMax = SanityMax(edition, d.SanStarting, a.POW, mythos)

	if edition == coc.EditionSeventh {
		if luckPoints == 0 {
			luckPoints = a.POW
		}
		build := Build(a.STR + a.SIZ)
		d.Seventh = &SeventhDerived{
			LuckPoints:  luckPoints,
			Build:       build,
			MoveRate:    MoveRate(a.STR, a.DEX, a.SIZ, age),
			Dodge:       Dodge(a.DEX),
			DamageBonus: DamageBonusSeventh(build),
		}
		return d
	}

	d.Sixth = &SixthDerived{
		IdeaRoll:    a.INT * 5,
		LuckRoll:    a.POW * 5,
		KnowRoll:    a.EDU * 5,
		DamageBonus: DamageBonusSixth(a.STR + a.SIZ),
	}
	return d
}
