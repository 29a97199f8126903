package coc

import (
	"fmt"
	"time"
)

// Dice formula bounds
const (
	MinDiceCount = 1
	MaxDiceCount = 10
	MinDiceSides = 2
	MaxDiceSides = 100
	MinDiceBonus = -50
	MaxDiceBonus = 50
)

// DiceFormula is count dice of sides faces plus a flat bonus
type DiceFormula struct {
	Count int `json:"count"`
	Sides int `json:"sides"`
	Bonus int `json:"bonus"`
}

// String renders the formula as "<count>D<sides>[+/-bonus]"
func (f DiceFormula) String() string {
	switch {
	case f.Bonus > 0:
		return fmt.Sprintf("%dD%d+%d", f.Count, f.Sides, f.Bonus)
	case f.Bonus < 0:
		return fmt.Sprintf("%dD%d%d", f.Count, f.Sides, f.Bonus)
	default:
		return fmt.Sprintf("%dD%d", f.Count, f.Sides)
	}
}

// DicePreset names a built-in dice setting
type DicePreset string

// Built-in presets
const (
	DicePresetStandardSixth DicePreset = "standard_6th"
	DicePresetHighStatSixth DicePreset = "high_stat_6th"
)

// IsValid checks if the preset is known
func (p DicePreset) IsValid() bool {
	return p == DicePresetStandardSixth || p == DicePresetHighStatSixth
}

// DicePresetStrings returns the presets as strings, for enum validation
func DicePresetStrings() []string {
	return []string{string(DicePresetStandardSixth), string(DicePresetHighStatSixth)}
}

// DiceSetting is a user's named set of per-ability dice formulae.
// (OwnerID, Name) is unique and each owner has exactly one default.
type DiceSetting struct {
	ID          string                  `json:"id"`
	OwnerID     string                  `json:"owner_id"`
	Name        string                  `json:"setting_name"`
	Description string                  `json:"description,omitempty"`
	Formulas    map[Ability]DiceFormula `json:"formulas"`
	IsDefault   bool                    `json:"is_default"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// Formula returns the formula for a tag
func (d *DiceSetting) Formula(tag Ability) (DiceFormula, bool) {
	f, ok := d.Formulas[tag]
	return f, ok
}

// Clone returns a deep copy of the setting
func (d *DiceSetting) Clone() *DiceSetting {
	if d == nil {
		return nil
	}
	out := *d
	out.Formulas = make(map[Ability]DiceFormula, len(d.Formulas))
	for k, v := range d.Formulas {
		out.Formulas[k] = v
	}
	return &out
}

// StandardSixthFormulas returns the "Standard 6th" preset:
// STR/CON/POW/DEX/APP 3D6, SIZ/INT 2D6+6, EDU 3D6+3
func StandardSixthFormulas() map[Ability]DiceFormula {
	threeD6 := DiceFormula{Count: 3, Sides: 6}
	twoD6Plus6 := DiceFormula{Count: 2, Sides: 6, Bonus: 6}
	return map[Ability]DiceFormula{
		AbilitySTR: threeD6,
		AbilityCON: threeD6,
		AbilityPOW: threeD6,
		AbilityDEX: threeD6,
		AbilityAPP: threeD6,
		AbilitySIZ: twoD6Plus6,
		AbilityINT: twoD6Plus6,
		AbilityEDU: {Count: 3, Sides: 6, Bonus: 3},
	}
}

// HighStatSixthFormulas returns the "High-stat 6th" preset:
// STR..APP 4D6-3, SIZ/INT 3D6+3, EDU 4D6
func HighStatSixthFormulas() map[Ability]DiceFormula {
	fourD6Minus3 := DiceFormula{Count: 4, Sides: 6, Bonus: -3}
	threeD6Plus3 := DiceFormula{Count: 3, Sides: 6, Bonus: 3}
	return map[Ability]DiceFormula{
		AbilitySTR: fourD6Minus3,
		AbilityCON: fourD6Minus3,
		AbilityPOW: fourD6Minus3,
		AbilityDEX: fourD6Minus3,
		AbilityAPP: fourD6Minus3,
		AbilitySIZ: threeD6Plus3,
		AbilityINT: threeD6Plus3,
		AbilityEDU: {Count: 4, Sides: 6},
	}
}

// PresetFormulas returns the formulae and display name for a preset
func PresetFormulas(p DicePreset) (string, map[Ability]DiceFormula, bool) {
	switch p {
	case DicePresetStandardSixth:
		return "Standard 6th", StandardSixthFormulas(), true
	case DicePresetHighStatSixth:
		return "High-stat 6th", HighStatSixthFormulas(), true
	default:
		return "", nil, false
	}
}
