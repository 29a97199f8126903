package coc

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

// Equipment bounds
const (
	MinAttacksPerRound = 1
	MinMalfunction     = 0
	MaxMalfunction     = 100
	MinItemQuantity    = 1
)

// damageNotation accepts "1D10", "1D6+2", "1D4+DB", "2D6+1D4-1"
var damageNotation = regexp.MustCompile(`(?i)^\d+D\d+([+-](\d+D\d+|\d+|DB))*$`)

// NormalizeName trims and NFC-normalises a user-entered name so composed and
// decomposed forms (e.g. "ガ" vs "カ゛") identify the same skill or sheet
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ValidateAbilities checks every ability against its declared bounds
func ValidateAbilities(a Abilities, vb *errors.ValidationBuilder) {
	for _, tag := range AllAbilities() {
		v, _ := a.Get(tag)
		minValue, maxValue := tag.Bounds()
		errors.ValidateRange("abilities."+tag.String(), v, minValue, maxValue, vb)
	}
}

// ValidateDerived checks the current <= max invariants on a sheet
func ValidateDerived(s *Sheet, vb *errors.ValidationBuilder) {
	errors.ValidateMin("hp_current", s.HPCurrent, 0, vb)
	errors.ValidateMin("mp_current", s.MPCurrent, 0, vb)
	errors.ValidateMin("san_current", s.SanCurrent, 0, vb)
	if s.HPCurrent > s.HPMax {
		vb.Fieldf("hp_current", "must not exceed hp_max (%d)", s.HPMax)
	}
	if s.MPCurrent > s.MPMax {
		vb.Fieldf("mp_current", "must not exceed mp_max (%d)", s.MPMax)
	}
	if s.SanMax > MaxSanity {
		vb.Fieldf("san_max", "must not exceed %d", MaxSanity)
	}
	if s.SanCurrent > s.SanMax {
		vb.Fieldf("san_current", "must not exceed san_max (%d)", s.SanMax)
	}
}

// ValidateAge checks the optional age; zero means unset
func ValidateAge(age int, vb *errors.ValidationBuilder) {
	if age != 0 {
		errors.ValidateRange("age", age, MinAge, MaxAge, vb)
	}
}

// ValidateSkillPools checks that every point pool is non-negative
func ValidateSkillPools(k *Skill, vb *errors.ValidationBuilder) {
	errors.ValidateMin("base", k.Base, 0, vb)
	errors.ValidateMin("occupation", k.Occupation, 0, vb)
	errors.ValidateMin("interest", k.Interest, 0, vb)
	errors.ValidateMin("bonus", k.Bonus, 0, vb)
	errors.ValidateMin("other", k.Other, 0, vb)
	if !k.Category.IsValid() {
		errors.ValidateEnum("category", string(k.Category), SkillCategoryStrings(), vb)
	}
}

// ValidateFormula checks one ability's dice formula against the count/sides/bonus bounds
func ValidateFormula(tag Ability, f DiceFormula, vb *errors.ValidationBuilder) {
	prefix := "formulas." + tag.String()
	errors.ValidateRange(prefix+".count", f.Count, MinDiceCount, MaxDiceCount, vb)
	errors.ValidateRange(prefix+".sides", f.Sides, MinDiceSides, MaxDiceSides, vb)
	errors.ValidateRange(prefix+".bonus", f.Bonus, MinDiceBonus, MaxDiceBonus, vb)
}

// ValidateFormulas checks that all eight abilities carry an in-range formula.
// Failures are reported as InvalidConfig.
func ValidateFormulas(formulas map[Ability]DiceFormula) error {
	vb := errors.NewValidationBuilder()
	for _, tag := range AllAbilities() {
		f, ok := formulas[tag]
		if !ok {
			vb.RequiredField("formulas." + tag.String())
			continue
		}
		ValidateFormula(tag, f, vb)
	}
	for tag := range formulas {
		if !tag.IsValid() {
			vb.Fieldf("formulas", "unknown ability %q", tag)
		}
	}
	return vb.BuildWithCode(errors.CodeInvalidConfig)
}

// ValidateEquipment applies the per-kind rules to an equipment record
func ValidateEquipment(e *Equipment) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", e.Name, vb)
	errors.ValidateEnum("kind", string(e.Kind), EquipmentKindStrings(), vb)

	switch e.Kind {
	case EquipmentKindWeapon:
		if e.Weapon == nil {
			vb.RequiredField("weapon")
			break
		}
		if !damageNotation.MatchString(strings.ReplaceAll(e.Weapon.Damage, " ", "")) {
			vb.InvalidField("weapon.damage", fmt.Sprintf("%q is not dice notation", e.Weapon.Damage))
		}
		errors.ValidateMin("weapon.attacks_per_round", e.Weapon.AttacksPerRound, MinAttacksPerRound, vb)
		errors.ValidateMin("weapon.ammo", e.Weapon.Ammo, 0, vb)
		errors.ValidateRange("weapon.malfunction", e.Weapon.Malfunction, MinMalfunction, MaxMalfunction, vb)
	case EquipmentKindArmor:
		if e.Armor == nil {
			vb.RequiredField("armor")
			break
		}
		errors.ValidateMin("armor.armor_points", e.Armor.ArmorPoints, 0, vb)
	case EquipmentKindItem:
		if e.Item == nil {
			vb.RequiredField("item")
			break
		}
		errors.ValidateMin("item.quantity", e.Item.Quantity, MinItemQuantity, vb)
	}

	return vb.Build()
}
