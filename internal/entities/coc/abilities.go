package coc

// Ability is one of the eight characteristic tags
type Ability string

// Ability tags
const (
	AbilitySTR Ability = "str"
	AbilityCON Ability = "con"
	AbilityPOW Ability = "pow"
	AbilityDEX Ability = "dex"
	AbilityAPP Ability = "app"
	AbilitySIZ Ability = "siz"
	AbilityINT Ability = "int"
	AbilityEDU Ability = "edu"
)

// AllAbilities returns the eight abilities in sheet order
func AllAbilities() []Ability {
	return []Ability{
		AbilitySTR,
		AbilityCON,
		AbilityPOW,
		AbilityDEX,
		AbilityAPP,
		AbilitySIZ,
		AbilityINT,
		AbilityEDU,
	}
}

// IsValid checks if the ability tag is one of the eight
func (a Ability) IsValid() bool {
	switch a {
	case AbilitySTR, AbilityCON, AbilityPOW, AbilityDEX,
		AbilityAPP, AbilitySIZ, AbilityINT, AbilityEDU:
		return true
	default:
		return false
	}
}

// String returns the string representation of the ability
func (a Ability) String() string {
	return string(a)
}

// Bounds returns the inclusive stored-value range for the ability.
// The same bounds apply to both editions; 6th stores raw x5.
func (a Ability) Bounds() (minValue, maxValue int) {
	switch a {
	case AbilitySIZ, AbilityEDU:
		return 30, 90
	case AbilityINT:
		return 40, 90
	default:
		return 15, 90
	}
}

// Abilities holds the eight stored characteristic values
type Abilities struct {
	STR int `json:"str"`
	CON int `json:"con"`
	POW int `json:"pow"`
	DEX int `json:"dex"`
	APP int `json:"app"`
	SIZ int `json:"siz"`
	INT int `json:"int"`
	EDU int `json:"edu"`
}

// Get returns the value for a tag and false if the tag is unknown
func (a Abilities) Get(tag Ability) (int, bool) {
	switch tag {
	case AbilitySTR:
		return a.STR, true
	case AbilityCON:
		return a.CON, true
	case AbilityPOW:
		return a.POW, true
	case AbilityDEX:
		return a.DEX, true
	case AbilityAPP:
		return a.APP, true
	case AbilitySIZ:
		return a.SIZ, true
	case AbilityINT:
		return a.INT, true
	case AbilityEDU:
		return a.EDU, true
	default:
		return 0, false
	}
}

// Set assigns the value for a tag and reports whether the tag was known
func (a *Abilities) Set(tag Ability, value int) bool {
	switch tag {
	case AbilitySTR:
		a.STR = value
	case AbilityCON:
		a.CON = value
	case AbilityPOW:
		a.POW = value
	case AbilityDEX:
		a.DEX = value
	case AbilityAPP:
		a.APP = value
	case AbilitySIZ:
		a.SIZ = value
	case AbilityINT:
		a.INT = value
	case AbilityEDU:
		a.EDU = value
	default:
		return false
	}
	return true
}

// ToMap returns the abilities keyed by tag
func (a Abilities) ToMap() map[Ability]int {
	out := make(map[Ability]int, 8)
	for _, tag := range AllAbilities() {
		v, _ := a.Get(tag)
		out[tag] = v
	}
	return out
}

// PercentileFromRaw converts a raw 3-18 style 6th edition roll to its stored
// percentile-equivalent, clamped into the ability's bounds
func PercentileFromRaw(tag Ability, raw int) int {
	minValue, maxValue := tag.Bounds()
	v := raw * 5
	if v < minValue {
		return minValue
	}
	if v > maxValue {
		return maxValue
	}
	return v
}
