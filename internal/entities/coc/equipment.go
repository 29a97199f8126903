package coc

import "time"

// EquipmentKind tags an equipment record
type EquipmentKind string

// Equipment kinds
const (
	EquipmentKindWeapon EquipmentKind = "weapon"
	EquipmentKindArmor  EquipmentKind = "armor"
	EquipmentKindItem   EquipmentKind = "item"
)

// IsValid checks if the kind is known
func (k EquipmentKind) IsValid() bool {
	switch k {
	case EquipmentKindWeapon, EquipmentKindArmor, EquipmentKindItem:
		return true
	default:
		return false
	}
}

// EquipmentKindStrings returns the kinds as strings, for enum validation
func EquipmentKindStrings() []string {
	return []string{
		string(EquipmentKindWeapon),
		string(EquipmentKindArmor),
		string(EquipmentKindItem),
	}
}

// Equipment is an item carried by a sheet. Which of the kind-specific
// records is set is decided by Kind.
type Equipment struct {
	ID          string        `json:"id"`
	SheetID     string        `json:"sheet_id"`
	Kind        EquipmentKind `json:"kind"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`

	Weapon *WeaponStats `json:"weapon,omitempty"`
	Armor  *ArmorStats  `json:"armor,omitempty"`
	Item   *ItemStats   `json:"item,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeaponStats holds weapon-only fields
type WeaponStats struct {
	// Damage in dice notation, e.g. "1D10+2" or "1D6+DB"
	Damage          string `json:"damage"`
	Range           string `json:"range,omitempty"`
	AttacksPerRound int    `json:"attacks_per_round"`
	Ammo            int    `json:"ammo"`
	Malfunction     int    `json:"malfunction"`
}

// ArmorStats holds armor-only fields
type ArmorStats struct {
	ArmorPoints int `json:"armor_points"`
}

// ItemStats holds plain item fields
type ItemStats struct {
	Quantity int `json:"quantity"`
}

// Clone returns a deep copy of the equipment
func (e *Equipment) Clone() *Equipment {
	if e == nil {
		return nil
	}
	out := *e
	if e.Weapon != nil {
		w := *e.Weapon
		out.Weapon = &w
	}
	if e.Armor != nil {
		a := *e.Armor
		out.Armor = &a
	}
	if e.Item != nil {
		i := *e.Item
		out.Item = &i
	}
	return &out
}
