package dice

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
)

// CreateSettingInput defines the request for creating a dice setting
type CreateSettingInput struct {
	OwnerID     string
	Name        string
	Description string
	Formulas    map[coc.Ability]coc.DiceFormula
	IsDefault   bool
}

// CreateSettingOutput defines the response for creating a dice setting
type CreateSettingOutput struct {
	Setting *coc.DiceSetting
	// Demoted is the previous default when the new setting replaced it
	Demoted *coc.DiceSetting
}

// GetSettingInput defines the request for getting a dice setting
type GetSettingInput struct {
	SettingID string
}

// GetSettingOutput defines the response for getting a dice setting
type GetSettingOutput struct {
	Setting *coc.DiceSetting
}

// ListSettingsInput defines the request for listing a user's dice settings
type ListSettingsInput struct {
	OwnerID string
}

// ListSettingsOutput defines the response for listing dice settings
type ListSettingsOutput struct {
	Settings []*coc.DiceSetting
}

// GetDefaultSettingInput defines the request for a user's default setting
type GetDefaultSettingInput struct {
	OwnerID string
}

// GetDefaultSettingOutput defines the response for a user's default setting
type GetDefaultSettingOutput struct {
	Setting *coc.DiceSetting
}

// EnsureDefaultSettingInput defines the request for ensuring a user has a default setting
type EnsureDefaultSettingInput struct {
	OwnerID string
}

// EnsureDefaultSettingOutput defines the response for ensuring a default setting
type EnsureDefaultSettingOutput struct {
	Setting *coc.DiceSetting
	// Created is true when the configured preset was stored for the user
	Created bool
}

// SetDefaultSettingInput defines the request for changing the default setting
type SetDefaultSettingInput struct {
	SettingID string
}

// SetDefaultSettingOutput defines the response for changing the default setting
type SetDefaultSettingOutput struct {
	Setting  *coc.DiceSetting
	Previous *coc.DiceSetting
}

// DeleteSettingInput defines the request for deleting a dice setting
type DeleteSettingInput struct {
	SettingID string
}

// DeleteSettingOutput defines the response for deleting a dice setting
type DeleteSettingOutput struct {
	Promoted *coc.DiceSetting
}

// DuplicateSettingInput defines the request for copying a dice setting
type DuplicateSettingInput struct {
	SettingID string
	NewName   string
}

// DuplicateSettingOutput defines the response for copying a dice setting
type DuplicateSettingOutput struct {
	Setting *coc.DiceSetting
}

// FormulaStringInput defines the request for rendering one ability formula
type FormulaStringInput struct {
	SettingID string
	Ability   string
}

// FormulaStringOutput defines the response for rendering one ability formula
type FormulaStringOutput struct {
	Formula string
}

// ExportSettingInput defines the request for exporting a dice setting
type ExportSettingInput struct {
	SettingID string
}

// ExportSettingOutput defines the response for exporting a dice setting
type ExportSettingOutput struct {
	Data []byte
}

// ImportSettingInput defines the request for importing a dice setting
type ImportSettingInput struct {
	OwnerID string
	Data    []byte
	// NewName overrides the setting_name carried by the document
	NewName string
}

// ImportSettingOutput defines the response for importing a dice setting
type ImportSettingOutput struct {
	Setting *coc.DiceSetting
}

// RollAbilityInput defines the request for rolling one ability
type RollAbilityInput struct {
	SettingID string
	Ability   string
}

// RollAbilityOutput defines the response for rolling one ability
type RollAbilityOutput struct {
	Value int
	Roll  *dicesession.DiceRoll
}

// RollAllInput defines the request for rolling all eight abilities
type RollAllInput struct {
	OwnerID string
	// SettingID selects the formulae; the owner's default is used when empty
	SettingID string
}

// RollAllOutput defines the response for rolling all eight abilities
type RollAllOutput struct {
	Values  map[coc.Ability]int
	Setting *coc.DiceSetting
	Session *dicesession.DiceSession
}

// GetRollSessionInput defines the request for getting the last ability rolls
type GetRollSessionInput struct {
	OwnerID string
}

// GetRollSessionOutput defines the response for getting the last ability rolls
type GetRollSessionOutput struct {
	Session *dicesession.DiceSession
}

// ClearRollSessionInput defines the request for clearing the last ability rolls
type ClearRollSessionInput struct {
	OwnerID string
}

// ClearRollSessionOutput defines the response for clearing the last ability rolls
type ClearRollSessionOutput struct {
	RollsDeleted int
}

// AbilitiesFromRollSessionInput defines the request for converting stored rolls
type AbilitiesFromRollSessionInput struct {
	OwnerID string
}

// AbilitiesFromRollSessionOutput defines the response for converting stored rolls
type AbilitiesFromRollSessionOutput struct {
	Abilities coc.Abilities
}
