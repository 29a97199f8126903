// Package dice implements the dice roller: per-user dice settings, ability
// rolls and the short-lived roll session a sheet can be created from
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/coc-api/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/coc-api/internal/repositories/dicesetting"
)

const (
	// MaxSettingNameLen bounds setting_name in runes
	MaxSettingNameLen = 100

	// DefaultSessionTTL is how long rolled abilities stay available
	DefaultSessionTTL = dicesession.DefaultTTL
)

// Service defines the interface for dice operations
type Service interface {
	// Settings
	CreateSetting(ctx context.Context, input *CreateSettingInput) (*CreateSettingOutput, error)
	GetSetting(ctx context.Context, input *GetSettingInput) (*GetSettingOutput, error)
	ListSettings(ctx context.Context, input *ListSettingsInput) (*ListSettingsOutput, error)
	GetDefaultSetting(ctx context.Context, input *GetDefaultSettingInput) (*GetDefaultSettingOutput, error)
	EnsureDefaultSetting(ctx context.Context, input *EnsureDefaultSettingInput) (*EnsureDefaultSettingOutput, error)
	SetDefaultSetting(ctx context.Context, input *SetDefaultSettingInput) (*SetDefaultSettingOutput, error)
	DeleteSetting(ctx context.Context, input *DeleteSettingInput) (*DeleteSettingOutput, error)
	DuplicateSetting(ctx context.Context, input *DuplicateSettingInput) (*DuplicateSettingOutput, error)
	FormulaString(ctx context.Context, input *FormulaStringInput) (*FormulaStringOutput, error)
	ExportSetting(ctx context.Context, input *ExportSettingInput) (*ExportSettingOutput, error)
	ImportSetting(ctx context.Context, input *ImportSettingInput) (*ImportSettingOutput, error)

	// Rolling
	RollAbility(ctx context.Context, input *RollAbilityInput) (*RollAbilityOutput, error)
	RollAll(ctx context.Context, input *RollAllInput) (*RollAllOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)
	AbilitiesFromRollSession(
		ctx context.Context,
		input *AbilitiesFromRollSessionInput,
	) (*AbilitiesFromRollSessionOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	SettingRepo dicesetting.Repository
	SessionRepo dicesession.Repository
	Roller      dice.Roller

	// IDGenerator defaults to UUIDs prefixed with dice
	IDGenerator idgen.Generator

	// Publisher is optional; events are dropped when nil
	Publisher rpgtoolkit.Publisher

	// DefaultPreset is stored for users without settings; defaults to standard_6th
	DefaultPreset coc.DicePreset
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()

	if c.SettingRepo == nil {
		vb.RequiredField("SettingRepo")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.DefaultPreset != "" && !c.DefaultPreset.IsValid() {
		vb.InvalidField("DefaultPreset", "unknown preset")
	}

	return vb.Build()
}

type orchestrator struct {
	settingRepo   dicesetting.Repository
	sessionRepo   dicesession.Repository
	roller        dice.Roller
	idGen         idgen.Generator
	publisher     rpgtoolkit.Publisher
	defaultPreset coc.DicePreset
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	publisher := cfg.Publisher
	if publisher == nil {
		publisher = rpgtoolkit.NoopPublisher()
	}
	ids := cfg.IDGenerator
	if ids == nil {
		ids = idgen.NewUUID(idgen.PrefixDiceSetting)
	}
	preset := cfg.DefaultPreset
	if preset == "" {
		preset = coc.DicePresetStandardSixth
	}

	return &orchestrator{
		settingRepo:   cfg.SettingRepo,
		sessionRepo:   cfg.SessionRepo,
		roller:        cfg.Roller,
		idGen:         ids,
		publisher:     publisher,
		defaultPreset: preset,
	}, nil
}

// CreateSetting validates and stores a new dice setting
func (o *orchestrator) CreateSetting(ctx context.Context, input *CreateSettingInput) (*CreateSettingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	name := coc.NormalizeName(input.Name)
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateRequired("setting_name", name, vb)
	errors.ValidateMaxRunes("setting_name", name, MaxSettingNameLen, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := coc.ValidateFormulas(input.Formulas); err != nil {
		return nil, err
	}

	setting := &coc.DiceSetting{
		ID:          o.idGen.Generate(),
		OwnerID:     input.OwnerID,
		Name:        name,
		Description: input.Description,
		Formulas:    copyFormulas(input.Formulas),
		IsDefault:   input.IsDefault,
	}

	out, err := o.settingRepo.Create(ctx, dicesetting.CreateInput{Setting: setting})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create dice setting %q", name)
	}

	if out.Setting.IsDefault {
		o.publishDefaultChanged(ctx, out.Setting, out.Demoted)
	}

	slog.InfoContext(ctx, "created dice setting",
		"setting_id", out.Setting.ID,
		"owner_id", out.Setting.OwnerID,
		"is_default", out.Setting.IsDefault)

	return &CreateSettingOutput{Setting: out.Setting, Demoted: out.Demoted}, nil
}

// GetSetting retrieves a dice setting
func (o *orchestrator) GetSetting(ctx context.Context, input *GetSettingInput) (*GetSettingOutput, error) {
	if input == nil || input.SettingID == "" {
		return nil, errors.InvalidArgument("setting ID is required")
	}

	out, err := o.settingRepo.Get(ctx, dicesetting.GetInput{ID: input.SettingID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dice setting")
	}

	return &GetSettingOutput{Setting: out.Setting}, nil
}

// ListSettings lists a user's settings oldest first
func (o *orchestrator) ListSettings(ctx context.Context, input *ListSettingsInput) (*ListSettingsOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.settingRepo.List(ctx, dicesetting.ListInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list dice settings")
	}

	return &ListSettingsOutput{Settings: out.Settings}, nil
}

// GetDefaultSetting returns the user's default setting
func (o *orchestrator) GetDefaultSetting(
	ctx context.Context,
	input *GetDefaultSettingInput,
) (*GetDefaultSettingOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.settingRepo.GetDefault(ctx, dicesetting.GetDefaultInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get default dice setting")
	}

	return &GetDefaultSettingOutput{Setting: out.Setting}, nil
}

// EnsureDefaultSetting returns the user's default, storing the configured preset
// when the user has no settings yet
func (o *orchestrator) EnsureDefaultSetting(
	ctx context.Context,
	input *EnsureDefaultSettingInput,
) (*EnsureDefaultSettingOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	existing, err := o.settingRepo.GetDefault(ctx, dicesetting.GetDefaultInput{OwnerID: input.OwnerID})
	if err == nil {
		return &EnsureDefaultSettingOutput{Setting: existing.Setting}, nil
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrapf(err, "failed to get default dice setting")
	}

	name, formulas, _ := coc.PresetFormulas(o.defaultPreset)
	created, err := o.CreateSetting(ctx, &CreateSettingInput{
		OwnerID:   input.OwnerID,
		Name:      name,
		Formulas:  formulas,
		IsDefault: true,
	})
	if err != nil {
		// Lost a race with another request creating the preset
		if errors.IsAlreadyExists(err) || errors.IsVersionConflict(err) {
			retry, getErr := o.settingRepo.GetDefault(ctx, dicesetting.GetDefaultInput{OwnerID: input.OwnerID})
			if getErr == nil {
				return &EnsureDefaultSettingOutput{Setting: retry.Setting}, nil
			}
		}
		return nil, err
	}

	return &EnsureDefaultSettingOutput{Setting: created.Setting, Created: true}, nil
}

// SetDefaultSetting makes the setting its owner's default
func (o *orchestrator) SetDefaultSetting(
	ctx context.Context,
	input *SetDefaultSettingInput,
) (*SetDefaultSettingOutput, error) {
	if input == nil || input.SettingID == "" {
		return nil, errors.InvalidArgument("setting ID is required")
	}

	out, err := o.settingRepo.SetDefault(ctx, dicesetting.SetDefaultInput{ID: input.SettingID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set default dice setting")
	}

	if out.Previous != nil {
		o.publishDefaultChanged(ctx, out.Setting, out.Previous)
	}

	return &SetDefaultSettingOutput{Setting: out.Setting, Previous: out.Previous}, nil
}

// DeleteSetting removes a setting, promoting the oldest remaining one when the
// default is removed
func (o *orchestrator) DeleteSetting(ctx context.Context, input *DeleteSettingInput) (*DeleteSettingOutput, error) {
	if input == nil || input.SettingID == "" {
		return nil, errors.InvalidArgument("setting ID is required")
	}

	out, err := o.settingRepo.Delete(ctx, dicesetting.DeleteInput{ID: input.SettingID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete dice setting")
	}

	if out.Promoted != nil {
		o.publishDefaultChanged(ctx, out.Promoted, nil)
	}

	return &DeleteSettingOutput{Promoted: out.Promoted}, nil
}

// DuplicateSetting deep-copies a setting under a new name; the copy is never default
func (o *orchestrator) DuplicateSetting(
	ctx context.Context,
	input *DuplicateSettingInput,
) (*DuplicateSettingOutput, error) {
	if input == nil || input.SettingID == "" {
		return nil, errors.InvalidArgument("setting ID is required")
	}

	src, err := o.settingRepo.Get(ctx, dicesetting.GetInput{ID: input.SettingID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dice setting")
	}

	out, err := o.CreateSetting(ctx, &CreateSettingInput{
		OwnerID:     src.Setting.OwnerID,
		Name:        input.NewName,
		Description: src.Setting.Description,
		Formulas:    src.Setting.Formulas,
	})
	if err != nil {
		return nil, err
	}

	return &DuplicateSettingOutput{Setting: out.Setting}, nil
}

// FormulaString renders one ability's formula, e.g. "2D6+6"
func (o *orchestrator) FormulaString(ctx context.Context, input *FormulaStringInput) (*FormulaStringOutput, error) {
	if input == nil || input.SettingID == "" {
		return nil, errors.InvalidArgument("setting ID is required")
	}
	tag, err := parseAbility(input.Ability)
	if err != nil {
		return nil, err
	}

	out, err := o.settingRepo.Get(ctx, dicesetting.GetInput{ID: input.SettingID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dice setting")
	}

	f, ok := out.Setting.Formula(tag)
	if !ok {
		return nil, errors.InvalidConfigf("setting %s has no formula for %s", out.Setting.ID, tag)
	}

	return &FormulaStringOutput{Formula: f.String()}, nil
}

func (o *orchestrator) publishDefaultChanged(ctx context.Context, current, previous *coc.DiceSetting) {
	target := rpgtoolkit.WrapDiceSetting(current)
	if previous != nil {
		target = rpgtoolkit.WrapDiceSetting(previous)
	}

	err := o.publisher.Publish(ctx, rpgtoolkit.EventDefaultDiceSettingChange,
		rpgtoolkit.WrapDiceSetting(current), target,
		map[string]any{rpgtoolkit.KeyOwnerID: current.OwnerID})
	if err != nil {
		slog.WarnContext(ctx, "failed to publish default dice setting change",
			"setting_id", current.ID,
			"error", err)
	}
}

func copyFormulas(in map[coc.Ability]coc.DiceFormula) map[coc.Ability]coc.DiceFormula {
	out := make(map[coc.Ability]coc.DiceFormula, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
