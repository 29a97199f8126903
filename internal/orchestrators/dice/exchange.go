package dice

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/repositories/dicesetting"
)

// ExportVersion tags exported dice setting documents
const ExportVersion = "1.0"

// settingDocument is the exchange format of a dice setting
type settingDocument struct {
	ExportVersion string                          `json:"export_version"`
	SettingName   string                          `json:"setting_name"`
	Description   string                          `json:"description"`
	Abilities     map[coc.Ability]coc.DiceFormula `json:"abilities"`
}

// ExportSetting renders a setting as a JSON document
func (o *orchestrator) ExportSetting(ctx context.Context, input *ExportSettingInput) (*ExportSettingOutput, error) {
	if input == nil || input.SettingID == "" {
		return nil, errors.InvalidArgument("setting ID is required")
	}

	out, err := o.settingRepo.Get(ctx, dicesetting.GetInput{ID: input.SettingID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dice setting")
	}

	data, err := MarshalSetting(out.Setting)
	if err != nil {
		return nil, err
	}

	return &ExportSettingOutput{Data: data}, nil
}

// ImportSetting stores the setting described by a JSON document for a user
func (o *orchestrator) ImportSetting(ctx context.Context, input *ImportSettingInput) (*ImportSettingOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	doc, err := UnmarshalSetting(input.Data)
	if err != nil {
		return nil, err
	}

	name := doc.Name
	if input.NewName != "" {
		name = input.NewName
	}

	out, err := o.CreateSetting(ctx, &CreateSettingInput{
		OwnerID:     input.OwnerID,
		Name:        name,
		Description: doc.Description,
		Formulas:    doc.Formulas,
	})
	if err != nil {
		return nil, err
	}

	return &ImportSettingOutput{Setting: out.Setting}, nil
}

// MarshalSetting encodes the numeric fields, name and description of a setting
func MarshalSetting(s *coc.DiceSetting) ([]byte, error) {
	if s == nil {
		return nil, errors.InvalidArgument("setting is required")
	}

	data, err := json.MarshalIndent(settingDocument{
		ExportVersion: ExportVersion,
		SettingName:   s.Name,
		Description:   s.Description,
		Abilities:     s.Formulas,
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal dice setting")
	}
	return data, nil
}

// UnmarshalSetting decodes an exported document. The returned setting carries
// no identity; unknown ability keys are ignored.
func UnmarshalSetting(data []byte) (*coc.DiceSetting, error) {
	var doc settingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.InvalidImportf("malformed dice setting document: %v", err)
	}
	if doc.ExportVersion != "" && doc.ExportVersion != ExportVersion {
		return nil, errors.InvalidImportf("unsupported export_version %q", doc.ExportVersion)
	}
	if len(doc.Abilities) == 0 {
		return nil, errors.InvalidImport("abilities are required")
	}

	formulas := make(map[coc.Ability]coc.DiceFormula, len(coc.AllAbilities()))
	for _, tag := range coc.AllAbilities() {
		f, ok := doc.Abilities[tag]
		if !ok {
			return nil, errors.InvalidImportf("abilities.%s is required", tag)
		}
		formulas[tag] = f
	}

	return &coc.DiceSetting{
		Name:        doc.SettingName,
		Description: doc.Description,
		Formulas:    formulas,
	}, nil
}
