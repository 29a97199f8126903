package dice

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/coc-api/internal/repositories/dicesetting"
)

// RollAbility rolls a single ability's formula: count dice of sides faces plus bonus
func (o *orchestrator) RollAbility(ctx context.Context, input *RollAbilityInput) (*RollAbilityOutput, error) {
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

	roll, err := RollFormula(o.roller, tag, f)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "rolled ability",
		"setting_id", out.Setting.ID,
		"ability", tag,
		"notation", roll.Notation,
		"total", roll.Total)

	return &RollAbilityOutput{Value: roll.Total, Roll: roll}, nil
}

// RollAll rolls the eight abilities independently and keeps the result in the
// owner's roll session
func (o *orchestrator) RollAll(ctx context.Context, input *RollAllInput) (*RollAllOutput, error) {
	if input == nil || (input.OwnerID == "" && input.SettingID == "") {
		return nil, errors.InvalidArgument("owner ID or setting ID is required")
	}

	var setting *coc.DiceSetting
	if input.SettingID != "" {
		out, err := o.settingRepo.Get(ctx, dicesetting.GetInput{ID: input.SettingID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get dice setting")
		}
		setting = out.Setting
	} else {
		out, err := o.EnsureDefaultSetting(ctx, &EnsureDefaultSettingInput{OwnerID: input.OwnerID})
		if err != nil {
			return nil, err
		}
		setting = out.Setting
	}

	ownerID := input.OwnerID
	if ownerID == "" {
		ownerID = setting.OwnerID
	}

	values := make(map[coc.Ability]int, len(coc.AllAbilities()))
	rolls := make([]dicesession.DiceRoll, 0, len(coc.AllAbilities()))
	for _, tag := range coc.AllAbilities() {
		f, ok := setting.Formula(tag)
		if !ok {
			return nil, errors.InvalidConfigf("setting %s has no formula for %s", setting.ID, tag)
		}
		roll, err := RollFormula(o.roller, tag, f)
		if err != nil {
			return nil, err
		}
		values[tag] = roll.Total
		rolls = append(rolls, *roll)
	}

	session, err := o.sessionRepo.Create(ctx, dicesession.CreateInput{
		OwnerID:   ownerID,
		Context:   dicesession.ContextAbilityRolls,
		SettingID: setting.ID,
		Rolls:     rolls,
		TTL:       DefaultSessionTTL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store ability rolls")
	}

	slog.InfoContext(ctx, "rolled abilities",
		"owner_id", ownerID,
		"setting_id", setting.ID)

	return &RollAllOutput{
		Values:  values,
		Setting: setting,
		Session: session.Session,
	}, nil
}

// GetRollSession returns the owner's last ability rolls
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, dicesession.GetInput{
		OwnerID: input.OwnerID,
		Context: dicesession.ContextAbilityRolls,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get roll session")
	}

	return &GetRollSessionOutput{Session: out.Session}, nil
}

// ClearRollSession discards the owner's last ability rolls
func (o *orchestrator) ClearRollSession(
	ctx context.Context,
	input *ClearRollSessionInput,
) (*ClearRollSessionOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.sessionRepo.Delete(ctx, dicesession.DeleteInput{
		OwnerID: input.OwnerID,
		Context: dicesession.ContextAbilityRolls,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to clear roll session")
	}

	return &ClearRollSessionOutput{RollsDeleted: out.RollsDeleted}, nil
}

// AbilitiesFromRollSession converts the owner's last ability rolls into stored
// ability values
func (o *orchestrator) AbilitiesFromRollSession(
	ctx context.Context,
	input *AbilitiesFromRollSessionInput,
) (*AbilitiesFromRollSessionOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	session, err := o.GetRollSession(ctx, &GetRollSessionInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}

	values := make(map[coc.Ability]int, len(session.Session.Rolls))
	for _, roll := range session.Session.Rolls {
		values[roll.Ability] = roll.Total
	}

	abilities, err := AbilitiesFromRolls(values)
	if err != nil {
		return nil, err
	}

	return &AbilitiesFromRollSessionOutput{Abilities: abilities}, nil
}

// RollFormula rolls f with roller and reports the individual dice
func RollFormula(roller dice.Roller, tag coc.Ability, f coc.DiceFormula) (*dicesession.DiceRoll, error) {
	faces, err := roller.RollN(f.Count, f.Sides)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s for %s", f, tag)
	}

	sum := 0
	for _, v := range faces {
		sum += v
	}

	return &dicesession.DiceRoll{
		RollID:    "roll_" + tag.String(),
		Ability:   tag,
		Notation:  f.String(),
		Dice:      faces,
		DiceTotal: sum,
		Bonus:     f.Bonus,
		Total:     sum + f.Bonus,
	}, nil
}

// AbilitiesFromRolls converts raw 3-18 style rolls into stored values:
// raw x5 clamped into each ability's bounds. All eight abilities are required.
func AbilitiesFromRolls(values map[coc.Ability]int) (coc.Abilities, error) {
	var abilities coc.Abilities
	vb := errors.NewValidationBuilder()
	for _, tag := range coc.AllAbilities() {
		raw, ok := values[tag]
		if !ok {
			vb.RequiredField(tag.String())
			continue
		}
		abilities.Set(tag, coc.PercentileFromRaw(tag, raw))
	}
	if err := vb.Build(); err != nil {
		return coc.Abilities{}, err
	}
	return abilities, nil
}

func parseAbility(s string) (coc.Ability, error) {
	tag := coc.Ability(strings.ToLower(strings.TrimSpace(s)))
	if !tag.IsValid() {
		return "", errors.UnknownAbility(s)
	}
	return tag, nil
}
