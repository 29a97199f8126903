package character

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/coc-api/internal/engine"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	skillrepo "github.com/KirkDiggler/coc-api/internal/repositories/skill"
)

// UpsertSkill writes one skill and recomputes its totals. Writing Cthulhu
// Mythos on a 6th edition sheet also lowers the sheet's maximum sanity.
func (o *Orchestrator) UpsertSkill(ctx context.Context, input *UpsertSkillInput) (*UpsertSkillOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	sheet, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get sheet")
	}

	name := coc.NormalizeName(input.Skill.Name)
	if name == "" {
		return nil, errors.InvalidArgument("skill name is required")
	}

	var existing *coc.Skill
	got, err := o.skillRepo.Get(ctx, skillrepo.GetInput{SheetID: input.SheetID, Name: name})
	switch {
	case err == nil:
		existing = got.Skill
	case !errors.IsNotFound(err):
		return nil, errors.Wrapf(err, "failed to get skill %q", name)
	}

	skill, err := o.buildSkill(sheet.Sheet, existing, input.Skill, o.clock.Now())
	if err != nil {
		return nil, err
	}

	out, err := o.skillRepo.Upsert(ctx, skillrepo.UpsertInput{Skill: skill})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store skill %q", name)
	}

	result := &UpsertSkillOutput{Skill: out.Skill}
	if coc.IsCthulhuMythos(name) {
		updated, err := o.syncSanity(ctx, sheet.Sheet, out.Skill.Current)
		if err != nil {
			return nil, err
		}
		result.Sheet = updated
	}

	slog.DebugContext(ctx, "upserted skill",
		"sheet_id", input.SheetID,
		"skill", name,
		"current", out.Skill.Current)

	return result, nil
}

// DeleteSkill removes one skill from a sheet
func (o *Orchestrator) DeleteSkill(ctx context.Context, input *DeleteSkillInput) (*DeleteSkillOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}
	name := coc.NormalizeName(input.Name)
	if name == "" {
		return nil, errors.InvalidArgument("skill name is required")
	}

	if _, err := o.skillRepo.Delete(ctx, skillrepo.DeleteInput{SheetID: input.SheetID, Name: name}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete skill %q", name)
	}

	result := &DeleteSkillOutput{}
	if coc.IsCthulhuMythos(name) {
		sheet, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get sheet")
		}
		updated, err := o.syncSanity(ctx, sheet.Sheet, 0)
		if err != nil {
			return nil, err
		}
		result.Sheet = updated
	}

	return result, nil
}

// ListSkills returns a sheet's skills sorted by name
func (o *Orchestrator) ListSkills(ctx context.Context, input *ListSkillsInput) (*ListSkillsOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	out, err := o.skillRepo.List(ctx, skillrepo.ListInput{SheetID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list skills")
	}

	return &ListSkillsOutput{Skills: out.Skills}, nil
}

// BulkReplaceSkills swaps a sheet's whole skill set atomically. Pools missing
// from an entry keep the value of the skill it replaces.
func (o *Orchestrator) BulkReplaceSkills(
	ctx context.Context,
	input *BulkReplaceSkillsInput,
) (*BulkReplaceSkillsOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	sheet, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get sheet")
	}

	current, err := o.skillRepo.List(ctx, skillrepo.ListInput{SheetID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list skills")
	}
	existing := make(map[string]*coc.Skill, len(current.Skills))
	for _, k := range current.Skills {
		existing[k.Name] = k
	}

	skills, err := o.buildSkillSet(sheet.Sheet, existing, input.Skills, o.clock.Now())
	if err != nil {
		return nil, err
	}

	if _, err := o.skillRepo.ReplaceAll(ctx, skillrepo.ReplaceAllInput{
		SheetID: input.SheetID,
		Skills:  skills,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to replace skills")
	}

	updated, err := o.syncSanity(ctx, sheet.Sheet, mythosValue(skills))
	if err != nil {
		return nil, err
	}

	return &BulkReplaceSkillsOutput{Skills: skills, Sheet: updated}, nil
}

// buildSkillSet builds a validated skill set for a sheet, rejecting duplicate names
func (o *Orchestrator) buildSkillSet(
	s *coc.Sheet,
	existing map[string]*coc.Skill,
	inputs []SkillInput,
	now time.Time,
) ([]*coc.Skill, error) {
	skills := make([]*coc.Skill, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		name := coc.NormalizeName(in.Name)
		if _, dup := seen[name]; dup {
			return nil, errors.InvalidArgumentf("skill %q appears more than once", name)
		}
		seen[name] = struct{}{}

		skill, err := o.buildSkill(s, existing[name], in, now)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

// buildSkill merges an input onto the existing skill, or a fresh one, and
// recomputes its totals for the sheet's edition
func (o *Orchestrator) buildSkill(s *coc.Sheet, existing *coc.Skill, in SkillInput, now time.Time) (*coc.Skill, error) {
	name := coc.NormalizeName(in.Name)

	skill := existing.Clone()
	if skill == nil {
		skill = &coc.Skill{
			ID:       o.skillIDs.Generate(),
			Name:     name,
			Category: coc.SkillCategoryOther,
		}
	}
	skill.SheetID = s.ID

	if in.Category != nil {
		skill.Category = *in.Category
	}
	setInt(&skill.Base, in.Base)
	setInt(&skill.Occupation, in.Occupation)
	setInt(&skill.Interest, in.Interest)
	setInt(&skill.Bonus, in.Bonus)
	setInt(&skill.Other, in.Other)
	setString(&skill.Notes, in.Notes)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("skill_name", name, vb)
	coc.ValidateSkillPools(skill, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.Wrapf(err, "invalid skill %q", name)
	}

	skill.Recompute(s.Edition)
	skill.UpdatedAt = now
	return skill, nil
}

// syncSanity recomputes maximum sanity of a 6th edition sheet from its Cthulhu
// Mythos value and clamps current sanity. The skill write has already
// committed; a failure here leaves the sheet's sanity stale until the next write.
func (o *Orchestrator) syncSanity(ctx context.Context, s *coc.Sheet, mythos int) (*coc.Sheet, error) {
	if s.Edition != coc.EditionSixth {
		return nil, nil
	}

	out, err := o.engine.CalculateSanityMax(ctx, &engine.CalculateSanityMaxInput{
		Edition:       s.Edition,
		SanStarting:   s.SanStarting,
		POW:           s.Abilities.POW,
		CthulhuMythos: mythos,
	})
	if err != nil {
		return nil, err
	}
	if out.SanMax == s.SanMax && s.SanCurrent <= out.SanMax {
		return nil, nil
	}

	updated := s.Clone()
	updated.SanMax = out.SanMax
	updated.SanCurrent = min(updated.SanCurrent, out.SanMax)

	stored, err := o.sheetRepo.Update(ctx, sheetrepo.UpdateInput{Sheet: updated})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update sanity after Cthulhu Mythos change")
	}

	slog.InfoContext(ctx, "recomputed maximum sanity",
		"sheet_id", s.ID,
		"cthulhu_mythos", mythos,
		"san_max", out.SanMax)

	return stored.Sheet, nil
}

// mythosValue returns the Cthulhu Mythos current value in a skill set
func mythosValue(skills []*coc.Skill) int {
	for _, k := range skills {
		if coc.IsCthulhuMythos(k.Name) {
			return k.Current
		}
	}
	return 0
}
