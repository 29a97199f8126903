// Package export implements snapshot and VTT export/import of sheets and the
// VTT sync scaffolding
package export

//go:generate mockgen -destination=mock/mock_service.go -package=exportmock github.com/KirkDiggler/coc-api/internal/orchestrators/export Service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/character"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	skillrepo "github.com/KirkDiggler/coc-api/internal/repositories/skill"
	"github.com/KirkDiggler/coc-api/internal/services/conversion"
)

// DefaultBulkConcurrency bounds how many sheets a bulk export loads at once
const DefaultBulkConcurrency = 4

// Service defines the export operations
type Service interface {
	ExportSnapshot(ctx context.Context, input *ExportSnapshotInput) (*ExportSnapshotOutput, error)
	ImportSnapshot(ctx context.Context, input *ImportSnapshotInput) (*ImportSnapshotOutput, error)
	ExportVTT(ctx context.Context, input *ExportVTTInput) (*ExportVTTOutput, error)
	ExportVTTBulk(ctx context.Context, input *ExportVTTBulkInput) (*ExportVTTBulkOutput, error)
	SyncToVTT(ctx context.Context, input *SyncToVTTInput) (*SyncToVTTOutput, error)
	ResolveSyncConflict(ctx context.Context, input *ResolveSyncConflictInput) (*ResolveSyncConflictOutput, error)
}

// Config holds the dependencies for the export orchestrator
type Config struct {
	SheetRepo sheetrepo.Repository
	SkillRepo skillrepo.Repository
	// Characters creates imported sheets so they pass the same checks as new ones
	Characters character.Service

	// Optional dependencies
	Converter conversion.Converter
	Clock     clock.Clock

	// SyncEnabled is the global VTT sync switch
	SyncEnabled     bool
	BulkConcurrency int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.SheetRepo == nil {
		vb.RequiredField("SheetRepo")
	}
	if c.SkillRepo == nil {
		vb.RequiredField("SkillRepo")
	}
	if c.Characters == nil {
		vb.RequiredField("Characters")
	}
	if c.BulkConcurrency < 0 {
		vb.InvalidField("BulkConcurrency", "must not be negative")
	}
	return vb.Build()
}

type orchestrator struct {
	sheetRepo  sheetrepo.Repository
	skillRepo  skillrepo.Repository
	characters character.Service
	converter  conversion.Converter
	clock      clock.Clock

	syncEnabled     bool
	bulkConcurrency int
}

// New creates a new export orchestrator
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		sheetRepo:       cfg.SheetRepo,
		skillRepo:       cfg.SkillRepo,
		characters:      cfg.Characters,
		converter:       cfg.Converter,
		clock:           cfg.Clock,
		syncEnabled:     cfg.SyncEnabled,
		bulkConcurrency: cfg.BulkConcurrency,
	}
	if o.converter == nil {
		converter, err := conversion.NewConverter(nil)
		if err != nil {
			return nil, err
		}
		o.converter = converter
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.bulkConcurrency == 0 {
		o.bulkConcurrency = DefaultBulkConcurrency
	}

	return o, nil
}

// ExportSnapshot builds the snapshot document of a sheet
func (o *orchestrator) ExportSnapshot(ctx context.Context, input *ExportSnapshotInput) (*ExportSnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sheet, skills, err := o.load(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	return &ExportSnapshotOutput{Snapshot: o.converter.ToSnapshot(sheet, skills)}, nil
}

// ImportSnapshot creates a new version 1 sheet from a snapshot document.
// Derived stats are recomputed from the abilities rather than trusted.
func (o *orchestrator) ImportSnapshot(ctx context.Context, input *ImportSnapshotInput) (*ImportSnapshotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner_id is required")
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidImport("document is empty")
	}

	doc, err := o.converter.ParseSnapshot(input.Data)
	if err != nil {
		return nil, err
	}

	req := createInputFromSnapshot(input.OwnerID, doc)
	if input.NewName != "" {
		req.Name = input.NewName
	}

	out, err := o.characters.CreateSheet(ctx, req)
	if err != nil {
		if errors.IsInvalidArgument(err) {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidImport, "snapshot rejected")
		}
		return nil, err
	}

	slog.InfoContext(ctx, "imported snapshot",
		"sheet_id", out.Sheet.ID,
		"owner_id", out.Sheet.OwnerID,
		"export_version", doc.ExportVersion,
		"skills", len(out.Skills))

	return &ImportSnapshotOutput{Sheet: out.Sheet, Skills: out.Skills}, nil
}

// ExportVTT builds the VTT character object of a sheet
func (o *orchestrator) ExportVTT(ctx context.Context, input *ExportVTTInput) (*ExportVTTOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sheet, skills, err := o.load(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	out, err := o.converter.ToVTT(sheet, skills)
	if err != nil {
		return nil, err
	}
	return &ExportVTTOutput{Character: out}, nil
}

// ExportVTTBulk exports every requested sheet. A sheet that fails to load or
// convert yields an error result in its slot instead of failing the batch.
func (o *orchestrator) ExportVTTBulk(ctx context.Context, input *ExportVTTBulkInput) (*ExportVTTBulkOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	results := make([]*BulkResult, len(input.SheetIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.bulkConcurrency)

	for i, id := range input.SheetIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = o.exportOne(gctx, id)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "bulk export interrupted")
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	slog.InfoContext(ctx, "bulk vtt export", "requested", len(results), "failed", failed)

	return &ExportVTTBulkOutput{Results: results}, nil
}

func (o *orchestrator) exportOne(ctx context.Context, sheetID string) *BulkResult {
	res := &BulkResult{SheetID: sheetID}

	sheet, skills, err := o.load(ctx, sheetID)
	if err != nil {
		res.Err = err
		slog.WarnContext(ctx, "bulk export skipped sheet", "sheet_id", sheetID, "error", err)
		return res
	}
	res.SheetName = sheet.Name

	res.Character, res.Err = o.converter.ToVTT(sheet, skills)
	if res.Err != nil {
		slog.WarnContext(ctx, "bulk export skipped sheet", "sheet_id", sheetID, "error", res.Err)
	}
	return res
}

// SyncToVTT packages a sheet's VTT export for the sync transport. A sheet that
// has not opted in reports SyncStatusDisabled.
// Returns errors.SyncDisabled when sync is switched off for the whole service.
func (o *orchestrator) SyncToVTT(ctx context.Context, input *SyncToVTTInput) (*SyncToVTTOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !o.syncEnabled {
		return nil, errors.SyncDisabled("vtt sync is turned off")
	}

	sheet, skills, err := o.load(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}
	if !sheet.VTTSyncEnabled {
		return &SyncToVTTOutput{Status: SyncStatusDisabled}, nil
	}

	payload, err := o.converter.ToVTT(sheet, skills)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "packaged vtt sync", "sheet_id", sheet.ID, "vtt_character_id", sheet.VTTCharacterID)

	return &SyncToVTTOutput{
		Status:      SyncStatusReady,
		CharacterID: sheet.VTTCharacterID,
		Character:   payload,
		SyncedAt:    o.clock.Now(),
	}, nil
}

// ResolveSyncConflict returns the policy record for the conflicting fields
func (o *orchestrator) ResolveSyncConflict(_ context.Context, input *ResolveSyncConflictInput) (*ResolveSyncConflictOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return &ResolveSyncConflictOutput{Resolution: conversion.ResolveSyncConflict(input.ConflictFields)}, nil
}

func (o *orchestrator) load(ctx context.Context, sheetID string) (*coc.Sheet, []*coc.Skill, error) {
	if sheetID == "" {
		return nil, nil, errors.InvalidArgument("sheet_id is required")
	}

	got, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: sheetID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get sheet %s", sheetID)
	}

	skills, err := o.skillRepo.List(ctx, skillrepo.ListInput{SheetID: sheetID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to list skills of sheet %s", sheetID)
	}

	return got.Sheet, skills.Skills, nil
}

func createInputFromSnapshot(ownerID string, doc *conversion.Snapshot) *character.CreateSheetInput {
	info := doc.CharacterInfo
	req := &character.CreateSheetInput{
		OwnerID: ownerID,
		Name:    info.Name,
		Edition: info.Edition,
		Biography: character.Biography{
			PlayerName: info.PlayerName,
			Age:        info.Age,
			Gender:     info.Gender,
			Occupation: info.Occupation,
			Birthplace: info.Birthplace,
			Residence:  info.Residence,
		},
		Abilities: doc.Abilities(),
		Skills:    make([]character.SkillInput, 0, len(doc.Skills)),
	}

	if x := doc.SixthEdition; x != nil && info.Edition == coc.EditionSixth {
		req.MentalDisorder = x.MentalDisorder
	}
	if x := doc.SeventhEdition; x != nil && info.Edition == coc.EditionSeventh {
		req.LuckPoints = x.LuckPoints
		req.Background = &character.Background{
			Description:          x.Description,
			Beliefs:              x.Beliefs,
			SignificantPeople:    x.SignificantPeople,
			MeaningfulLocations:  x.MeaningfulLocations,
			TreasuredPossessions: x.TreasuredPossessions,
			Traits:               x.Traits,
			InjuriesScars:        x.InjuriesScars,
			PhobiasManias:        x.PhobiasManias,
		}
	}

	for _, k := range doc.Skills {
		category := k.Category
		base, occupation, interest, bonus, other := k.Base, k.Occupation, k.Interest, k.Bonus, k.OtherPool()
		notes := k.Notes
		req.Skills = append(req.Skills, character.SkillInput{
			Name:       k.Name,
			Category:   &category,
			Base:       &base,
			Occupation: &occupation,
			Interest:   &interest,
			Bonus:      &bonus,
			Other:      &other,
			Notes:      &notes,
		})
	}

	return req
}
