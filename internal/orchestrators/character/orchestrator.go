// Package character implements the character orchestrator: sheet CRUD, the
// skill ledger and equipment
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/coc-api/internal/orchestrators/character Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/coc-api/internal/engine"
	"github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
	equipmentrepo "github.com/KirkDiggler/coc-api/internal/repositories/equipment"
	imagerepo "github.com/KirkDiggler/coc-api/internal/repositories/image"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	skillrepo "github.com/KirkDiggler/coc-api/internal/repositories/skill"
)

// MaxSheetNameLen bounds sheet names in runes
const MaxSheetNameLen = 100

// Service defines the character operations
type Service interface {
	// Sheets
	CreateSheet(ctx context.Context, input *CreateSheetInput) (*CreateSheetOutput, error)
	GetSheet(ctx context.Context, input *GetSheetInput) (*GetSheetOutput, error)
	ListSheets(ctx context.Context, input *ListSheetsInput) (*ListSheetsOutput, error)
	UpdateSheet(ctx context.Context, input *UpdateSheetInput) (*UpdateSheetOutput, error)
	DeleteSheet(ctx context.Context, input *DeleteSheetInput) (*DeleteSheetOutput, error)

	// Skill ledger
	UpsertSkill(ctx context.Context, input *UpsertSkillInput) (*UpsertSkillOutput, error)
	DeleteSkill(ctx context.Context, input *DeleteSkillInput) (*DeleteSkillOutput, error)
	ListSkills(ctx context.Context, input *ListSkillsInput) (*ListSkillsOutput, error)
	BulkReplaceSkills(ctx context.Context, input *BulkReplaceSkillsInput) (*BulkReplaceSkillsOutput, error)

	// Equipment
	AddEquipment(ctx context.Context, input *AddEquipmentInput) (*AddEquipmentOutput, error)
	UpdateEquipment(ctx context.Context, input *UpdateEquipmentInput) (*UpdateEquipmentOutput, error)
	RemoveEquipment(ctx context.Context, input *RemoveEquipmentInput) (*RemoveEquipmentOutput, error)
	ListEquipment(ctx context.Context, input *ListEquipmentInput) (*ListEquipmentOutput, error)
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	SheetRepo     sheetrepo.Repository
	SkillRepo     skillrepo.Repository
	EquipmentRepo equipmentrepo.Repository
	ImageRepo     imagerepo.Repository
	Engine        engine.Engine

	// Optional dependencies
	Clock                clock.Clock
	SheetIDGenerator     idgen.Generator
	SkillIDGenerator     idgen.Generator
	EquipmentIDGenerator idgen.Generator
	Publisher            rpgtoolkit.Publisher

	// DefaultEdition is used when a create request names no edition
	DefaultEdition coc.Edition
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
	if c.EquipmentRepo == nil {
		vb.RequiredField("EquipmentRepo")
	}
	if c.ImageRepo == nil {
		vb.RequiredField("ImageRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.DefaultEdition != "" && !c.DefaultEdition.IsValid() {
		vb.InvalidField("DefaultEdition", "unknown edition")
	}

	return vb.Build()
}

// Orchestrator implements Service
type Orchestrator struct {
	sheetRepo     sheetrepo.Repository
	skillRepo     skillrepo.Repository
	equipmentRepo equipmentrepo.Repository
	imageRepo     imagerepo.Repository
	engine        engine.Engine

	clock          clock.Clock
	sheetIDs       idgen.Generator
	skillIDs       idgen.Generator
	equipmentIDs   idgen.Generator
	publisher      rpgtoolkit.Publisher
	defaultEdition coc.Edition
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &Orchestrator{
		sheetRepo:      cfg.SheetRepo,
		skillRepo:      cfg.SkillRepo,
		equipmentRepo:  cfg.EquipmentRepo,
		imageRepo:      cfg.ImageRepo,
		engine:         cfg.Engine,
		clock:          cfg.Clock,
		sheetIDs:       cfg.SheetIDGenerator,
		skillIDs:       cfg.SkillIDGenerator,
		equipmentIDs:   cfg.EquipmentIDGenerator,
		publisher:      cfg.Publisher,
		defaultEdition: cfg.DefaultEdition,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.sheetIDs == nil {
		o.sheetIDs = idgen.NewUUID(idgen.PrefixSheet)
	}
	if o.skillIDs == nil {
		o.skillIDs = idgen.NewUUID(idgen.PrefixSkill)
	}
	if o.equipmentIDs == nil {
		o.equipmentIDs = idgen.NewUUID(idgen.PrefixEquipment)
	}
	if o.publisher == nil {
		o.publisher = rpgtoolkit.NoopPublisher()
	}
	if o.defaultEdition == "" {
		o.defaultEdition = coc.EditionSixth
	}

	return o, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// CreateSheet validates a new sheet, computes its derived stats and stores it
// as version 1 of its tree together with its skills
func (o *Orchestrator) CreateSheet(ctx context.Context, input *CreateSheetInput) (*CreateSheetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	edition := input.Edition
	if edition == "" {
		edition = o.defaultEdition
	}
	name := coc.NormalizeName(input.Name)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateRequired("name", name, vb)
	errors.ValidateMaxRunes("name", name, MaxSheetNameLen, vb)
	errors.ValidateEnum("edition", string(edition), coc.EditionStrings(), vb)
	if edition == coc.EditionSixth && input.Background != nil {
		vb.InvalidField("background", "only 7th edition sheets carry a background")
	}
	if edition == coc.EditionSeventh && input.MentalDisorder != "" {
		vb.InvalidField("mental_disorder", "only 6th edition sheets carry a mental disorder")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	s := &coc.Sheet{
		ID:             o.sheetIDs.Generate(),
		OwnerID:        input.OwnerID,
		Name:           name,
		Edition:        edition,
		PlayerName:     input.Biography.PlayerName,
		Age:            input.Biography.Age,
		Gender:         input.Biography.Gender,
		Occupation:     input.Biography.Occupation,
		Birthplace:     input.Biography.Birthplace,
		Residence:      input.Biography.Residence,
		Abilities:      input.Abilities,
		IsActive:       true,
		Notes:          input.Notes,
		IsPublic:       input.IsPublic,
		VTTSyncEnabled: input.VTTSyncEnabled,
		VTTCharacterID: input.VTTCharacterID,
	}

	skills, err := o.buildSkillSet(s, nil, input.Skills, now)
	if err != nil {
		return nil, err
	}

	stats, err := o.engine.CalculateSheetStats(ctx, &engine.CalculateSheetStatsInput{
		Edition:       edition,
		Abilities:     input.Abilities,
		Age:           input.Biography.Age,
		LuckPoints:    input.LuckPoints,
		CthulhuMythos: mythosValue(skills),
	})
	if err != nil {
		return nil, err
	}
	stats.Stats.ApplyTo(s)

	switch edition {
	case coc.EditionSixth:
		s.Sixth.MentalDisorder = input.MentalDisorder
	case coc.EditionSeventh:
		applyBackground(s.Seventh, input.Background)
	}

	writer, err := o.skillRepo.ReplaceWriter(s.ID, skills)
	if err != nil {
		return nil, err
	}

	out, err := o.sheetRepo.Create(ctx, sheetrepo.CreateInput{
		Sheet:   s,
		Writers: []redisclient.TxWriter{writer},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create sheet %q", name)
	}

	if err := o.publisher.Publish(ctx, rpgtoolkit.EventSheetCreated,
		rpgtoolkit.WrapSheet(out.Sheet), rpgtoolkit.WrapSheet(out.Sheet),
		map[string]any{
			rpgtoolkit.KeyOwnerID: out.Sheet.OwnerID,
			rpgtoolkit.KeyVersion: out.Sheet.Version,
		}); err != nil {
		slog.WarnContext(ctx, "failed to publish sheet created", "sheet_id", out.Sheet.ID, "error", err)
	}

	slog.InfoContext(ctx, "created sheet",
		"sheet_id", out.Sheet.ID,
		"owner_id", out.Sheet.OwnerID,
		"edition", out.Sheet.Edition,
		"skills", len(skills))

	return &CreateSheetOutput{Sheet: out.Sheet, Skills: skills}, nil
}

// GetSheet retrieves a sheet
func (o *Orchestrator) GetSheet(ctx context.Context, input *GetSheetInput) (*GetSheetOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	out, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get sheet")
	}

	return &GetSheetOutput{Sheet: out.Sheet}, nil
}

// ListSheets lists a user's sheets sorted by name then version
func (o *Orchestrator) ListSheets(ctx context.Context, input *ListSheetsInput) (*ListSheetsOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.sheetRepo.ListByOwner(ctx, sheetrepo.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list sheets")
	}

	return &ListSheetsOutput{Sheets: out.Sheets}, nil
}

// UpdateSheet changes the mutable fields of a sheet. Name, edition and
// abilities are fixed on a node; current HP, MP and SAN may not exceed their maxima.
func (o *Orchestrator) UpdateSheet(ctx context.Context, input *UpdateSheetInput) (*UpdateSheetOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	current, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get sheet")
	}
	s := current.Sheet.Clone()

	setString(&s.PlayerName, input.PlayerName)
	setInt(&s.Age, input.Age)
	setString(&s.Gender, input.Gender)
	setString(&s.Occupation, input.Occupation)
	setString(&s.Birthplace, input.Birthplace)
	setString(&s.Residence, input.Residence)
	setInt(&s.HPCurrent, input.HPCurrent)
	setInt(&s.MPCurrent, input.MPCurrent)
	setInt(&s.SanCurrent, input.SanCurrent)
	setString(&s.VersionNote, input.VersionNote)
	setInt(&s.SessionCount, input.SessionCount)
	setBool(&s.IsActive, input.IsActive)
	setString(&s.Notes, input.Notes)
	setBool(&s.IsPublic, input.IsPublic)
	setBool(&s.VTTSyncEnabled, input.VTTSyncEnabled)
	setString(&s.VTTCharacterID, input.VTTCharacterID)

	vb := errors.NewValidationBuilder()
	if input.MentalDisorder != nil {
		if s.Sixth == nil {
			vb.InvalidField("mental_disorder", "only 6th edition sheets carry a mental disorder")
		} else {
			s.Sixth.MentalDisorder = *input.MentalDisorder
		}
	}
	if input.Background != nil {
		if s.Seventh == nil {
			vb.InvalidField("background", "only 7th edition sheets carry a background")
		} else {
			applyBackground(s.Seventh, input.Background)
		}
	}
	coc.ValidateAge(s.Age, vb)
	if input.Age != nil && s.Seventh != nil {
		// Move rate is the only derived stat that depends on age
		s.Seventh.MoveRate = engine.MoveRate(s.Abilities.STR, s.Abilities.DEX, s.Abilities.SIZ, s.Age)
	}
	coc.ValidateDerived(s, vb)
	errors.ValidateMin("session_count", s.SessionCount, 0, vb)
	errors.ValidateMaxRunes("version_note", s.VersionNote, coc.MaxVersionNoteLen, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.sheetRepo.Update(ctx, sheetrepo.UpdateInput{Sheet: s})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update sheet")
	}

	return &UpdateSheetOutput{Sheet: out.Sheet}, nil
}

// DeleteSheet removes a sheet, its descendant versions and everything they own
func (o *Orchestrator) DeleteSheet(ctx context.Context, input *DeleteSheetInput) (*DeleteSheetOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	out, err := o.sheetRepo.Delete(ctx, sheetrepo.DeleteInput{
		ID:      input.SheetID,
		Cascade: o.cascade,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete sheet")
	}

	slog.InfoContext(ctx, "deleted sheet",
		"sheet_id", input.SheetID,
		"deleted", len(out.DeletedIDs))

	return &DeleteSheetOutput{DeletedIDs: out.DeletedIDs}, nil
}

// cascade queues removal of the records a sheet owns
func (o *Orchestrator) cascade(ctx context.Context, sheetID string) ([]redisclient.TxWriter, error) {
	images, err := o.imageRepo.DeleteAllWriter(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return []redisclient.TxWriter{
		o.skillRepo.DeleteAllWriter(sheetID),
		o.equipmentRepo.DeleteAllWriter(sheetID),
		images,
	}, nil
}

func applyBackground(ext *coc.SeventhEdition, b *Background) {
	if ext == nil || b == nil {
		return
	}
	ext.Description = b.Description
	ext.Beliefs = b.Beliefs
	ext.SignificantPeople = b.SignificantPeople
	ext.MeaningfulLocations = b.MeaningfulLocations
	ext.TreasuredPossessions = b.TreasuredPossessions
	ext.Traits = b.Traits
	ext.InjuriesScars = b.InjuriesScars
	ext.PhobiasManias = b.PhobiasManias
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
