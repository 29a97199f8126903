// Package version implements the version graph: new versions, rollback,
// diff, history and statistics over a sheet's (owner, name) tree
package version

//go:generate mockgen -destination=mock/mock_service.go -package=versionmock github.com/KirkDiggler/coc-api/internal/orchestrators/version Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/coc-api/internal/engine"
	"github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
	imagerepo "github.com/KirkDiggler/coc-api/internal/repositories/image"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	skillrepo "github.com/KirkDiggler/coc-api/internal/repositories/skill"
)

// RollbackNoteFormat is the version note written on a rollback node
const RollbackNoteFormat = "rolled back from v%d"

// Service defines the version graph operations
type Service interface {
	CreateVersion(ctx context.Context, input *CreateVersionInput) (*CreateVersionOutput, error)
	Rollback(ctx context.Context, input *RollbackInput) (*RollbackOutput, error)
	Diff(ctx context.Context, input *DiffInput) (*DiffOutput, error)
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)
	Statistics(ctx context.Context, input *StatisticsInput) (*StatisticsOutput, error)
	LatestVersion(ctx context.Context, input *LatestVersionInput) (*LatestVersionOutput, error)
	Children(ctx context.Context, input *ChildrenInput) (*ChildrenOutput, error)
}

// Config holds the dependencies for the version orchestrator
type Config struct {
	SheetRepo sheetrepo.Repository
	SkillRepo skillrepo.Repository
	ImageRepo imagerepo.Repository
	Engine    engine.Engine

	// Optional dependencies
	SheetIDGenerator idgen.Generator
	SkillIDGenerator idgen.Generator
	ImageIDGenerator idgen.Generator
	Publisher        rpgtoolkit.Publisher
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
	if c.ImageRepo == nil {
		vb.RequiredField("ImageRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	return vb.Build()
}

type orchestrator struct {
	sheetRepo sheetrepo.Repository
	skillRepo skillrepo.Repository
	imageRepo imagerepo.Repository
	engine    engine.Engine

	sheetIDs  idgen.Generator
	skillIDs  idgen.Generator
	imageIDs  idgen.Generator
	publisher rpgtoolkit.Publisher
}

// New creates a new version orchestrator
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		sheetRepo: cfg.SheetRepo,
		skillRepo: cfg.SkillRepo,
		imageRepo: cfg.ImageRepo,
		engine:    cfg.Engine,
		sheetIDs:  cfg.SheetIDGenerator,
		skillIDs:  cfg.SkillIDGenerator,
		imageIDs:  cfg.ImageIDGenerator,
		publisher: cfg.Publisher,
	}
	if o.sheetIDs == nil {
		o.sheetIDs = idgen.NewUUID(idgen.PrefixSheet)
	}
	if o.skillIDs == nil {
		o.skillIDs = idgen.NewUUID(idgen.PrefixSkill)
	}
	if o.imageIDs == nil {
		o.imageIDs = idgen.NewUUID(idgen.PrefixImage)
	}
	if o.publisher == nil {
		o.publisher = rpgtoolkit.NoopPublisher()
	}

	return o, nil
}

// CreateVersion stores a copy of a node as a new child numbered after the
// tree's latest version. Images are always carried over; skills only on request.
func (o *orchestrator) CreateVersion(ctx context.Context, input *CreateVersionInput) (*CreateVersionOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMaxRunes("version_note", input.VersionNote, coc.MaxVersionNoteLen, vb)
	if input.SessionCount != nil {
		errors.ValidateMin("session_count", *input.SessionCount, 0, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	parent, err := o.getSheet(ctx, input.SheetID)
	if err != nil {
		return nil, err
	}

	next := parent.Clone()
	next.ID = o.sheetIDs.Generate()
	next.VersionNote = input.VersionNote
	next.SessionCount = parent.SessionCount + 1
	if input.SessionCount != nil {
		next.SessionCount = *input.SessionCount
	}

	parentSkills, err := o.listSkills(ctx, parent.ID)
	if err != nil {
		return nil, err
	}

	if len(input.AbilityOverrides) > 0 {
		if err := o.applyOverrides(ctx, next, input.AbilityOverrides, parentSkills); err != nil {
			return nil, err
		}
	}

	var skills []*coc.Skill
	if input.CopySkills {
		skills = o.copySkills(next.ID, parentSkills)
	}

	writers, err := o.copyWriters(ctx, parent.ID, next.ID, skills, input.CopySkills)
	if err != nil {
		return nil, err
	}

	out, err := o.sheetRepo.CreateVersion(ctx, sheetrepo.CreateVersionInput{
		ParentID: parent.ID,
		Sheet:    next,
		Writers:  writers,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create version of %q", parent.Name)
	}

	o.publish(ctx, rpgtoolkit.EventVersionCreated, out.Sheet, out.Parent, map[string]any{
		rpgtoolkit.KeyOwnerID:       out.Sheet.OwnerID,
		rpgtoolkit.KeyVersion:       out.Sheet.Version,
		rpgtoolkit.KeyParentVersion: out.Parent.Version,
	})

	slog.InfoContext(ctx, "created sheet version",
		"sheet_id", out.Sheet.ID,
		"parent_id", out.Parent.ID,
		"version", out.Sheet.Version,
		"copy_skills", input.CopySkills)

	return &CreateVersionOutput{Sheet: out.Sheet, Parent: out.Parent, Skills: skills}, nil
}

// Rollback stores a new child of the current node whose content, skills and
// images are copied from the target node of the same tree
func (o *orchestrator) Rollback(ctx context.Context, input *RollbackInput) (*RollbackOutput, error) {
	if input == nil || input.CurrentID == "" || input.TargetID == "" {
		return nil, errors.InvalidArgument("current and target sheet IDs are required")
	}

	current, err := o.getSheet(ctx, input.CurrentID)
	if err != nil {
		return nil, err
	}
	target, err := o.getSheet(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != target.OwnerID || current.Name != target.Name {
		return nil, errors.InvalidArgumentf("sheet %s is not in the same version tree as %s", target.ID, current.ID)
	}

	next := target.Clone()
	next.ID = o.sheetIDs.Generate()
	next.VersionNote = fmt.Sprintf(RollbackNoteFormat, target.Version)

	targetSkills, err := o.listSkills(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	skills := o.copySkills(next.ID, targetSkills)

	writers, err := o.copyWriters(ctx, target.ID, next.ID, skills, true)
	if err != nil {
		return nil, err
	}

	out, err := o.sheetRepo.CreateVersion(ctx, sheetrepo.CreateVersionInput{
		ParentID: current.ID,
		Sheet:    next,
		Writers:  writers,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll back %q to v%d", current.Name, target.Version)
	}

	o.publish(ctx, rpgtoolkit.EventRolledBack, out.Sheet, target, map[string]any{
		rpgtoolkit.KeyOwnerID:       out.Sheet.OwnerID,
		rpgtoolkit.KeyVersion:       out.Sheet.Version,
		rpgtoolkit.KeyParentVersion: out.Parent.Version,
		rpgtoolkit.KeyTargetVersion: target.Version,
	})

	slog.InfoContext(ctx, "rolled back sheet",
		"sheet_id", out.Sheet.ID,
		"parent_id", current.ID,
		"target_version", target.Version,
		"version", out.Sheet.Version)

	return &RollbackOutput{Sheet: out.Sheet, Skills: skills}, nil
}

// Diff compares the abilities and skills of two nodes
func (o *orchestrator) Diff(ctx context.Context, input *DiffInput) (*DiffOutput, error) {
	if input == nil || input.FromID == "" || input.ToID == "" {
		return nil, errors.InvalidArgument("both sheet IDs are required")
	}

	from, err := o.getSheet(ctx, input.FromID)
	if err != nil {
		return nil, err
	}
	to, err := o.getSheet(ctx, input.ToID)
	if err != nil {
		return nil, err
	}
	fromSkills, err := o.listSkills(ctx, from.ID)
	if err != nil {
		return nil, err
	}
	toSkills, err := o.listSkills(ctx, to.ID)
	if err != nil {
		return nil, err
	}

	return &DiffOutput{Diff: Compare(from, to, fromSkills, toSkills)}, nil
}

// History returns the whole tree of a node, root first in pre-order
func (o *orchestrator) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	var id string
	if input != nil {
		id = input.SheetID
	}
	nodes, err := o.tree(ctx, id)
	if err != nil {
		return nil, err
	}

	ordered, err := PreOrder(nodes)
	if err != nil {
		return nil, err
	}

	return &HistoryOutput{Sheets: ordered}, nil
}

// Statistics summarises a node's tree. The cumulative session count is the
// highest count recorded on any node, since each version carries the running total.
func (o *orchestrator) Statistics(ctx context.Context, input *StatisticsInput) (*StatisticsOutput, error) {
	var id string
	if input != nil {
		id = input.SheetID
	}
	nodes, err := o.tree(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &StatisticsOutput{TotalVersions: len(nodes)}
	for _, n := range nodes {
		out.LatestVersionNumber = max(out.LatestVersionNumber, n.Version)
		out.CumulativeSessionCount = max(out.CumulativeSessionCount, n.SessionCount)
	}

	return out, nil
}

// LatestVersion returns the node with the highest version in a node's tree
func (o *orchestrator) LatestVersion(ctx context.Context, input *LatestVersionInput) (*LatestVersionOutput, error) {
	var id string
	if input != nil {
		id = input.SheetID
	}
	nodes, err := o.tree(ctx, id)
	if err != nil {
		return nil, err
	}

	return &LatestVersionOutput{Sheet: Latest(nodes)}, nil
}

// Children returns a node's direct children
func (o *orchestrator) Children(ctx context.Context, input *ChildrenInput) (*ChildrenOutput, error) {
	var id string
	if input != nil {
		id = input.SheetID
	}
	nodes, err := o.tree(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ChildrenOutput{Sheets: Children(nodes, id)}, nil
}

// applyOverrides sets the given abilities on a node and recomputes its
// derived stats. Current HP, MP and SAN keep their values, clamped to the new maxima.
func (o *orchestrator) applyOverrides(
	ctx context.Context,
	s *coc.Sheet,
	overrides map[coc.Ability]int,
	skills []*coc.Skill,
) error {
	for tag, value := range overrides {
		if !s.Abilities.Set(tag, value) {
			return errors.InvalidArgumentf("ability_overrides: unknown ability %q", tag.String())
		}
	}

	var luck int
	if s.Seventh != nil {
		luck = s.Seventh.LuckPoints
	}
	var mythos int
	for _, k := range skills {
		if coc.IsCthulhuMythos(k.Name) {
			mythos = k.Current
		}
	}

	stats, err := o.engine.CalculateSheetStats(ctx, &engine.CalculateSheetStatsInput{
		Edition:       s.Edition,
		Abilities:     s.Abilities,
		Age:           s.Age,
		LuckPoints:    luck,
		CthulhuMythos: mythos,
	})
	if err != nil {
		return err
	}

	hp, mp, san := s.HPCurrent, s.MPCurrent, s.SanCurrent
	stats.Stats.ApplyTo(s)
	s.HPCurrent = min(hp, s.HPMax)
	s.MPCurrent = min(mp, s.MPMax)
	s.SanCurrent = min(san, s.SanMax)
	return nil
}

// copySkills re-identifies skills for another sheet
func (o *orchestrator) copySkills(sheetID string, skills []*coc.Skill) []*coc.Skill {
	out := make([]*coc.Skill, 0, len(skills))
	for _, k := range skills {
		c := k.Clone()
		c.ID = o.skillIDs.Generate()
		c.SheetID = sheetID
		out = append(out, c)
	}
	return out
}

// copyWriters queues the skill and image copies that commit with a new node
func (o *orchestrator) copyWriters(
	ctx context.Context,
	fromID, toID string,
	skills []*coc.Skill,
	withSkills bool,
) ([]redisclient.TxWriter, error) {
	var writers []redisclient.TxWriter

	if withSkills {
		w, err := o.skillRepo.ReplaceWriter(toID, skills)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}

	images, err := o.imageRepo.List(ctx, imagerepo.ListInput{SheetID: fromID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list images")
	}
	copies := make([]*coc.Image, 0, len(images.Images))
	for _, img := range images.Images {
		c := img.Clone()
		c.ID = o.imageIDs.Generate()
		c.SheetID = toID
		copies = append(copies, c)
	}
	w, err := o.imageRepo.CopyWriter(toID, copies)
	if err != nil {
		return nil, err
	}
	writers = append(writers, w)

	return writers, nil
}

func (o *orchestrator) getSheet(ctx context.Context, id string) (*coc.Sheet, error) {
	out, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get sheet")
	}
	return out.Sheet, nil
}

func (o *orchestrator) listSkills(ctx context.Context, sheetID string) ([]*coc.Skill, error) {
	out, err := o.skillRepo.List(ctx, skillrepo.ListInput{SheetID: sheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list skills")
	}
	return out.Skills, nil
}

// tree loads every node of the tree holding id
func (o *orchestrator) tree(ctx context.Context, id string) ([]*coc.Sheet, error) {
	if id == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	s, err := o.getSheet(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := o.sheetRepo.ListTree(ctx, sheetrepo.ListTreeInput{OwnerID: s.OwnerID, Name: s.Name})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list versions of %q", s.Name)
	}
	return out.Sheets, nil
}

func (o *orchestrator) publish(ctx context.Context, eventType string, s, target *coc.Sheet, data map[string]any) {
	if err := o.publisher.Publish(ctx, eventType,
		rpgtoolkit.WrapSheet(s), rpgtoolkit.WrapSheet(target), data); err != nil {
		slog.WarnContext(ctx, "failed to publish event",
			"event_type", eventType,
			"sheet_id", s.ID,
			"error", err)
	}
}
