// Package v1alpha1 handles the sheet gRPC service interface
package v1alpha1

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/character"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/export"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/image"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/version"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
	VersionService   version.Service
	ExportService    export.Service
	DiceService      dice.Service
	ImageService     image.Service

	// Localizer is optional; the built-in catalogs are used when nil
	Localizer *Localizer
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.VersionService == nil {
		vb.RequiredField("VersionService")
	}
	if c.ExportService == nil {
		vb.RequiredField("ExportService")
	}
	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.ImageService == nil {
		vb.RequiredField("ImageService")
	}
	return vb.Build()
}

// Handler implements SheetServiceServer
type Handler struct {
	characters character.Service
	versions   version.Service
	exports    export.Service
	dice       dice.Service
	images     image.Service
	localizer  *Localizer
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		characters: cfg.CharacterService,
		versions:   cfg.VersionService,
		exports:    cfg.ExportService,
		dice:       cfg.DiceService,
		images:     cfg.ImageService,
		localizer:  cfg.Localizer,
	}
	if h.localizer == nil {
		l, err := NewLocalizer()
		if err != nil {
			return nil, err
		}
		h.localizer = l
	}
	return h, nil
}

// Ensure Handler implements the SheetServiceServer interface
var _ SheetServiceServer = (*Handler)(nil)

type skillRequest struct {
	Name       string             `json:"name"`
	Category   *coc.SkillCategory `json:"category,omitempty"`
	Base       *int               `json:"base,omitempty"`
	Occupation *int               `json:"occupation,omitempty"`
	Interest   *int               `json:"interest,omitempty"`
	Bonus      *int               `json:"bonus,omitempty"`
	Other      *int               `json:"other,omitempty"`
	Notes      *string            `json:"notes,omitempty"`
}

// CreateSheetRequest is the body of CreateSheet
type CreateSheetRequest struct {
	OwnerID    string        `json:"owner_id"`
	Name       string        `json:"name"`
	Edition    coc.Edition   `json:"edition,omitempty"`
	PlayerName string        `json:"player_name,omitempty"`
	Age        int           `json:"age,omitempty"`
	Gender     string        `json:"gender,omitempty"`
	Occupation string        `json:"occupation,omitempty"`
	Birthplace string        `json:"birthplace,omitempty"`
	Residence  string        `json:"residence,omitempty"`
	Abilities  coc.Abilities `json:"abilities"`
	// FromRollSession takes the abilities from the owner's last ability rolls
	FromRollSession bool   `json:"from_roll_session,omitempty"`
	LuckPoints      int    `json:"luck_points,omitempty"`
	MentalDisorder  string `json:"mental_disorder,omitempty"`
	Notes           string `json:"notes,omitempty"`
	IsPublic        bool   `json:"is_public,omitempty"`

	Skills []skillRequest `json:"skills,omitempty"`
}

type sheetResponse struct {
	Sheet  *coc.Sheet   `json:"sheet"`
	Skills []*coc.Skill `json:"skills,omitempty"`
}

// CreateSheet creates version 1 of a new sheet
func (h *Handler) CreateSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body CreateSheetRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	if body.OwnerID == "" {
		return nil, h.localizer.GRPCError(ctx, errors.InvalidArgument("owner_id is required"))
	}

	abilities := body.Abilities
	if body.FromRollSession {
		rolled, err := h.dice.AbilitiesFromRollSession(ctx, &dice.AbilitiesFromRollSessionInput{OwnerID: body.OwnerID})
		if err != nil {
			return nil, h.localizer.GRPCError(ctx, err)
		}
		abilities = rolled.Abilities
	}

	input := &character.CreateSheetInput{
		OwnerID: body.OwnerID,
		Name:    body.Name,
		Edition: body.Edition,
		Biography: character.Biography{
			PlayerName: body.PlayerName,
			Age:        body.Age,
			Gender:     body.Gender,
			Occupation: body.Occupation,
			Birthplace: body.Birthplace,
			Residence:  body.Residence,
		},
		Abilities:      abilities,
		LuckPoints:     body.LuckPoints,
		MentalDisorder: body.MentalDisorder,
		Notes:          body.Notes,
		IsPublic:       body.IsPublic,
		Skills:         make([]character.SkillInput, 0, len(body.Skills)),
	}
	for _, k := range body.Skills {
		input.Skills = append(input.Skills, character.SkillInput{
			Name:       k.Name,
			Category:   k.Category,
			Base:       k.Base,
			Occupation: k.Occupation,
			Interest:   k.Interest,
			Bonus:      k.Bonus,
			Other:      k.Other,
			Notes:      k.Notes,
		})
	}

	out, err := h.characters.CreateSheet(ctx, input)
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, sheetResponse{Sheet: out.Sheet, Skills: out.Skills})
}

type sheetIDRequest struct {
	SheetID string `json:"sheet_id"`
}

func (h *Handler) decodeSheetID(ctx context.Context, req *structpb.Struct) (string, error) {
	var body sheetIDRequest
	if err := Decode(req, &body); err != nil {
		return "", h.localizer.GRPCError(ctx, err)
	}
	if body.SheetID == "" {
		return "", h.localizer.GRPCError(ctx, errors.InvalidArgument("sheet_id is required"))
	}
	return body.SheetID, nil
}

// GetSheet returns one sheet with its skills
func (h *Handler) GetSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sheetID, err := h.decodeSheetID(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := h.characters.GetSheet(ctx, &character.GetSheetInput{SheetID: sheetID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	skills, err := h.characters.ListSkills(ctx, &character.ListSkillsInput{SheetID: sheetID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, sheetResponse{Sheet: out.Sheet, Skills: skills.Skills})
}

// CreateVersionRequest is the body of CreateVersion
type CreateVersionRequest struct {
	SheetID          string         `json:"sheet_id"`
	VersionNote      string         `json:"version_note,omitempty"`
	SessionCount     *int           `json:"session_count,omitempty"`
	CopySkills       bool           `json:"copy_skills,omitempty"`
	AbilityOverrides map[string]int `json:"ability_overrides,omitempty"`
}

// CreateVersion adds a version below a sheet
func (h *Handler) CreateVersion(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body CreateVersionRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	var overrides map[coc.Ability]int
	if len(body.AbilityOverrides) > 0 {
		overrides = make(map[coc.Ability]int, len(body.AbilityOverrides))
		for tag, v := range body.AbilityOverrides {
			overrides[coc.Ability(tag)] = v
		}
	}

	out, err := h.versions.CreateVersion(ctx, &version.CreateVersionInput{
		SheetID:          body.SheetID,
		VersionNote:      body.VersionNote,
		SessionCount:     body.SessionCount,
		CopySkills:       body.CopySkills,
		AbilityOverrides: overrides,
	})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, sheetResponse{Sheet: out.Sheet, Skills: out.Skills})
}

type rollbackRequest struct {
	CurrentID string `json:"current_id"`
	TargetID  string `json:"target_id"`
}

// Rollback records a new version restoring an earlier one
func (h *Handler) Rollback(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body rollbackRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.versions.Rollback(ctx, &version.RollbackInput{
		CurrentID: body.CurrentID,
		TargetID:  body.TargetID,
	})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, sheetResponse{Sheet: out.Sheet, Skills: out.Skills})
}

type historyEntry struct {
	ID           string    `json:"id"`
	Version      int       `json:"version"`
	ParentID     string    `json:"parent_id,omitempty"`
	VersionNote  string    `json:"version_note,omitempty"`
	SessionCount int       `json:"session_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type historyResponse struct {
	Versions               []historyEntry `json:"versions"`
	LatestVersion          int            `json:"latest_version"`
	CumulativeSessionCount int            `json:"cumulative_session_count"`
}

// History lists the versions of a sheet's tree in pre-order
func (h *Handler) History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sheetID, err := h.decodeSheetID(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := h.versions.History(ctx, &version.HistoryInput{SheetID: sheetID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	stats, err := h.versions.Statistics(ctx, &version.StatisticsInput{SheetID: sheetID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	resp := historyResponse{
		Versions:               make([]historyEntry, 0, len(out.Sheets)),
		LatestVersion:          stats.LatestVersionNumber,
		CumulativeSessionCount: stats.CumulativeSessionCount,
	}
	for _, s := range out.Sheets {
		resp.Versions = append(resp.Versions, historyEntry{
			ID:           s.ID,
			Version:      s.Version,
			ParentID:     s.ParentID,
			VersionNote:  s.VersionNote,
			SessionCount: s.SessionCount,
			CreatedAt:    s.CreatedAt,
		})
	}
	return h.encode(ctx, resp)
}

type diffRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}

type diffResponse struct {
	Diff  *version.Diff `json:"diff"`
	Empty bool          `json:"empty"`
}

// Diff compares two versions of a sheet
func (h *Handler) Diff(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body diffRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.versions.Diff(ctx, &version.DiffInput{FromID: body.FromID, ToID: body.ToID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, diffResponse{Diff: out.Diff, Empty: out.Diff.IsEmpty()})
}

// ExportSnapshot returns the snapshot document of a sheet
func (h *Handler) ExportSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sheetID, err := h.decodeSheetID(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := h.exports.ExportSnapshot(ctx, &export.ExportSnapshotInput{SheetID: sheetID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, out.Snapshot)
}

type importSnapshotRequest struct {
	OwnerID  string          `json:"owner_id"`
	NewName  string          `json:"new_name,omitempty"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// ImportSnapshot creates a new sheet from a snapshot document
func (h *Handler) ImportSnapshot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body importSnapshotRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.exports.ImportSnapshot(ctx, &export.ImportSnapshotInput{
		OwnerID: body.OwnerID,
		Data:    body.Snapshot,
		NewName: body.NewName,
	})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, sheetResponse{Sheet: out.Sheet, Skills: out.Skills})
}

// ExportVTT returns the VTT character object of a sheet
func (h *Handler) ExportVTT(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sheetID, err := h.decodeSheetID(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := h.exports.ExportVTT(ctx, &export.ExportVTTInput{SheetID: sheetID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, out.Character)
}

type bulkRequest struct {
	SheetIDs []string `json:"sheet_ids"`
}

type bulkResponse struct {
	Results []*export.BulkResult `json:"results"`
}

// ExportVTTBulk exports many sheets; failed sheets become error objects
func (h *Handler) ExportVTTBulk(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body bulkRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.exports.ExportVTTBulk(ctx, &export.ExportVTTBulkInput{SheetIDs: body.SheetIDs})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, bulkResponse{Results: out.Results})
}

type rollAbilitiesRequest struct {
	OwnerID   string `json:"owner_id"`
	SettingID string `json:"setting_id,omitempty"`
}

type rollAbilitiesResponse struct {
	SettingID string                 `json:"setting_id"`
	Values    map[coc.Ability]int    `json:"values"`
	Rolls     []dicesession.DiceRoll `json:"rolls"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// RollAbilities rolls all eight abilities and keeps them in the owner's roll session
func (h *Handler) RollAbilities(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body rollAbilitiesRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.dice.RollAll(ctx, &dice.RollAllInput{OwnerID: body.OwnerID, SettingID: body.SettingID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	return h.encode(ctx, rollAbilitiesResponse{
		SettingID: out.Setting.ID,
		Values:    out.Values,
		Rolls:     out.Session.Rolls,
		ExpiresAt: out.Session.ExpiresAt,
	})
}

// AttachImageRequest is the body of AttachImage. Data is base64 in JSON.
type AttachImageRequest struct {
	SheetID string `json:"sheet_id"`
	Data    []byte `json:"data"`
	IsMain  bool   `json:"is_main,omitempty"`
	Order   *int   `json:"order,omitempty"`
}

type imageRequest struct {
	SheetID string `json:"sheet_id"`
	ImageID string `json:"image_id"`
}

type imagesResponse struct {
	Image    *coc.Image   `json:"image,omitempty"`
	Promoted *coc.Image   `json:"promoted,omitempty"`
	Images   []*coc.Image `json:"images"`
}

// AttachImage stores an image on a sheet
func (h *Handler) AttachImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body AttachImageRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.images.Attach(ctx, &image.AttachInput{
		SheetID: body.SheetID,
		Data:    body.Data,
		IsMain:  body.IsMain,
		Order:   body.Order,
	})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, imagesResponse{Image: out.Image, Images: out.Images})
}

// ListImages returns a sheet's images in display order
func (h *Handler) ListImages(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sheetID, err := h.decodeSheetID(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := h.images.List(ctx, &image.ListInput{SheetID: sheetID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, imagesResponse{Images: out.Images})
}

// PromoteImage makes an image the sheet's primary image
func (h *Handler) PromoteImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body imageRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.images.Promote(ctx, &image.PromoteInput{SheetID: body.SheetID, ImageID: body.ImageID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, imagesResponse{Image: out.Image, Images: out.Images})
}

// DeleteImage removes an image from a sheet
func (h *Handler) DeleteImage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body imageRequest
	if err := Decode(req, &body); err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}

	out, err := h.images.Delete(ctx, &image.DeleteInput{SheetID: body.SheetID, ImageID: body.ImageID})
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return h.encode(ctx, imagesResponse{Promoted: out.Promoted, Images: out.Images})
}

func (h *Handler) encode(ctx context.Context, v any) (*structpb.Struct, error) {
	out, err := Encode(v)
	if err != nil {
		return nil, h.localizer.GRPCError(ctx, err)
	}
	return out, nil
}
