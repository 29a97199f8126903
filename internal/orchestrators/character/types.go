package character

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// Biography holds the optional descriptive fields of a sheet
type Biography struct {
	PlayerName string
	Age        int
	Gender     string
	Occupation string
	Birthplace string
	Residence  string
}

// Background holds the 7th edition free-text background fields
type Background struct {
	Description          string
	Beliefs              string
	SignificantPeople    string
	MeaningfulLocations  string
	TreasuredPossessions string
	Traits               string
	InjuriesScars        string
	PhobiasManias        string
}

// SkillInput describes one skill to store. Nil pools keep their existing
// value, or zero on first write.
type SkillInput struct {
	Name       string
	Category   *coc.SkillCategory
	Base       *int
	Occupation *int
	Interest   *int
	Bonus      *int
	Other      *int
	Notes      *string
}

// CreateSheetInput defines the request for creating a sheet
type CreateSheetInput struct {
	OwnerID string
	Name    string
	// Edition falls back to the configured default when empty
	Edition   coc.Edition
	Biography Biography
	Abilities coc.Abilities

	// LuckPoints is the 7th edition luck roll; zero uses POW
	LuckPoints int
	// MentalDisorder is 6th edition only
	MentalDisorder string
	// Background is 7th edition only
	Background *Background

	Notes          string
	IsPublic       bool
	VTTSyncEnabled bool
	VTTCharacterID string

	// Skills are stored with the sheet in one transaction
	Skills []SkillInput
}

// CreateSheetOutput defines the response for creating a sheet
type CreateSheetOutput struct {
	Sheet  *coc.Sheet
	Skills []*coc.Skill
}

// GetSheetInput defines the request for getting a sheet
type GetSheetInput struct {
	SheetID string
}

// GetSheetOutput defines the response for getting a sheet
type GetSheetOutput struct {
	Sheet *coc.Sheet
}

// ListSheetsInput defines the request for listing a user's sheets
type ListSheetsInput struct {
	OwnerID string
}

// ListSheetsOutput defines the response for listing a user's sheets
type ListSheetsOutput struct {
	Sheets []*coc.Sheet
}

// UpdateSheetInput defines the request for updating the mutable fields of a
// sheet. Nil fields are left unchanged.
type UpdateSheetInput struct {
	SheetID string

	PlayerName *string
	Age        *int
	Gender     *string
	Occupation *string
	Birthplace *string
	Residence  *string

	HPCurrent  *int
	MPCurrent  *int
	SanCurrent *int

	VersionNote  *string
	SessionCount *int
	IsActive     *bool

	Notes          *string
	IsPublic       *bool
	VTTSyncEnabled *bool
	VTTCharacterID *string

	MentalDisorder *string
	Background     *Background
}

// UpdateSheetOutput defines the response for updating a sheet
type UpdateSheetOutput struct {
	Sheet *coc.Sheet
}

// DeleteSheetInput defines the request for deleting a sheet
type DeleteSheetInput struct {
	SheetID string
}

// DeleteSheetOutput defines the response for deleting a sheet
type DeleteSheetOutput struct {
	// DeletedIDs includes every descendant version removed with the sheet
	DeletedIDs []string
}

// UpsertSkillInput defines the request for writing one skill
type UpsertSkillInput struct {
	SheetID string
	Skill   SkillInput
}

// UpsertSkillOutput defines the response for writing one skill
type UpsertSkillOutput struct {
	Skill *coc.Skill
	// Sheet is set when the write changed the sheet's sanity
	Sheet *coc.Sheet
}

// DeleteSkillInput defines the request for deleting a skill
type DeleteSkillInput struct {
	SheetID string
	Name    string
}

// DeleteSkillOutput defines the response for deleting a skill
type DeleteSkillOutput struct {
	Sheet *coc.Sheet
}

// ListSkillsInput defines the request for listing a sheet's skills
type ListSkillsInput struct {
	SheetID string
}

// ListSkillsOutput defines the response for listing a sheet's skills
type ListSkillsOutput struct {
	Skills []*coc.Skill
}

// BulkReplaceSkillsInput defines the request for replacing every skill of a sheet
type BulkReplaceSkillsInput struct {
	SheetID string
	Skills  []SkillInput
}

// BulkReplaceSkillsOutput defines the response for replacing every skill of a sheet
type BulkReplaceSkillsOutput struct {
	Skills []*coc.Skill
	Sheet  *coc.Sheet
}

// AddEquipmentInput defines the request for adding equipment
type AddEquipmentInput struct {
	SheetID   string
	Equipment *coc.Equipment
}

// AddEquipmentOutput defines the response for adding equipment
type AddEquipmentOutput struct {
	Equipment *coc.Equipment
}

// UpdateEquipmentInput defines the request for replacing an equipment record
type UpdateEquipmentInput struct {
	SheetID   string
	Equipment *coc.Equipment
}

// UpdateEquipmentOutput defines the response for replacing an equipment record
type UpdateEquipmentOutput struct {
	Equipment *coc.Equipment
}

// RemoveEquipmentInput defines the request for removing equipment
type RemoveEquipmentInput struct {
	SheetID     string
	EquipmentID string
}

// RemoveEquipmentOutput defines the response for removing equipment
type RemoveEquipmentOutput struct{}

// ListEquipmentInput defines the request for listing equipment
type ListEquipmentInput struct {
	SheetID string
}

// ListEquipmentOutput defines the response for listing equipment
type ListEquipmentOutput struct {
	Equipment []*coc.Equipment
}
