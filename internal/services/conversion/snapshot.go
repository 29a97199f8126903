package conversion

import (
	"encoding/json"
	"time"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
)

// SnapshotVersion is written as export_version on every snapshot
const SnapshotVersion = "1.0"

// Snapshot is the self-describing JSON export of one sheet
type Snapshot struct {
	ExportVersion  string              `json:"export_version,omitempty"`
	CharacterInfo  SnapshotCharacter   `json:"character_info"`
	Skills         []SnapshotSkill     `json:"skills"`
	VersionInfo    SnapshotVersionInfo `json:"version_info"`
	SixthEdition   *SnapshotSixth      `json:"sixth_edition,omitempty"`
	SeventhEdition *SnapshotSeventh    `json:"seventh_edition,omitempty"`
}

// SnapshotCharacter holds identity, biography and abilities keyed by tag
type SnapshotCharacter struct {
	Name       string         `json:"name"`
	Edition    coc.Edition    `json:"edition"`
	PlayerName string         `json:"player_name,omitempty"`
	Age        int            `json:"age"`
	Gender     string         `json:"gender,omitempty"`
	Occupation string         `json:"occupation"`
	Birthplace string         `json:"birthplace,omitempty"`
	Residence  string         `json:"residence,omitempty"`
	Abilities  map[string]int `json:"abilities"`
}

// SnapshotSkill is one skill with its pools. Other may be absent in documents
// written by older exporters; it is then derived from Value.
type SnapshotSkill struct {
	Name       string            `json:"name"`
	Category   coc.SkillCategory `json:"category"`
	Value      int               `json:"value"`
	Base       int               `json:"base"`
	Occupation int               `json:"occupation"`
	Interest   int               `json:"interest"`
	Bonus      int               `json:"bonus"`
	Other      *int              `json:"other,omitempty"`
	Notes      string            `json:"notes"`
}

// SnapshotVersionInfo holds the version graph fields of the exported node
type SnapshotVersionInfo struct {
	Version      int       `json:"version"`
	Note         string    `json:"note"`
	SessionCount int       `json:"session_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SnapshotSixth holds the 6th edition record
type SnapshotSixth struct {
	IdeaRoll       int    `json:"idea_roll"`
	LuckRoll       int    `json:"luck_roll"`
	KnowRoll       int    `json:"know_roll"`
	DamageBonus    string `json:"damage_bonus"`
	MentalDisorder string `json:"mental_disorder"`
}

// SnapshotSeventh holds the 7th edition record
type SnapshotSeventh struct {
	LuckPoints           int    `json:"luck_points"`
	Build                int    `json:"build"`
	MoveRate             int    `json:"move_rate"`
	Dodge                int    `json:"dodge"`
	DamageBonus          string `json:"damage_bonus"`
	Description          string `json:"description,omitempty"`
	Beliefs              string `json:"beliefs,omitempty"`
	SignificantPeople    string `json:"significant_people,omitempty"`
	MeaningfulLocations  string `json:"meaningful_locations,omitempty"`
	TreasuredPossessions string `json:"treasured_possessions,omitempty"`
	Traits               string `json:"traits,omitempty"`
	InjuriesScars        string `json:"injuries_scars,omitempty"`
	PhobiasManias        string `json:"phobias_manias,omitempty"`
}

// Abilities returns the document's abilities. ParseSnapshot has already
// checked that all eight are present.
func (s *Snapshot) Abilities() coc.Abilities {
	var a coc.Abilities
	for _, tag := range coc.AllAbilities() {
		a.Set(tag, s.CharacterInfo.Abilities[tag.String()])
	}
	return a
}

// OtherPool returns the other pool, deriving it from Value when absent
func (k SnapshotSkill) OtherPool() int {
	if k.Other != nil {
		return *k.Other
	}
	return max(0, k.Value-k.Base-k.Occupation-k.Interest-k.Bonus)
}

func (c *converter) ToSnapshot(sheet *coc.Sheet, skills []*coc.Skill) *Snapshot {
	abilities := make(map[string]int, len(coc.AllAbilities()))
	for tag, v := range sheet.Abilities.ToMap() {
		abilities[tag.String()] = v
	}

	out := &Snapshot{
		ExportVersion: SnapshotVersion,
		CharacterInfo: SnapshotCharacter{
			Name:       sheet.Name,
			Edition:    sheet.Edition,
			PlayerName: sheet.PlayerName,
			Age:        sheet.Age,
			Gender:     sheet.Gender,
			Occupation: sheet.Occupation,
			Birthplace: sheet.Birthplace,
			Residence:  sheet.Residence,
			Abilities:  abilities,
		},
		Skills: make([]SnapshotSkill, 0, len(skills)),
		VersionInfo: SnapshotVersionInfo{
			Version:      sheet.Version,
			Note:         sheet.VersionNote,
			SessionCount: sheet.SessionCount,
			CreatedAt:    sheet.CreatedAt,
			UpdatedAt:    sheet.UpdatedAt,
		},
	}

	for _, k := range skills {
		other := k.Other
		out.Skills = append(out.Skills, SnapshotSkill{
			Name:       k.Name,
			Category:   k.Category,
			Value:      k.Current,
			Base:       k.Base,
			Occupation: k.Occupation,
			Interest:   k.Interest,
			Bonus:      k.Bonus,
			Other:      &other,
			Notes:      k.Notes,
		})
	}

	if x := sheet.Sixth; x != nil {
		out.SixthEdition = &SnapshotSixth{
			IdeaRoll:       x.IdeaRoll,
			LuckRoll:       x.LuckRoll,
			KnowRoll:       x.KnowRoll,
			DamageBonus:    x.DamageBonus,
			MentalDisorder: x.MentalDisorder,
		}
	}
	if x := sheet.Seventh; x != nil {
		out.SeventhEdition = &SnapshotSeventh{
			LuckPoints:           x.LuckPoints,
			Build:                x.Build,
			MoveRate:             x.MoveRate,
			Dodge:                x.Dodge,
			DamageBonus:          x.DamageBonus,
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

	return out
}

func (c *converter) ParseSnapshot(data []byte) (*Snapshot, error) {
	var doc Snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidImport, "snapshot is not a valid document")
	}

	info := &doc.CharacterInfo
	if coc.NormalizeName(info.Name) == "" {
		return nil, errors.InvalidImport("character_info.name is required")
	}

	switch {
	case info.Edition == "" && doc.SeventhEdition != nil:
		info.Edition = coc.EditionSeventh
	case info.Edition == "":
		info.Edition = coc.EditionSixth
	case !info.Edition.IsValid():
		return nil, errors.InvalidImportf("unknown edition %q", info.Edition)
	}

	if len(info.Abilities) == 0 {
		return nil, errors.InvalidImport("character_info.abilities is required")
	}
	for _, tag := range coc.AllAbilities() {
		if _, ok := info.Abilities[tag.String()]; !ok {
			return nil, errors.InvalidImportf("character_info.abilities.%s is required", tag)
		}
	}

	for i := range doc.Skills {
		k := &doc.Skills[i]
		if coc.NormalizeName(k.Name) == "" {
			return nil, errors.InvalidImportf("skills[%d].name is required", i)
		}
		if k.Category == "" {
			k.Category = coc.SkillCategoryOther
		}
		if !k.Category.IsValid() {
			return nil, errors.InvalidImportf("skills[%d].category %q is unknown", i, k.Category)
		}
	}

	return &doc, nil
}
