package coc

import "time"

// Sheet limits
const (
	MinAge             = 15
	MaxAge             = 90
	MaxVersionNoteLen  = 1000
	MaxSanity          = 99
	FirstVersionNumber = 1
)

// Sheet is a character sheet and one node of its version tree.
// (OwnerID, Name, Version) is unique; Edition, Name and the graph links are
// fixed once the node is stored.
type Sheet struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"owner_id"`
	Name    string  `json:"name"`
	Version int     `json:"version"`
	Edition Edition `json:"edition"`

	PlayerName string `json:"player_name,omitempty"`
	Age        int    `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Birthplace string `json:"birthplace,omitempty"`
	Residence  string `json:"residence,omitempty"`

	Abilities Abilities `json:"abilities"`

	HPMax       int `json:"hp_max"`
	HPCurrent   int `json:"hp_current"`
	MPMax       int `json:"mp_max"`
	MPCurrent   int `json:"mp_current"`
	SanStarting int `json:"san_starting"`
	SanMax      int `json:"san_max"`
	SanCurrent  int `json:"san_current"`

	ParentID     string `json:"parent_id,omitempty"`
	VersionNote  string `json:"version_note,omitempty"`
	SessionCount int    `json:"session_count"`
	IsActive     bool   `json:"is_active"`

	Notes          string `json:"notes,omitempty"`
	IsPublic       bool   `json:"is_public"`
	VTTSyncEnabled bool   `json:"vtt_sync_enabled"`
	VTTCharacterID string `json:"vtt_character_id,omitempty"`

	// Exactly one of these is set, matching Edition
	Sixth   *SixthEdition   `json:"sixth_edition,omitempty"`
	Seventh *SeventhEdition `json:"seventh_edition,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SixthEdition holds the 6th edition extension record
type SixthEdition struct {
	MentalDisorder string `json:"mental_disorder,omitempty"`
	IdeaRoll       int    `json:"idea_roll"`
	LuckRoll       int    `json:"luck_roll"`
	KnowRoll       int    `json:"know_roll"`
	DamageBonus    string `json:"damage_bonus"`
}

// SeventhEdition holds the 7th edition extension record
type SeventhEdition struct {
	LuckPoints  int    `json:"luck_points"`
	Build       int    `json:"build"`
	MoveRate    int    `json:"move_rate"`
	Dodge       int    `json:"dodge"`
	DamageBonus string `json:"damage_bonus"`

	Description          string `json:"description,omitempty"`
	Beliefs              string `json:"beliefs,omitempty"`
	SignificantPeople    string `json:"significant_people,omitempty"`
	MeaningfulLocations  string `json:"meaningful_locations,omitempty"`
	TreasuredPossessions string `json:"treasured_possessions,omitempty"`
	Traits               string `json:"traits,omitempty"`
	InjuriesScars        string `json:"injuries_scars,omitempty"`
	PhobiasManias        string `json:"phobias_manias,omitempty"`
}

// IsRoot reports whether the sheet has no parent
func (s *Sheet) IsRoot() bool {
	return s.ParentID == ""
}

// Clone returns a deep copy of the sheet
func (s *Sheet) Clone() *Sheet {
	if s == nil {
		return nil
	}
	out := *s
	if s.Sixth != nil {
		sixth := *s.Sixth
		out.Sixth = &sixth
	}
	if s.Seventh != nil {
		seventh := *s.Seventh
		out.Seventh = &seventh
	}
	return &out
}

// CopyContentFrom copies every non-graph field from src: biography, abilities,
// derived stats, presentation and the edition extension. Identity (ID, owner,
// name, version), graph links and timestamps are left alone.
func (s *Sheet) CopyContentFrom(src *Sheet) {
	clone := src.Clone()

	s.Edition = clone.Edition
	s.PlayerName = clone.PlayerName
	s.Age = clone.Age
	s.Gender = clone.Gender
	s.Occupation = clone.Occupation
	s.Birthplace = clone.Birthplace
	s.Residence = clone.Residence

	s.Abilities = clone.Abilities

	s.HPMax = clone.HPMax
	s.HPCurrent = clone.HPCurrent
	s.MPMax = clone.MPMax
	s.MPCurrent = clone.MPCurrent
	s.SanStarting = clone.SanStarting
	s.SanMax = clone.SanMax
	s.SanCurrent = clone.SanCurrent

	s.Notes = clone.Notes
	s.IsPublic = clone.IsPublic
	s.VTTSyncEnabled = clone.VTTSyncEnabled
	s.VTTCharacterID = clone.VTTCharacterID

	s.Sixth = clone.Sixth
	s.Seventh = clone.Seventh
}

// DamageBonus returns the edition's damage bonus label
func (s *Sheet) DamageBonus() string {
	switch {
	case s.Sixth != nil:
		return s.Sixth.DamageBonus
	case s.Seventh != nil:
		return s.Seventh.DamageBonus
	default:
		return ""
	}
}
