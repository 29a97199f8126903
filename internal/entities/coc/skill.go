package coc

import "time"

// SkillCategory groups skills on the sheet
type SkillCategory string

// Skill categories
const (
	SkillCategoryExploration SkillCategory = "exploration"
	SkillCategorySocial      SkillCategory = "social"
	SkillCategoryCombat      SkillCategory = "combat"
	SkillCategoryKnowledge   SkillCategory = "knowledge"
	SkillCategoryTechnical   SkillCategory = "technical"
	SkillCategoryAction      SkillCategory = "action"
	SkillCategoryLanguage    SkillCategory = "language"
	SkillCategoryOther       SkillCategory = "other"
)

// IsValid checks if the category is one of the fixed set
func (c SkillCategory) IsValid() bool {
	switch c {
	case SkillCategoryExploration, SkillCategorySocial, SkillCategoryCombat,
		SkillCategoryKnowledge, SkillCategoryTechnical, SkillCategoryAction,
		SkillCategoryLanguage, SkillCategoryOther:
		return true
	default:
		return false
	}
}

// SkillCategoryStrings returns all categories as strings, for enum validation
func SkillCategoryStrings() []string {
	return []string{
		string(SkillCategoryExploration),
		string(SkillCategorySocial),
		string(SkillCategoryCombat),
		string(SkillCategoryKnowledge),
		string(SkillCategoryTechnical),
		string(SkillCategoryAction),
		string(SkillCategoryLanguage),
		string(SkillCategoryOther),
	}
}

// Names of the Cthulhu Mythos skill, which lowers 6th edition maximum sanity
const (
	SkillCthulhuMythos   = "Cthulhu Mythos"
	SkillCthulhuMythosJA = "クトゥルフ神話"
)

// IsCthulhuMythos reports whether name is the Cthulhu Mythos skill
func IsCthulhuMythos(name string) bool {
	return name == SkillCthulhuMythos || name == SkillCthulhuMythosJA
}

// Skill is a named skill on one sheet with additive point pools
type Skill struct {
	ID       string        `json:"id"`
	SheetID  string        `json:"sheet_id"`
	Name     string        `json:"skill_name"`
	Category SkillCategory `json:"category"`

	Base       int `json:"base"`
	Occupation int `json:"occupation"`
	Interest   int `json:"interest"`
	Bonus      int `json:"bonus"`
	Other      int `json:"other"`

	// Current is always the sum of the pools; Half and Fifth are 7th edition only
	Current int `json:"current"`
	Half    int `json:"half,omitempty"`
	Fifth   int `json:"fifth,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recompute refreshes the derived totals for the sheet's edition
func (s *Skill) Recompute(edition Edition) {
	s.Current = s.Base + s.Occupation + s.Interest + s.Bonus + s.Other
	if edition == EditionSeventh {
		s.Half = s.Current / 2
		s.Fifth = s.Current / 5
		return
	}
	s.Half = 0
	s.Fifth = 0
}

// Clone returns a copy of the skill
func (s *Skill) Clone() *Skill {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
