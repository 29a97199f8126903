package version

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// CreateVersionInput defines the request for adding a version below a sheet
type CreateVersionInput struct {
	SheetID     string
	VersionNote string

	// SessionCount defaults to the parent's count plus one
	SessionCount *int

	// CopySkills deep-copies the parent's skills onto the new node
	CopySkills bool

	// AbilityOverrides replaces individual abilities on the new node and
	// recomputes its derived stats
	AbilityOverrides map[coc.Ability]int
}

// CreateVersionOutput defines the response for adding a version
type CreateVersionOutput struct {
	Sheet  *coc.Sheet
	Parent *coc.Sheet
	Skills []*coc.Skill
}

// RollbackInput defines the request for rolling a tree back to an earlier node
type RollbackInput struct {
	// CurrentID is the node the rollback is recorded under
	CurrentID string

	// TargetID is the node whose content is restored
	TargetID string
}

// RollbackOutput defines the response for a rollback
type RollbackOutput struct {
	Sheet  *coc.Sheet
	Skills []*coc.Skill
}

// DiffInput defines the request for comparing two nodes
type DiffInput struct {
	FromID string
	ToID   string
}

// DiffOutput defines the response for comparing two nodes
type DiffOutput struct {
	Diff *Diff
}

// Change is a numeric field that differs between two nodes
type Change struct {
	Old   int `json:"old"`
	New   int `json:"new"`
	Delta int `json:"delta"`
}

// SkillDiff holds the skill changes between two nodes. Added and Removed are
// sorted by name.
type SkillDiff struct {
	Added   []string          `json:"added"`
	Removed []string          `json:"removed"`
	Changed map[string]Change `json:"changed"`
}

// Diff lists only the fields that differ
type Diff struct {
	Abilities map[coc.Ability]Change `json:"abilities"`
	Skills    SkillDiff              `json:"skills"`
}

// IsEmpty reports whether nothing differs
func (d *Diff) IsEmpty() bool {
	return len(d.Abilities) == 0 &&
		len(d.Skills.Added) == 0 &&
		len(d.Skills.Removed) == 0 &&
		len(d.Skills.Changed) == 0
}

// HistoryInput defines the request for a node's version history
type HistoryInput struct {
	SheetID string
}

// HistoryOutput defines the response for a version history: the root first,
// then every descendant in pre-order by ascending version
type HistoryOutput struct {
	Sheets []*coc.Sheet
}

// StatisticsInput defines the request for tree statistics
type StatisticsInput struct {
	SheetID string
}

// StatisticsOutput defines the response for tree statistics
type StatisticsOutput struct {
	TotalVersions          int
	LatestVersionNumber    int
	CumulativeSessionCount int
}

// LatestVersionInput defines the request for the newest node of a tree
type LatestVersionInput struct {
	SheetID string
}

// LatestVersionOutput defines the response for the newest node of a tree
type LatestVersionOutput struct {
	Sheet *coc.Sheet
}

// ChildrenInput defines the request for a node's direct children
type ChildrenInput struct {
	SheetID string
}

// ChildrenOutput defines the response for a node's direct children, sorted by version
type ChildrenOutput struct {
	Sheets []*coc.Sheet
}
