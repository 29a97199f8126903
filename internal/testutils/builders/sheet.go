// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/testutils"
)

// SheetBuilder provides a fluent interface for building test Sheet instances
type SheetBuilder struct {
	sheet *coc.Sheet
}

// NewSheetBuilder creates a builder seeded with a 6th edition fixture
func NewSheetBuilder() *SheetBuilder {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := testutils.CreateTestSheet(coc.EditionSixth)
	s.CreatedAt = now
	s.UpdatedAt = now
	return &SheetBuilder{sheet: s}
}

// NewSeventhSheetBuilder creates a builder seeded with a 7th edition fixture
func NewSeventhSheetBuilder() *SheetBuilder {
	b := NewSheetBuilder()
	created := b.sheet.CreatedAt
	b.sheet = testutils.CreateTestSheet(coc.EditionSeventh)
	b.sheet.CreatedAt = created
	b.sheet.UpdatedAt = created
	return b
}

// WithID sets the sheet ID
func (b *SheetBuilder) WithID(id string) *SheetBuilder {
	b.sheet.ID = id
	return b
}

// WithOwner sets the owner ID
func (b *SheetBuilder) WithOwner(ownerID string) *SheetBuilder {
	b.sheet.OwnerID = ownerID
	return b
}

// WithName sets the sheet name
func (b *SheetBuilder) WithName(name string) *SheetBuilder {
	b.sheet.Name = name
	return b
}

// WithVersion sets the version number and parent link
func (b *SheetBuilder) WithVersion(version int, parentID string) *SheetBuilder {
	b.sheet.Version = version
	b.sheet.ParentID = parentID
	return b
}

// WithAbility sets a single stored ability value
func (b *SheetBuilder) WithAbility(tag coc.Ability, value int) *SheetBuilder {
	b.sheet.Abilities.Set(tag, value)
	return b
}

// WithSanity sets current and maximum sanity
func (b *SheetBuilder) WithSanity(current, maxValue int) *SheetBuilder {
	b.sheet.SanCurrent = current
	b.sheet.SanMax = maxValue
	return b
}

// WithSessionCount sets the session count
func (b *SheetBuilder) WithSessionCount(n int) *SheetBuilder {
	b.sheet.SessionCount = n
	return b
}

// WithVTTSync enables VTT sync with a remote character ID
func (b *SheetBuilder) WithVTTSync(characterID string) *SheetBuilder {
	b.sheet.VTTSyncEnabled = true
	b.sheet.VTTCharacterID = characterID
	return b
}

// Build returns a copy of the built sheet
func (b *SheetBuilder) Build() *coc.Sheet {
	return b.sheet.Clone()
}
