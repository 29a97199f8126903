package conversion

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// Converter translates sheets to and from the exchange formats: the internal
// JSON snapshot and the CCFOLIA-style VTT character. Conversions are pure;
// loading and storing sheets is left to the caller.
//
//go:generate mockgen -destination=mock/mock_converter.go -package=conversionmock github.com/KirkDiggler/coc-api/internal/services/conversion Converter
type Converter interface {
	// ToSnapshot builds the snapshot document of a sheet. It never fails.
	ToSnapshot(sheet *coc.Sheet, skills []*coc.Skill) *Snapshot

	// ParseSnapshot decodes and checks a snapshot document.
	// Returns errors.InvalidImport for malformed JSON, wrong field types,
	// an unknown edition, or missing name or abilities.
	ParseSnapshot(data []byte) (*Snapshot, error)

	// ToVTT builds the VTT character object of a sheet.
	// Returns errors.InvalidArgument if the sheet lacks its edition record.
	ToVTT(sheet *coc.Sheet, skills []*coc.Skill) (*VTTCharacter, error)
}
