// Package skill provides the storage interface for the skills attached to a sheet
package skill

//go:generate mockgen -destination=mock/mock_repository.go -package=skillmock github.com/KirkDiggler/coc-api/internal/repositories/skill Repository

import (
	"context"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

// Repository defines the interface for skill persistence. Skills are unique
// per sheet by name.
type Repository interface {
	// Get retrieves one skill by name
	// Returns errors.NotFound if the sheet has no such skill
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Upsert stores a skill, replacing any skill of the same name
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)

	// Delete removes one skill
	// Returns errors.NotFound if the sheet has no such skill
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns a sheet's skills sorted by name
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// ReplaceAll swaps the whole skill set in one transaction
	ReplaceAll(ctx context.Context, input ReplaceAllInput) (*ReplaceAllOutput, error)

	// ReplaceWriter queues a whole-set replacement on another repository's transaction
	ReplaceWriter(sheetID string, skills []*coc.Skill) (redisclient.TxWriter, error)

	// DeleteAllWriter queues removal of every skill of a sheet
	DeleteAllWriter(sheetID string) redisclient.TxWriter
}

// GetInput defines the input for getting a skill
type GetInput struct {
	SheetID string
	Name    string
}

// GetOutput defines the output for getting a skill
type GetOutput struct {
	Skill *coc.Skill
}

// UpsertInput defines the input for storing a skill
type UpsertInput struct {
	Skill *coc.Skill
}

// UpsertOutput defines the output for storing a skill
type UpsertOutput struct {
	Skill *coc.Skill
}

// DeleteInput defines the input for deleting a skill
type DeleteInput struct {
	SheetID string
	Name    string
}

// DeleteOutput defines the output for deleting a skill
type DeleteOutput struct{}

// ListInput defines the input for listing skills
type ListInput struct {
	SheetID string
}

// ListOutput defines the output for listing skills
type ListOutput struct {
	Skills []*coc.Skill
}

// ReplaceAllInput defines the input for replacing a sheet's skills
type ReplaceAllInput struct {
	SheetID string
	Skills  []*coc.Skill
}

// ReplaceAllOutput defines the output for replacing a sheet's skills
type ReplaceAllOutput struct {
	Skills []*coc.Skill
}
