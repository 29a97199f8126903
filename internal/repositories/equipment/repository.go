// Package equipment provides the interface for equipment persistence
package equipment

//go:generate mockgen -destination=mock/mock_repository.go -package=equipmentmock github.com/KirkDiggler/coc-api/internal/repositories/equipment Repository

import (
	"context"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

// Repository defines the interface for equipment persistence
type Repository interface {
	// Get retrieves one equipment record of a sheet
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the record does not exist
	// Returns errors.IOFailure for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every equipment record of a sheet sorted by kind then name
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Put creates or replaces an equipment record
	// Returns errors.InvalidArgument for missing IDs
	// Returns errors.IOFailure for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete removes one equipment record
	// Returns errors.NotFound if the record does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// DeleteAllWriter queues removal of every record of a sheet
	DeleteAllWriter(sheetID string) redisclient.TxWriter
}

// GetInput defines the input for getting equipment
type GetInput struct {
	SheetID     string
	EquipmentID string
}

// GetOutput defines the output for getting equipment
type GetOutput struct {
	Equipment *coc.Equipment
}

// ListInput defines the input for listing equipment
type ListInput struct {
	SheetID string
}

// ListOutput defines the output for listing equipment
type ListOutput struct {
	Equipment []*coc.Equipment
}

// PutInput defines the input for storing equipment
type PutInput struct {
	Equipment *coc.Equipment
}

// PutOutput defines the output for storing equipment
type PutOutput struct {
	Equipment *coc.Equipment
}

// DeleteInput defines the input for deleting equipment
type DeleteInput struct {
	SheetID     string
	EquipmentID string
}

// DeleteOutput defines the output for deleting equipment
type DeleteOutput struct {
	// Empty for now, can be extended later
}
