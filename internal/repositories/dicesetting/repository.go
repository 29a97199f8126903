// Package dicesetting provides the interface for per-user dice formula settings
package dicesetting

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesettingmock github.com/KirkDiggler/coc-api/internal/repositories/dicesetting Repository

import (
	"context"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// Repository persists dice settings. Every mutation keeps exactly one default
// per user once the user owns at least one setting.
type Repository interface {
	// Create stores a new setting
	// The first setting of a user is always stored as the default
	// A setting created with IsDefault demotes the previous default in the same transaction
	// Returns errors.AlreadyExists if the owner already has a setting with that name
	// Returns errors.VersionConflict if a concurrent write changed the owner's settings
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a setting by ID
	// Returns errors.NotFound if the setting does not exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByName retrieves a setting by owner and name
	GetByName(ctx context.Context, input GetByNameInput) (*GetByNameOutput, error)

	// GetDefault retrieves the owner's default setting
	// Returns errors.NotFound if the owner has no settings
	GetDefault(ctx context.Context, input GetDefaultInput) (*GetDefaultOutput, error)

	// List returns the owner's settings, oldest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// SetDefault flips the default pointer to the given setting
	SetDefault(ctx context.Context, input SetDefaultInput) (*SetDefaultOutput, error)

	// Delete removes a setting. Removing the default promotes the oldest
	// remaining setting.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a setting
type CreateInput struct {
	Setting *coc.DiceSetting
}

// CreateOutput defines the output for creating a setting
type CreateOutput struct {
	Setting *coc.DiceSetting
	// Demoted is the previous default, if the new setting replaced it
	Demoted *coc.DiceSetting
}

// GetInput defines the input for getting a setting
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a setting
type GetOutput struct {
	Setting *coc.DiceSetting
}

// GetByNameInput defines the input for getting a setting by name
type GetByNameInput struct {
	OwnerID string
	Name    string
}

// GetByNameOutput defines the output for getting a setting by name
type GetByNameOutput struct {
	Setting *coc.DiceSetting
}

// GetDefaultInput defines the input for getting the default setting
type GetDefaultInput struct {
	OwnerID string
}

// GetDefaultOutput defines the output for getting the default setting
type GetDefaultOutput struct {
	Setting *coc.DiceSetting
}

// ListInput defines the input for listing settings
type ListInput struct {
	OwnerID string
}

// ListOutput defines the output for listing settings
type ListOutput struct {
	Settings []*coc.DiceSetting
}

// SetDefaultInput defines the input for changing the default setting
type SetDefaultInput struct {
	ID string
}

// SetDefaultOutput defines the output for changing the default setting
type SetDefaultOutput struct {
	Setting *coc.DiceSetting
	// Previous is the demoted default, nil when the setting already was the default
	Previous *coc.DiceSetting
}

// DeleteInput defines the input for deleting a setting
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a setting
type DeleteOutput struct {
	// Promoted is the setting that became default, if any
	Promoted *coc.DiceSetting
}
