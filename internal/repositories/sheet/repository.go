// Package sheet provides the storage interface for character sheets and the
// version graph that links them
package sheet

//go:generate mockgen -destination=mock/mock_repository.go -package=sheetmock github.com/KirkDiggler/coc-api/internal/repositories/sheet Repository

import (
	"context"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

// Repository defines the interface for sheet persistence.
// Every tree is keyed by (owner, name) and its versions are unique within it.
type Repository interface {
	// Create stores a new root node as version 1 of its tree
	// Returns errors.InvalidArgument for missing identity fields
	// Returns errors.VersionConflict if the tree already has a version 1
	// Returns errors.IOFailure for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// CreateVersion stores a new child of ParentID numbered latest+1 in the
	// parent's tree, inside a read-modify-write transaction on the tree
	// Returns errors.NotFound if the parent does not exist
	// Returns errors.CyclicParent if the parent chain would loop
	// Returns errors.VersionConflict if another writer changed the tree first
	CreateVersion(ctx context.Context, input CreateVersionInput) (*CreateVersionOutput, error)

	// Get retrieves a single node
	// Returns errors.NotFound if the node does not exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces the editable fields of a node. Identity, edition and
	// graph links must match the stored node.
	// Returns errors.InvalidArgument if an immutable field changed
	// Returns errors.VersionConflict if the node changed during the write
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a node and every descendant, running each node's cascade writers
	// in the same transaction
	// Returns errors.NotFound if the node does not exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner returns every node owned by a user sorted by name then version
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)

	// ListTree returns every node of one (owner, name) tree sorted by version
	ListTree(ctx context.Context, input ListTreeInput) (*ListTreeOutput, error)
}

// CreateInput defines the input for creating a root node
type CreateInput struct {
	Sheet *coc.Sheet

	// Writers queue related records (skills, images) in the same transaction
	Writers []redisclient.TxWriter
}

// CreateOutput defines the output for creating a root node
type CreateOutput struct {
	Sheet *coc.Sheet
}

// CreateVersionInput defines the input for adding a node below ParentID.
// Sheet carries the new node's ID and content; its owner, name, version and
// parent are assigned from the tree.
type CreateVersionInput struct {
	ParentID string
	Sheet    *coc.Sheet
	Writers  []redisclient.TxWriter
}

// CreateVersionOutput defines the output for adding a node
type CreateVersionOutput struct {
	Sheet  *coc.Sheet
	Parent *coc.Sheet
}

// GetInput defines the input for getting a node
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a node
type GetOutput struct {
	Sheet *coc.Sheet
}

// UpdateInput defines the input for updating a node
type UpdateInput struct {
	Sheet *coc.Sheet
}

// UpdateOutput defines the output for updating a node
type UpdateOutput struct {
	Sheet *coc.Sheet
}

// DeleteInput defines the input for deleting a node and its descendants
type DeleteInput struct {
	ID string

	// Cascade returns the writers that remove records owned by one sheet.
	// It runs inside the transaction callback, before MULTI, so it may read.
	Cascade func(ctx context.Context, sheetID string) ([]redisclient.TxWriter, error)
}

// DeleteOutput defines the output for deleting a node
type DeleteOutput struct {
	DeletedIDs []string
}

// ListByOwnerInput defines the input for listing a user's sheets
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing a user's sheets
type ListByOwnerOutput struct {
	Sheets []*coc.Sheet
}

// ListTreeInput defines the input for listing one version tree
type ListTreeInput struct {
	OwnerID string
	Name    string
}

// ListTreeOutput defines the output for listing one version tree
type ListTreeOutput struct {
	Sheets []*coc.Sheet
}
