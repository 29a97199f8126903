// Package image provides storage for sheet images and their content-addressed blobs
package image

//go:generate mockgen -destination=mock/mock_repository.go -package=imagemock github.com/KirkDiggler/coc-api/internal/repositories/image Repository

import (
	"context"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

// Repository defines the interface for image persistence.
// Metadata is stored per sheet; bytes are stored once per SHA-256 digest and
// reference counted across sheets.
type Repository interface {
	// Get retrieves one image's metadata
	// Returns errors.NotFound if the image does not exist on the sheet
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns a sheet's images sorted by order
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Apply reads the sheet's images under WATCH, asks Plan for a change set
	// and commits it atomically
	// Returns errors.VersionConflict if the image set changed during the write
	Apply(ctx context.Context, input ApplyInput) (*ApplyOutput, error)

	// GetBlob returns the stored bytes for a digest
	// Returns errors.NotFound if no image references the digest
	GetBlob(ctx context.Context, input GetBlobInput) (*GetBlobOutput, error)

	// CopyWriter queues already re-identified image records onto another
	// sheet, taking a blob reference for each
	CopyWriter(sheetID string, images []*coc.Image) (redisclient.TxWriter, error)

	// DeleteAllWriter reads a sheet's images and queues their removal,
	// releasing each blob reference
	DeleteAllWriter(ctx context.Context, sheetID string) (redisclient.TxWriter, error)
}

// Blob is new image content to store alongside a change
type Blob struct {
	Digest string
	Data   []byte
}

// Changes is the change set returned by a plan
type Changes struct {
	// Put stores or overwrites image records; records not already on the
	// sheet take a blob reference
	Put []*coc.Image

	// Remove deletes image records and releases their blob references
	Remove []*coc.Image

	// Blob stores new bytes if the digest is not already present
	Blob *Blob
}

// Plan computes a change set from the sheet's current images
type Plan func(current []*coc.Image) (*Changes, error)

// GetInput defines the input for getting an image
type GetInput struct {
	SheetID string
	ImageID string
}

// GetOutput defines the output for getting an image
type GetOutput struct {
	Image *coc.Image
}

// ListInput defines the input for listing images
type ListInput struct {
	SheetID string
}

// ListOutput defines the output for listing images
type ListOutput struct {
	Images []*coc.Image
}

// ApplyInput defines the input for a transactional change
type ApplyInput struct {
	SheetID string
	Plan    Plan
}

// ApplyOutput defines the output for a transactional change
type ApplyOutput struct {
	// Images is the sheet's image set after the change, sorted by order
	Images []*coc.Image
}

// GetBlobInput defines the input for reading image bytes
type GetBlobInput struct {
	Digest string
}

// GetBlobOutput defines the output for reading image bytes
type GetBlobOutput struct {
	Data []byte
}
