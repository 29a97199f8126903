package image

import (
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
)

// Default quotas
const (
	DefaultMaxImagesPerSheet     = 10
	DefaultMaxImageBytes         = 5 << 20
	DefaultMaxTotalBytesPerSheet = 30 << 20
)

// Limits bounds the images a sheet may carry
type Limits struct {
	MaxImagesPerSheet     int
	MaxImageBytes         int64
	MaxTotalBytesPerSheet int64
	AllowedMediaTypes     []coc.MediaType
}

// DefaultLimits returns the standard quotas: 10 images of up to 5 MiB each,
// 30 MiB per sheet, jpeg, png and gif only
func DefaultLimits() Limits {
	return Limits{
		MaxImagesPerSheet:     DefaultMaxImagesPerSheet,
		MaxImageBytes:         DefaultMaxImageBytes,
		MaxTotalBytesPerSheet: DefaultMaxTotalBytesPerSheet,
		AllowedMediaTypes:     []coc.MediaType{coc.MediaTypeJPEG, coc.MediaTypePNG, coc.MediaTypeGIF},
	}
}

func (l Limits) allows(m coc.MediaType) bool {
	for _, allowed := range l.AllowedMediaTypes {
		if allowed == m {
			return true
		}
	}
	return false
}

// AttachInput defines the request for adding an image to a sheet
type AttachInput struct {
	SheetID string
	Data    []byte

	// IsMain makes the new image primary; the first image always is
	IsMain bool

	// Order defaults to one past the highest existing order
	Order *int
}

// AttachOutput defines the response for adding an image
type AttachOutput struct {
	Image  *coc.Image
	Images []*coc.Image
}

// PromoteInput defines the request for making an image primary
type PromoteInput struct {
	SheetID string
	ImageID string
}

// PromoteOutput defines the response for making an image primary
type PromoteOutput struct {
	Image  *coc.Image
	Images []*coc.Image
}

// DeleteInput defines the request for removing an image
type DeleteInput struct {
	SheetID string
	ImageID string
}

// DeleteOutput defines the response for removing an image
type DeleteOutput struct {
	// Promoted is the image that became primary, if the primary was removed
	Promoted *coc.Image
	Images   []*coc.Image
}

// ListInput defines the request for listing a sheet's images
type ListInput struct {
	SheetID string
}

// ListOutput defines the response for listing a sheet's images, sorted by order
type ListOutput struct {
	Images []*coc.Image
}

// GetBlobInput defines the request for reading an image's bytes
type GetBlobInput struct {
	SheetID string
	ImageID string
}

// GetBlobOutput defines the response for reading an image's bytes
type GetBlobOutput struct {
	Image *coc.Image
	Data  []byte
}
