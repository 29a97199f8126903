package coc

import "time"

// MediaType is an accepted image format
type MediaType string

// Accepted image formats
const (
	MediaTypeJPEG MediaType = "image/jpeg"
	MediaTypePNG  MediaType = "image/png"
	MediaTypeGIF  MediaType = "image/gif"
)

// MediaTypeFromFormat maps a decoder format name ("jpeg", "png", "gif") to a media type
func MediaTypeFromFormat(format string) (MediaType, bool) {
	switch format {
	case "jpeg":
		return MediaTypeJPEG, true
	case "png":
		return MediaTypePNG, true
	case "gif":
		return MediaTypeGIF, true
	default:
		return "", false
	}
}

// Short returns the format name used in configuration, e.g. "png"
func (m MediaType) Short() string {
	switch m {
	case MediaTypeJPEG:
		return "jpeg"
	case MediaTypePNG:
		return "png"
	case MediaTypeGIF:
		return "gif"
	default:
		return string(m)
	}
}

// Image is a portrait or illustration attached to a sheet. The bytes live in
// a content-addressed blob referenced by BlobDigest.
type Image struct {
	ID         string    `json:"id"`
	SheetID    string    `json:"sheet_id"`
	BlobDigest string    `json:"blob_digest"`
	MediaType  MediaType `json:"media_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	IsMain     bool      `json:"is_main"`
	Order      int       `json:"order"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Clone returns a copy of the image metadata
func (i *Image) Clone() *Image {
	if i == nil {
		return nil
	}
	out := *i
	return &out
}
