// Package image implements the image service. Every mutation runs as one
// transaction that leaves at most one primary image per sheet, and exactly
// one whenever the sheet has images.
package image

//go:generate mockgen -destination=mock/mock_service.go -package=imagemock github.com/KirkDiggler/coc-api/internal/orchestrators/image Service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	stdimage "image"
	"log/slog"

	// Register the accepted decoders with image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	imagerepo "github.com/KirkDiggler/coc-api/internal/repositories/image"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
)

// Service defines the image operations
type Service interface {
	Attach(ctx context.Context, input *AttachInput) (*AttachOutput, error)
	Promote(ctx context.Context, input *PromoteInput) (*PromoteOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
	GetBlob(ctx context.Context, input *GetBlobInput) (*GetBlobOutput, error)
}

// Config holds the dependencies for the image orchestrator
type Config struct {
	SheetRepo sheetrepo.Repository
	ImageRepo imagerepo.Repository

	// Optional dependencies
	Clock       clock.Clock
	IDGenerator idgen.Generator
	Publisher   rpgtoolkit.Publisher

	// Limits defaults to DefaultLimits when zero
	Limits Limits
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}

	vb := errors.NewValidationBuilder()
	if c.SheetRepo == nil {
		vb.RequiredField("SheetRepo")
	}
	if c.ImageRepo == nil {
		vb.RequiredField("ImageRepo")
	}
	if c.Limits.MaxImagesPerSheet < 0 {
		vb.InvalidField("Limits.MaxImagesPerSheet", "must be positive")
	}
	if c.Limits.MaxImageBytes < 0 {
		vb.InvalidField("Limits.MaxImageBytes", "must be positive")
	}
	if c.Limits.MaxTotalBytesPerSheet < 0 {
		vb.InvalidField("Limits.MaxTotalBytesPerSheet", "must be positive")
	}
	for _, m := range c.Limits.AllowedMediaTypes {
		if _, ok := coc.MediaTypeFromFormat(m.Short()); !ok {
			vb.InvalidField("Limits.AllowedMediaTypes", fmt.Sprintf("unsupported media type %q", m))
		}
	}
	return vb.Build()
}

type orchestrator struct {
	sheetRepo sheetrepo.Repository
	imageRepo imagerepo.Repository
	clock     clock.Clock
	ids       idgen.Generator
	publisher rpgtoolkit.Publisher
	limits    Limits
}

// New creates a new image orchestrator
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		sheetRepo: cfg.SheetRepo,
		imageRepo: cfg.ImageRepo,
		clock:     cfg.Clock,
		ids:       cfg.IDGenerator,
		publisher: cfg.Publisher,
		limits:    cfg.Limits,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.ids == nil {
		o.ids = idgen.NewUUID(idgen.PrefixImage)
	}
	if o.publisher == nil {
		o.publisher = rpgtoolkit.NoopPublisher()
	}

	defaults := DefaultLimits()
	if o.limits.MaxImagesPerSheet == 0 {
		o.limits.MaxImagesPerSheet = defaults.MaxImagesPerSheet
	}
	if o.limits.MaxImageBytes == 0 {
		o.limits.MaxImageBytes = defaults.MaxImageBytes
	}
	if o.limits.MaxTotalBytesPerSheet == 0 {
		o.limits.MaxTotalBytesPerSheet = defaults.MaxTotalBytesPerSheet
	}
	if len(o.limits.AllowedMediaTypes) == 0 {
		o.limits.AllowedMediaTypes = defaults.AllowedMediaTypes
	}

	return o, nil
}

// Attach sniffs, checks and stores a new image. The first image of a sheet
// is always primary.
func (o *orchestrator) Attach(ctx context.Context, input *AttachInput) (*AttachOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument("image data is required")
	}
	if input.Order != nil && *input.Order < 0 {
		return nil, errors.InvalidArgument("order must be non-negative")
	}

	size := int64(len(input.Data))
	if size > o.limits.MaxImageBytes {
		return nil, errors.ImageQuotaExceededf("image is %d bytes, limit is %d", size, o.limits.MaxImageBytes)
	}

	mediaType, width, height, err := o.sniff(input.Data)
	if err != nil {
		return nil, err
	}

	if _, err := o.sheetRepo.Get(ctx, sheetrepo.GetInput{ID: input.SheetID}); err != nil {
		return nil, errors.Wrapf(err, "failed to get sheet")
	}

	sum := sha256.Sum256(input.Data)
	digest := hex.EncodeToString(sum[:])

	img := &coc.Image{
		ID:         o.ids.Generate(),
		SheetID:    input.SheetID,
		BlobDigest: digest,
		MediaType:  mediaType,
		SizeBytes:  size,
		Width:      width,
		Height:     height,
		UploadedAt: o.clock.Now(),
	}

	var previousMain *coc.Image
	out, err := o.imageRepo.Apply(ctx, imagerepo.ApplyInput{
		SheetID: input.SheetID,
		Plan: func(current []*coc.Image) (*imagerepo.Changes, error) {
			if len(current)+1 > o.limits.MaxImagesPerSheet {
				return nil, errors.ImageQuotaExceededf("sheet already has %d images, limit is %d",
					len(current), o.limits.MaxImagesPerSheet)
			}
			total := size
			nextOrder := 0
			for _, c := range current {
				total += c.SizeBytes
				nextOrder = max(nextOrder, c.Order+1)
			}
			if total > o.limits.MaxTotalBytesPerSheet {
				return nil, errors.ImageQuotaExceededf("sheet images would total %d bytes, limit is %d",
					total, o.limits.MaxTotalBytesPerSheet)
			}

			img.Order = nextOrder
			if input.Order != nil {
				img.Order = *input.Order
			}
			img.IsMain = input.IsMain || len(current) == 0

			changes := &imagerepo.Changes{
				Put:  []*coc.Image{img},
				Blob: &imagerepo.Blob{Digest: digest, Data: input.Data},
			}
			if img.IsMain {
				previousMain = mainOf(current)
				changes.Put = append(changes.Put, demote(current, img.ID)...)
			}
			return changes, nil
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to attach image")
	}

	if img.IsMain {
		o.publishPrimary(ctx, img, previousMain)
	}

	slog.InfoContext(ctx, "attached image",
		"sheet_id", input.SheetID,
		"image_id", img.ID,
		"media_type", img.MediaType,
		"size_bytes", size,
		"is_main", img.IsMain)

	return &AttachOutput{Image: img, Images: out.Images}, nil
}

// Promote makes an image primary and clears the flag on every other image
func (o *orchestrator) Promote(ctx context.Context, input *PromoteInput) (*PromoteOutput, error) {
	if input == nil || input.SheetID == "" || input.ImageID == "" {
		return nil, errors.InvalidArgument("sheet ID and image ID are required")
	}

	var promoted, previousMain *coc.Image
	out, err := o.imageRepo.Apply(ctx, imagerepo.ApplyInput{
		SheetID: input.SheetID,
		Plan: func(current []*coc.Image) (*imagerepo.Changes, error) {
			target := find(current, input.ImageID)
			if target == nil {
				return nil, errors.NotFoundf("image %s not found on sheet %s", input.ImageID, input.SheetID)
			}
			previousMain = mainOf(current)
			promoted = target.Clone()
			if target.IsMain {
				return nil, nil
			}
			promoted.IsMain = true
			return &imagerepo.Changes{
				Put: append([]*coc.Image{promoted}, demote(current, promoted.ID)...),
			}, nil
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to promote image")
	}

	if previousMain == nil || previousMain.ID != promoted.ID {
		o.publishPrimary(ctx, promoted, previousMain)
	}

	return &PromoteOutput{Image: promoted, Images: out.Images}, nil
}

// Delete removes an image. Removing the primary promotes the remaining image
// with the lowest order.
func (o *orchestrator) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.SheetID == "" || input.ImageID == "" {
		return nil, errors.InvalidArgument("sheet ID and image ID are required")
	}

	var removed, promoted *coc.Image
	out, err := o.imageRepo.Apply(ctx, imagerepo.ApplyInput{
		SheetID: input.SheetID,
		Plan: func(current []*coc.Image) (*imagerepo.Changes, error) {
			removed = find(current, input.ImageID)
			if removed == nil {
				return nil, errors.NotFoundf("image %s not found on sheet %s", input.ImageID, input.SheetID)
			}
			changes := &imagerepo.Changes{Remove: []*coc.Image{removed}}
			if !removed.IsMain {
				return changes, nil
			}
			// current is sorted by order, so the first survivor is the lowest
			for _, c := range current {
				if c.ID != removed.ID {
					promoted = c.Clone()
					promoted.IsMain = true
					changes.Put = []*coc.Image{promoted}
					break
				}
			}
			return changes, nil
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete image")
	}

	if promoted != nil {
		o.publishPrimary(ctx, promoted, removed)
	}

	slog.InfoContext(ctx, "deleted image",
		"sheet_id", input.SheetID,
		"image_id", input.ImageID,
		"promoted", promoted != nil)

	return &DeleteOutput{Promoted: promoted, Images: out.Images}, nil
}

// List returns a sheet's images sorted by order
func (o *orchestrator) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil || input.SheetID == "" {
		return nil, errors.InvalidArgument("sheet ID is required")
	}

	out, err := o.imageRepo.List(ctx, imagerepo.ListInput{SheetID: input.SheetID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list images")
	}

	return &ListOutput{Images: out.Images}, nil
}

// GetBlob returns an image's metadata and bytes
func (o *orchestrator) GetBlob(ctx context.Context, input *GetBlobInput) (*GetBlobOutput, error) {
	if input == nil || input.SheetID == "" || input.ImageID == "" {
		return nil, errors.InvalidArgument("sheet ID and image ID are required")
	}

	meta, err := o.imageRepo.Get(ctx, imagerepo.GetInput{SheetID: input.SheetID, ImageID: input.ImageID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get image")
	}

	blob, err := o.imageRepo.GetBlob(ctx, imagerepo.GetBlobInput{Digest: meta.Image.BlobDigest})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read image %s", input.ImageID)
	}

	return &GetBlobOutput{Image: meta.Image, Data: blob.Data}, nil
}

// sniff decodes only the image header to learn its format and dimensions
func (o *orchestrator) sniff(data []byte) (coc.MediaType, int, int, error) {
	cfg, format, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, errors.InvalidArgument("image data is not a recognised jpeg, png or gif")
	}

	mediaType, ok := coc.MediaTypeFromFormat(format)
	if !ok || !o.limits.allows(mediaType) {
		return "", 0, 0, errors.InvalidArgumentf("media type %q is not allowed", format)
	}

	return mediaType, cfg.Width, cfg.Height, nil
}

func (o *orchestrator) publishPrimary(ctx context.Context, img, previous *coc.Image) {
	data := map[string]any{}
	if previous != nil {
		data[rpgtoolkit.KeyPreviousID] = previous.ID
	}
	sheet := &coc.Sheet{ID: img.SheetID}
	if err := o.publisher.Publish(ctx, rpgtoolkit.EventPrimaryImageChanged,
		rpgtoolkit.WrapImage(img), rpgtoolkit.WrapSheet(sheet), data); err != nil {
		slog.WarnContext(ctx, "failed to publish primary image change",
			"sheet_id", img.SheetID,
			"image_id", img.ID,
			"error", err)
	}
}

func find(images []*coc.Image, id string) *coc.Image {
	for _, img := range images {
		if img.ID == id {
			return img
		}
	}
	return nil
}

func mainOf(images []*coc.Image) *coc.Image {
	for _, img := range images {
		if img.IsMain {
			return img
		}
	}
	return nil
}

// demote returns copies of every primary image other than keepID with the flag cleared
func demote(images []*coc.Image, keepID string) []*coc.Image {
	var out []*coc.Image
	for _, img := range images {
		if img.IsMain && img.ID != keepID {
			c := img.Clone()
			c.IsMain = false
			out = append(out, c)
		}
	}
	return out
}
