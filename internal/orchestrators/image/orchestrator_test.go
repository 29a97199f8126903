package image_test

import (
	"bytes"
	"context"
	stdimage "image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit"
	rpgtoolkitmock "github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit/mock"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/image"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	imagerepo "github.com/KirkDiggler/coc-api/internal/repositories/image"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	"github.com/KirkDiggler/coc-api/internal/testutils"
	"github.com/KirkDiggler/coc-api/internal/testutils/mocks"
	"github.com/KirkDiggler/coc-api/internal/testutils/stack"
)

type ImageOrchestratorTestSuite struct {
	suite.Suite

	ctrl          *gomock.Controller
	mockPublisher *rpgtoolkitmock.MockPublisher
	stack         *stack.Stack
	orchestrator  image.Service
	ctx           context.Context
	sheetID       string
}

func (s *ImageOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockPublisher = rpgtoolkitmock.NewMockPublisher(s.ctrl)
	s.stack = stack.New(s.T())
	s.ctx = context.Background()

	var err error
	s.orchestrator, err = image.New(&image.Config{
		SheetRepo:   s.stack.Sheets,
		ImageRepo:   s.stack.Images,
		Clock:       s.stack.Clock,
		IDGenerator: idgen.NewSequential(idgen.PrefixImage),
		Publisher:   s.mockPublisher,
	})
	s.Require().NoError(err)

	sheet := testutils.CreateTestSheet(coc.EditionSixth)
	out, err := s.stack.Sheets.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)
	s.sheetID = out.Sheet.ID
}

func (s *ImageOrchestratorTestSuite) TearDownTest() {
	s.stack.Close()
	s.ctrl.Finish()
}

// pngOfSize returns a valid 1x1 png padded with trailing bytes to size.
// Only the header is decoded, so the padding is never read.
func (s *ImageOrchestratorTestSuite) pngOfSize(size int, shade uint8) []byte {
	img := stdimage.NewGray(stdimage.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: shade})

	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, img))
	s.Require().LessOrEqual(buf.Len(), size)

	return append(buf.Bytes(), make([]byte, size-buf.Len())...)
}

func (s *ImageOrchestratorTestSuite) smallPNG(shade uint8) []byte {
	return s.pngOfSize(128, shade)
}

func (s *ImageOrchestratorTestSuite) attach(data []byte, isMain bool) *image.AttachOutput {
	out, err := s.orchestrator.Attach(s.ctx, &image.AttachInput{SheetID: s.sheetID, Data: data, IsMain: isMain})
	s.Require().NoError(err)
	return out
}

func mainCount(images []*coc.Image) int {
	n := 0
	for _, img := range images {
		if img.IsMain {
			n++
		}
	}
	return n
}

func (s *ImageOrchestratorTestSuite) TestAttach_FirstImageIsPrimary() {
	mocks.ExpectPublishFrom(s.mockPublisher, rpgtoolkit.EventPrimaryImageChanged, "img_1")

	out := s.attach(s.smallPNG(1), false)
	s.True(out.Image.IsMain)
	s.Equal(coc.MediaTypePNG, out.Image.MediaType)
	s.Equal(1, out.Image.Width)
	s.Equal(1, out.Image.Height)
	s.Equal(0, out.Image.Order)
	s.Equal(stack.Epoch, out.Image.UploadedAt)
	s.Len(out.Image.BlobDigest, 64)

	second := s.attach(s.smallPNG(2), false)
	s.False(second.Image.IsMain)
	s.Equal(1, second.Image.Order)
	s.Equal(1, mainCount(second.Images))
}

func (s *ImageOrchestratorTestSuite) TestAttach_MainClearsPrevious() {
	var previous any
	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventPrimaryImageChanged)
	first := s.attach(s.smallPNG(1), false)

	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventPrimaryImageChanged).
		Do(func(_ context.Context, _ string, _, _ core.Entity, data map[string]any) {
			previous = data[rpgtoolkit.KeyPreviousID]
		})
	second := s.attach(s.smallPNG(2), true)

	s.True(second.Image.IsMain)
	s.Equal(1, mainCount(second.Images))
	s.Equal(first.Image.ID, previous)

	list, err := s.orchestrator.List(s.ctx, &image.ListInput{SheetID: s.sheetID})
	s.Require().NoError(err)
	s.Require().Len(list.Images, 2)
	s.False(list.Images[0].IsMain)
	s.True(list.Images[1].IsMain)
}

func (s *ImageOrchestratorTestSuite) TestAttach_GIF() {
	mocks.AllowAnyPublish(s.mockPublisher)

	var buf bytes.Buffer
	palette := color.Palette{color.Black, color.White}
	s.Require().NoError(gif.Encode(&buf, stdimage.NewPaletted(stdimage.Rect(0, 0, 3, 2), palette), nil))

	out := s.attach(buf.Bytes(), false)
	s.Equal(coc.MediaTypeGIF, out.Image.MediaType)
	s.Equal(3, out.Image.Width)
	s.Equal(2, out.Image.Height)
}

func (s *ImageOrchestratorTestSuite) TestAttach_Rejections() {
	testCases := []struct {
		name  string
		input *image.AttachInput
		check func(error) bool
	}{
		{
			name:  "empty data",
			input: &image.AttachInput{SheetID: s.sheetID},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "not an image",
			input: &image.AttachInput{SheetID: s.sheetID, Data: []byte("%PDF-1.4 definitely not a picture")},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "negative order",
			input: &image.AttachInput{SheetID: s.sheetID, Data: s.smallPNG(1), Order: func() *int { v := -1; return &v }()},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "single file over 5 MiB",
			input: &image.AttachInput{SheetID: s.sheetID, Data: s.pngOfSize(image.DefaultMaxImageBytes+1, 1)},
			check: errors.IsImageQuotaExceeded,
		},
		{
			name:  "unknown sheet",
			input: &image.AttachInput{SheetID: "sheet_missing", Data: s.smallPNG(1)},
			check: errors.IsNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.Attach(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), "got %v", err)
		})
	}
}

func (s *ImageOrchestratorTestSuite) TestAttach_CountQuota() {
	mocks.AllowAnyPublish(s.mockPublisher)

	for i := 0; i < image.DefaultMaxImagesPerSheet; i++ {
		s.attach(s.smallPNG(uint8(i)), false)
	}

	_, err := s.orchestrator.Attach(s.ctx, &image.AttachInput{SheetID: s.sheetID, Data: s.smallPNG(99)})
	s.Require().Error(err)
	s.True(errors.IsImageQuotaExceeded(err), "got %v", err)

	list, err := s.orchestrator.List(s.ctx, &image.ListInput{SheetID: s.sheetID})
	s.Require().NoError(err)
	s.Len(list.Images, image.DefaultMaxImagesPerSheet)
}

func (s *ImageOrchestratorTestSuite) TestAttach_TotalBytesQuota() {
	mocks.AllowAnyPublish(s.mockPublisher)

	// Six 5 MiB images share one blob and reach the 30 MiB total exactly
	full := s.pngOfSize(image.DefaultMaxImageBytes, 7)
	for i := 0; i < 6; i++ {
		s.attach(full, false)
	}

	_, err := s.orchestrator.Attach(s.ctx, &image.AttachInput{SheetID: s.sheetID, Data: s.smallPNG(8)})
	s.Require().Error(err)
	s.True(errors.IsImageQuotaExceeded(err), "got %v", err)
}

func (s *ImageOrchestratorTestSuite) TestPromote() {
	mocks.AllowAnyPublish(s.mockPublisher)

	first := s.attach(s.smallPNG(1), false)
	second := s.attach(s.smallPNG(2), false)

	out, err := s.orchestrator.Promote(s.ctx, &image.PromoteInput{SheetID: s.sheetID, ImageID: second.Image.ID})
	s.Require().NoError(err)
	s.True(out.Image.IsMain)
	s.Equal(1, mainCount(out.Images))

	// Promoting the current primary is a no-op
	again, err := s.orchestrator.Promote(s.ctx, &image.PromoteInput{SheetID: s.sheetID, ImageID: second.Image.ID})
	s.Require().NoError(err)
	s.Equal(1, mainCount(again.Images))

	_, err = s.orchestrator.Promote(s.ctx, &image.PromoteInput{SheetID: s.sheetID, ImageID: "img_missing"})
	s.True(errors.IsNotFound(err))

	list, err := s.orchestrator.List(s.ctx, &image.ListInput{SheetID: s.sheetID})
	s.Require().NoError(err)
	s.Equal(first.Image.ID, list.Images[0].ID)
	s.False(list.Images[0].IsMain)
}

func (s *ImageOrchestratorTestSuite) TestDelete_PromotesLowestOrder() {
	mocks.AllowAnyPublish(s.mockPublisher)

	first := s.attach(s.smallPNG(1), false)
	s.attach(s.smallPNG(2), false)
	third := s.attach(s.smallPNG(3), false)

	// An explicit order places this one last
	_, err := s.orchestrator.Attach(s.ctx, &image.AttachInput{
		SheetID: s.sheetID,
		Data:    s.smallPNG(4),
		Order:   func() *int { v := 10; return &v }(),
	})
	s.Require().NoError(err)

	out, err := s.orchestrator.Delete(s.ctx, &image.DeleteInput{SheetID: s.sheetID, ImageID: first.Image.ID})
	s.Require().NoError(err)
	s.Require().NotNil(out.Promoted)
	s.Equal(1, out.Promoted.Order)
	s.Len(out.Images, 3)
	s.Equal(1, mainCount(out.Images))

	// Deleting a non-primary image promotes nothing
	out, err = s.orchestrator.Delete(s.ctx, &image.DeleteInput{SheetID: s.sheetID, ImageID: third.Image.ID})
	s.Require().NoError(err)
	s.Nil(out.Promoted)
	s.Equal(1, mainCount(out.Images))

	_, err = s.orchestrator.Delete(s.ctx, &image.DeleteInput{SheetID: s.sheetID, ImageID: third.Image.ID})
	s.True(errors.IsNotFound(err))
}

func (s *ImageOrchestratorTestSuite) TestDelete_LastImage() {
	mocks.AllowAnyPublish(s.mockPublisher)
	only := s.attach(s.smallPNG(1), false)

	out, err := s.orchestrator.Delete(s.ctx, &image.DeleteInput{SheetID: s.sheetID, ImageID: only.Image.ID})
	s.Require().NoError(err)
	s.Nil(out.Promoted)
	s.Empty(out.Images)

	_, err = s.stack.Images.GetBlob(s.ctx, imagerepo.GetBlobInput{Digest: only.Image.BlobDigest})
	s.True(errors.IsNotFound(err), "the last reference releases the blob")
}

func (s *ImageOrchestratorTestSuite) TestGetBlob() {
	mocks.AllowAnyPublish(s.mockPublisher)
	data := s.smallPNG(5)
	att := s.attach(data, false)

	out, err := s.orchestrator.GetBlob(s.ctx, &image.GetBlobInput{SheetID: s.sheetID, ImageID: att.Image.ID})
	s.Require().NoError(err)
	s.Equal(data, out.Data)
	s.Equal(att.Image.ID, out.Image.ID)

	_, err = s.orchestrator.GetBlob(s.ctx, &image.GetBlobInput{SheetID: s.sheetID, ImageID: "img_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *ImageOrchestratorTestSuite) TestNew_RejectsUnsupportedMediaType() {
	_, err := image.New(&image.Config{
		SheetRepo: s.stack.Sheets,
		ImageRepo: s.stack.Images,
		Limits:    image.Limits{AllowedMediaTypes: []coc.MediaType{"image/webp"}},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ImageOrchestratorTestSuite) TestAllowedMediaTypes() {
	mocks.AllowAnyPublish(s.mockPublisher)

	gifOnly, err := image.New(&image.Config{
		SheetRepo: s.stack.Sheets,
		ImageRepo: s.stack.Images,
		Limits:    image.Limits{AllowedMediaTypes: []coc.MediaType{coc.MediaTypeGIF}},
	})
	s.Require().NoError(err)

	_, err = gifOnly.Attach(s.ctx, &image.AttachInput{SheetID: s.sheetID, Data: s.smallPNG(1)})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestImageOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(ImageOrchestratorTestSuite))
}
