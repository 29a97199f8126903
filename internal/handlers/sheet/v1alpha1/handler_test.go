package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/base64"
	stdimage "image"
	"image/png"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/coc-api/internal/engine"
	"github.com/KirkDiggler/coc-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/character"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/dice"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/export"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/image"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/version"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	"github.com/KirkDiggler/coc-api/internal/testutils"
	"github.com/KirkDiggler/coc-api/internal/testutils/stack"
)

// fixedRoller always lands on the same face, capped by the die size
type fixedRoller struct {
	face int
}

func (r *fixedRoller) Roll(size int) (int, error) {
	return min(r.face, size), nil
}

func (r *fixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = min(r.face, size)
	}
	return out, nil
}

type HandlerTestSuite struct {
	suite.Suite

	stack    *stack.Stack
	handler  *v1alpha1.Handler
	server   *grpc.Server
	listener *bufconn.Listener
	conn     *grpc.ClientConn
	ctx      context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stack = stack.New(s.T())

	eng, err := engine.New(nil)
	s.Require().NoError(err)

	characters, err := character.New(&character.Config{
		SheetRepo:        s.stack.Sheets,
		SkillRepo:        s.stack.Skills,
		EquipmentRepo:    s.stack.Equipment,
		ImageRepo:        s.stack.Images,
		Engine:           eng,
		Clock:            s.stack.Clock,
		SheetIDGenerator: idgen.NewSequential(idgen.PrefixSheet),
		SkillIDGenerator: idgen.NewSequential(idgen.PrefixSkill),
	})
	s.Require().NoError(err)

	versions, err := version.New(&version.Config{
		SheetRepo:        s.stack.Sheets,
		SkillRepo:        s.stack.Skills,
		ImageRepo:        s.stack.Images,
		Engine:           eng,
		SheetIDGenerator: idgen.NewSequential("ver"),
	})
	s.Require().NoError(err)

	exports, err := export.New(&export.Config{
		SheetRepo:  s.stack.Sheets,
		SkillRepo:  s.stack.Skills,
		Characters: characters,
		Clock:      s.stack.Clock,
	})
	s.Require().NoError(err)

	diceSvc, err := dice.NewOrchestrator(&dice.Config{
		SettingRepo: s.stack.DiceSettings,
		SessionRepo: s.stack.DiceSessions,
		Roller:      &fixedRoller{face: 4},
		IDGenerator: idgen.NewSequential(idgen.PrefixDiceSetting),
	})
	s.Require().NoError(err)

	images, err := image.New(&image.Config{
		SheetRepo:   s.stack.Sheets,
		ImageRepo:   s.stack.Images,
		Clock:       s.stack.Clock,
		IDGenerator: idgen.NewSequential(idgen.PrefixImage),
	})
	s.Require().NoError(err)

	s.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		CharacterService: characters,
		VersionService:   versions,
		ExportService:    exports,
		DiceService:      diceSvc,
		ImageService:     images,
	})
	s.Require().NoError(err)

	s.listener = bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterSheetServiceServer(s.server, s.handler)
	go func() {
		_ = s.server.Serve(s.listener)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.stack.Close()
}

func (s *HandlerTestSuite) TestServiceInfo() {
	info, ok := s.server.GetServiceInfo()[v1alpha1.ServiceName]
	s.Require().True(ok)
	s.Len(info.Methods, 15)
	s.Nil(info.Metadata, "no proto file backs the service")
}

func (s *HandlerTestSuite) invoke(ctx context.Context, method string, body map[string]any) (map[string]any, error) {
	req, err := structpb.NewStruct(body)
	s.Require().NoError(err)

	resp := &structpb.Struct{}
	if err := s.conn.Invoke(ctx, method, req, resp); err != nil {
		return nil, err
	}
	return resp.AsMap(), nil
}

func sixthAbilities() map[string]any {
	out := map[string]any{}
	for tag, v := range testutils.SixthEditionAbilities().ToMap() {
		out[tag.String()] = v
	}
	return out
}

func (s *HandlerTestSuite) createSheet(name string) string {
	resp, err := s.invoke(s.ctx, v1alpha1.MethodCreateSheet, map[string]any{
		"owner_id":  testutils.TestOwnerID,
		"name":      name,
		"edition":   "6th",
		"age":       35,
		"abilities": sixthAbilities(),
		"skills": []any{
			map[string]any{"name": "Library Use", "base": 20, "occupation": 25},
		},
	})
	s.Require().NoError(err)

	sheet := resp["sheet"].(map[string]any)
	return sheet["id"].(string)
}

func (s *HandlerTestSuite) TestNewHandler_MissingDependencies() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(nil)
	s.Require().Error(err)
}

func (s *HandlerTestSuite) TestCreateAndGetSheet() {
	id := s.createSheet(testutils.TestSheetName)

	resp, err := s.invoke(s.ctx, v1alpha1.MethodGetSheet, map[string]any{"sheet_id": id})
	s.Require().NoError(err)

	sheet := resp["sheet"].(map[string]any)
	s.Equal(testutils.TestSheetName, sheet["name"])
	s.Equal(float64(13), sheet["hp_max"])
	s.Equal(float64(1), sheet["version"])

	skills := resp["skills"].([]any)
	s.Require().Len(skills, 1)
	s.Equal(float64(45), skills[0].(map[string]any)["current"])
}

func (s *HandlerTestSuite) TestCreateSheet_BadBody() {
	_, err := s.invoke(s.ctx, v1alpha1.MethodCreateSheet, map[string]any{
		"owner_id":  testutils.TestOwnerID,
		"name":      "Harvey",
		"abilities": "strong",
	})
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.invoke(s.ctx, v1alpha1.MethodCreateSheet, map[string]any{"name": "Harvey"})
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestGetSheet_LocalisedNotFound() {
	s.Run("english by default", func() {
		_, err := s.invoke(s.ctx, v1alpha1.MethodGetSheet, map[string]any{"sheet_id": "sheet_missing"})
		s.Require().Error(err)
		st := status.Convert(err)
		s.Equal(codes.NotFound, st.Code())
		s.True(strings.HasPrefix(st.Message(), "not found: "), st.Message())
	})

	s.Run("japanese from accept-language", func() {
		ctx := metadata.AppendToOutgoingContext(s.ctx, v1alpha1.AcceptLanguageKey, "ja-JP,ja;q=0.9,en;q=0.5")
		_, err := s.invoke(ctx, v1alpha1.MethodGetSheet, map[string]any{"sheet_id": "sheet_missing"})
		s.Require().Error(err)
		st := status.Convert(err)
		s.Equal(codes.NotFound, st.Code())
		s.True(strings.HasPrefix(st.Message(), "見つかりません: "), st.Message())
	})
}

func (s *HandlerTestSuite) TestExportVTT() {
	id := s.createSheet(testutils.TestSheetName)

	resp, err := s.invoke(s.ctx, v1alpha1.MethodExportVTT, map[string]any{"sheet_id": id})
	s.Require().NoError(err)

	s.Equal("character", resp["kind"])
	data := resp["data"].(map[string]any)
	s.Len(data["params"], 8)
	s.Len(data["status"], 3)

	lines := strings.Split(data["commands"].(string), "\n")
	s.Contains(lines, "CCB<=375 【アイデア】")
	s.Contains(lines, "CCB<=45 【Library Use】")
}

func (s *HandlerTestSuite) TestExportVTTBulk() {
	id := s.createSheet(testutils.TestSheetName)

	resp, err := s.invoke(s.ctx, v1alpha1.MethodExportVTTBulk, map[string]any{
		"sheet_ids": []any{id, "sheet_missing"},
	})
	s.Require().NoError(err)

	results := resp["results"].([]any)
	s.Require().Len(results, 2)
	s.Equal("character", results[0].(map[string]any)["kind"])

	failed := results[1].(map[string]any)
	s.Equal(true, failed["error"])
	s.Equal("sheet_missing", failed["character_id"])
	s.NotEmpty(failed["error_message"])
}

func (s *HandlerTestSuite) TestVersionFlow() {
	id := s.createSheet(testutils.TestSheetName)

	resp, err := s.invoke(s.ctx, v1alpha1.MethodCreateVersion, map[string]any{
		"sheet_id":          id,
		"version_note":      "after the asylum",
		"copy_skills":       true,
		"ability_overrides": map[string]any{"siz": 80},
	})
	s.Require().NoError(err)
	child := resp["sheet"].(map[string]any)
	s.Equal(float64(2), child["version"])
	s.Equal(float64(15), child["hp_max"])
	childID := child["id"].(string)

	history, err := s.invoke(s.ctx, v1alpha1.MethodHistory, map[string]any{"sheet_id": childID})
	s.Require().NoError(err)
	s.Len(history["versions"], 2)
	s.Equal(float64(2), history["latest_version"])

	diff, err := s.invoke(s.ctx, v1alpha1.MethodDiff, map[string]any{"from_id": id, "to_id": childID})
	s.Require().NoError(err)
	s.Equal(false, diff["empty"])
	abilities := diff["diff"].(map[string]any)["abilities"].(map[string]any)
	s.Equal(float64(20), abilities["siz"].(map[string]any)["delta"])

	rolled, err := s.invoke(s.ctx, v1alpha1.MethodRollback, map[string]any{"current_id": childID, "target_id": id})
	s.Require().NoError(err)
	back := rolled["sheet"].(map[string]any)
	s.Equal(float64(3), back["version"])
	s.Equal("rolled back from v1", back["version_note"])
	s.Equal(float64(13), back["hp_max"])
}

func (s *HandlerTestSuite) TestCreateVersion_UnknownAbilityOverride() {
	id := s.createSheet(testutils.TestSheetName)

	_, err := s.invoke(s.ctx, v1alpha1.MethodCreateVersion, map[string]any{
		"sheet_id":          id,
		"ability_overrides": map[string]any{"luck": 50},
	})
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
	s.True(errors.IsInvalidArgument(errors.FromGRPCError(err)))
}

func (s *HandlerTestSuite) TestSnapshotRoundTrip() {
	id := s.createSheet(testutils.TestSheetName)

	snapshot, err := s.invoke(s.ctx, v1alpha1.MethodExportSnapshot, map[string]any{"sheet_id": id})
	s.Require().NoError(err)
	s.Equal("1.0", snapshot["export_version"])

	resp, err := s.invoke(s.ctx, v1alpha1.MethodImportSnapshot, map[string]any{
		"owner_id": testutils.TestOwnerID,
		"new_name": "Harvey Walters (copy)",
		"snapshot": snapshot,
	})
	s.Require().NoError(err)

	sheet := resp["sheet"].(map[string]any)
	s.Equal("Harvey Walters (copy)", sheet["name"])
	s.Equal(float64(1), sheet["version"])
	s.Len(resp["skills"], 1)

	_, err = s.invoke(s.ctx, v1alpha1.MethodImportSnapshot, map[string]any{
		"owner_id": testutils.TestOwnerID,
		"snapshot": map[string]any{"character_info": map[string]any{"name": "No Abilities"}},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidImport(errors.FromGRPCError(err)))
}

func (s *HandlerTestSuite) TestRollAbilitiesThenCreate() {
	rolled, err := s.invoke(s.ctx, v1alpha1.MethodRollAbilities, map[string]any{"owner_id": testutils.TestOwnerID})
	s.Require().NoError(err)

	values := rolled["values"].(map[string]any)
	s.Len(values, 8)
	s.Equal(float64(12), values["str"])
	s.Len(rolled["rolls"], 8)
	s.NotEmpty(rolled["setting_id"])

	resp, err := s.invoke(s.ctx, v1alpha1.MethodCreateSheet, map[string]any{
		"owner_id":          testutils.TestOwnerID,
		"name":              "Rolled Investigator",
		"from_roll_session": true,
	})
	s.Require().NoError(err)

	abilities := resp["sheet"].(map[string]any)["abilities"].(map[string]any)
	s.Equal(float64(60), abilities["str"])
	s.Equal(float64(70), abilities["siz"])
}

func (s *HandlerTestSuite) encodedPNG() string {
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, stdimage.NewGray(stdimage.Rect(0, 0, 2, 3))))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func (s *HandlerTestSuite) TestImageFlow() {
	id := s.createSheet(testutils.TestSheetName)

	first, err := s.invoke(s.ctx, v1alpha1.MethodAttachImage, map[string]any{
		"sheet_id": id,
		"data":     s.encodedPNG(),
	})
	s.Require().NoError(err)
	firstImage := first["image"].(map[string]any)
	s.Equal(true, firstImage["is_main"])
	s.Equal("image/png", firstImage["media_type"])
	s.Equal(float64(2), firstImage["width"])
	s.Equal(float64(3), firstImage["height"])

	second, err := s.invoke(s.ctx, v1alpha1.MethodAttachImage, map[string]any{
		"sheet_id": id,
		"data":     s.encodedPNG(),
	})
	s.Require().NoError(err)
	secondID := second["image"].(map[string]any)["id"].(string)
	s.Equal(false, second["image"].(map[string]any)["is_main"])

	promoted, err := s.invoke(s.ctx, v1alpha1.MethodPromoteImage, map[string]any{
		"sheet_id": id,
		"image_id": secondID,
	})
	s.Require().NoError(err)
	s.Equal(true, promoted["image"].(map[string]any)["is_main"])

	deleted, err := s.invoke(s.ctx, v1alpha1.MethodDeleteImage, map[string]any{
		"sheet_id": id,
		"image_id": secondID,
	})
	s.Require().NoError(err)
	s.Equal(firstImage["id"], deleted["promoted"].(map[string]any)["id"])

	listed, err := s.invoke(s.ctx, v1alpha1.MethodListImages, map[string]any{"sheet_id": id})
	s.Require().NoError(err)
	s.Len(listed["images"].([]any), 1)
}

func (s *HandlerTestSuite) TestAttachImage_RejectsNonImage() {
	id := s.createSheet(testutils.TestSheetName)

	_, err := s.invoke(s.ctx, v1alpha1.MethodAttachImage, map[string]any{
		"sheet_id": id,
		"data":     base64.StdEncoding.EncodeToString([]byte("not an image")),
	})
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestLanguageFromContext() {
	testCases := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{name: "no metadata", header: "", want: language.English},
		{name: "japanese", header: "ja", want: language.Japanese},
		{name: "regional japanese", header: "ja-JP", want: language.Japanese},
		{name: "unsupported falls back", header: "fr-FR", want: language.English},
		{name: "malformed falls back", header: ";;;", want: language.English},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			ctx := s.ctx
			if tc.header != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(v1alpha1.AcceptLanguageKey, tc.header))
			}
			s.Equal(tc.want, v1alpha1.LanguageFromContext(ctx))
		})
	}
}
