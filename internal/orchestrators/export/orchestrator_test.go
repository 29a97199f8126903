package export_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/coc-api/internal/engine"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/character"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/export"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	sheetrepo "github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	sheetmock "github.com/KirkDiggler/coc-api/internal/repositories/sheet/mock"
	"github.com/KirkDiggler/coc-api/internal/services/conversion"
	"github.com/KirkDiggler/coc-api/internal/testutils"
	"github.com/KirkDiggler/coc-api/internal/testutils/stack"
)

type ExportOrchestratorTestSuite struct {
	suite.Suite

	ctrl       *gomock.Controller
	stack      *stack.Stack
	characters *character.Orchestrator
	ctx        context.Context
}

func (s *ExportOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.stack = stack.New(s.T())
	s.ctx = context.Background()

	eng, err := engine.New(nil)
	s.Require().NoError(err)

	s.characters, err = character.New(&character.Config{
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
}

func (s *ExportOrchestratorTestSuite) TearDownTest() {
	s.stack.Close()
	s.ctrl.Finish()
}

func (s *ExportOrchestratorTestSuite) newService(syncEnabled bool) export.Service {
	svc, err := export.New(&export.Config{
		SheetRepo:   s.stack.Sheets,
		SkillRepo:   s.stack.Skills,
		Characters:  s.characters,
		Clock:       s.stack.Clock,
		SyncEnabled: syncEnabled,
	})
	s.Require().NoError(err)
	return svc
}

func intPtr(v int) *int { return &v }

func (s *ExportOrchestratorTestSuite) createSixth(name string, skills ...character.SkillInput) *coc.Sheet {
	out, err := s.characters.CreateSheet(s.ctx, &character.CreateSheetInput{
		OwnerID:        testutils.TestOwnerID,
		Name:           name,
		Edition:        coc.EditionSixth,
		Biography:      character.Biography{PlayerName: testutils.TestPlayer, Age: 35, Occupation: "Professor"},
		Abilities:      testutils.SixthEditionAbilities(),
		MentalDisorder: "claustrophobia",
		Skills:         skills,
	})
	s.Require().NoError(err)
	return out.Sheet
}

func libraryUse() character.SkillInput {
	return character.SkillInput{Name: "Library Use", Base: intPtr(20), Occupation: intPtr(25)}
}

func (s *ExportOrchestratorTestSuite) TestNew() {
	testCases := []struct {
		name string
		cfg  *export.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "missing sheet repo", cfg: &export.Config{SkillRepo: s.stack.Skills, Characters: s.characters}},
		{name: "missing skill repo", cfg: &export.Config{SheetRepo: s.stack.Sheets, Characters: s.characters}},
		{name: "missing characters", cfg: &export.Config{SheetRepo: s.stack.Sheets, SkillRepo: s.stack.Skills}},
		{
			name: "negative concurrency",
			cfg: &export.Config{
				SheetRepo: s.stack.Sheets, SkillRepo: s.stack.Skills, Characters: s.characters,
				BulkConcurrency: -1,
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			svc, err := export.New(tc.cfg)
			s.Error(err)
			s.Nil(svc)
		})
	}
}

func (s *ExportOrchestratorTestSuite) TestSnapshotRoundTrip() {
	svc := s.newService(false)
	original := s.createSixth(testutils.TestSheetName,
		libraryUse(),
		character.SkillInput{Name: "Cthulhu Mythos", Other: intPtr(5)},
	)

	exported, err := svc.ExportSnapshot(s.ctx, &export.ExportSnapshotInput{SheetID: original.ID})
	s.Require().NoError(err)
	s.Equal(conversion.SnapshotVersion, exported.Snapshot.ExportVersion)

	data, err := json.Marshal(exported.Snapshot)
	s.Require().NoError(err)

	imported, err := svc.ImportSnapshot(s.ctx, &export.ImportSnapshotInput{
		OwnerID: "user-test-002",
		Data:    data,
	})
	s.Require().NoError(err)
	s.Equal(1, imported.Sheet.Version)
	s.Empty(imported.Sheet.ParentID)
	s.NotEqual(original.ID, imported.Sheet.ID)
	s.Equal(original.SanMax, imported.Sheet.SanMax)

	again, err := svc.ExportSnapshot(s.ctx, &export.ExportSnapshotInput{SheetID: imported.Sheet.ID})
	s.Require().NoError(err)
	s.Equal(exported.Snapshot.CharacterInfo, again.Snapshot.CharacterInfo)
	s.Equal(exported.Snapshot.Skills, again.Snapshot.Skills)
	s.Equal(exported.Snapshot.SixthEdition, again.Snapshot.SixthEdition)
}

func (s *ExportOrchestratorTestSuite) TestImportSnapshot_NewName() {
	svc := s.newService(false)
	original := s.createSixth(testutils.TestSheetName)

	exported, err := svc.ExportSnapshot(s.ctx, &export.ExportSnapshotInput{SheetID: original.ID})
	s.Require().NoError(err)
	data, err := json.Marshal(exported.Snapshot)
	s.Require().NoError(err)

	s.Run("same owner and name conflicts", func() {
		_, err := svc.ImportSnapshot(s.ctx, &export.ImportSnapshotInput{OwnerID: testutils.TestOwnerID, Data: data})
		s.Require().Error(err)
		s.True(errors.IsVersionConflict(err))
	})

	s.Run("renamed import starts a new tree", func() {
		out, err := svc.ImportSnapshot(s.ctx, &export.ImportSnapshotInput{
			OwnerID: testutils.TestOwnerID,
			Data:    data,
			NewName: "Harvey Walters (copy)",
		})
		s.Require().NoError(err)
		s.Equal("Harvey Walters (copy)", out.Sheet.Name)
		s.Equal(1, out.Sheet.Version)
	})
}

func (s *ExportOrchestratorTestSuite) TestImportSnapshot_SeventhEdition() {
	svc := s.newService(false)

	doc := `{
		"character_info": {
			"name": "Ruth Newman",
			"age": 45,
			"abilities": {"str":60,"con":50,"pow":50,"dex":60,"app":45,"siz":60,"int":70,"edu":65}
		},
		"skills": [{"name": "Psychology", "category": "social", "value": 55, "base": 10, "occupation": 45}],
		"seventh_edition": {"luck_points": 45, "beliefs": "The truth must be recorded"}
	}`

	out, err := svc.ImportSnapshot(s.ctx, &export.ImportSnapshotInput{OwnerID: testutils.TestOwnerID, Data: []byte(doc)})
	s.Require().NoError(err)

	s.Equal(coc.EditionSeventh, out.Sheet.Edition)
	s.Require().NotNil(out.Sheet.Seventh)
	s.Equal(45, out.Sheet.Seventh.LuckPoints)
	s.Equal("The truth must be recorded", out.Sheet.Seventh.Beliefs)
	s.Equal(11, out.Sheet.HPMax)

	s.Require().Len(out.Skills, 1)
	s.Equal(55, out.Skills[0].Current)
	s.Equal(27, out.Skills[0].Half)
	s.Equal(11, out.Skills[0].Fifth)
	s.Equal(0, out.Skills[0].Other)
}

func (s *ExportOrchestratorTestSuite) TestImportSnapshot_Rejections() {
	svc := s.newService(false)
	abilities := `{"str":65,"con":70,"pow":55,"dex":65,"app":50,"siz":60,"int":75,"edu":80}`

	testCases := []struct {
		name  string
		input *export.ImportSnapshotInput
		check func(error) bool
	}{
		{
			name:  "nil input",
			input: nil,
			check: errors.IsInvalidArgument,
		},
		{
			name:  "missing owner",
			input: &export.ImportSnapshotInput{Data: []byte(`{}`)},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "empty document",
			input: &export.ImportSnapshotInput{OwnerID: testutils.TestOwnerID},
			check: errors.IsInvalidImport,
		},
		{
			name: "missing abilities",
			input: &export.ImportSnapshotInput{
				OwnerID: testutils.TestOwnerID,
				Data:    []byte(`{"character_info": {"name": "Harvey"}}`),
			},
			check: errors.IsInvalidImport,
		},
		{
			name: "ability out of range",
			input: &export.ImportSnapshotInput{
				OwnerID: testutils.TestOwnerID,
				Data:    []byte(`{"character_info": {"name": "Harvey", "abilities": {"str":5,"con":70,"pow":55,"dex":65,"app":50,"siz":60,"int":75,"edu":80}}}`),
			},
			check: errors.IsInvalidImport,
		},
		{
			name: "negative skill pool",
			input: &export.ImportSnapshotInput{
				OwnerID: testutils.TestOwnerID,
				Data:    []byte(`{"character_info": {"name": "Harvey", "abilities": ` + abilities + `}, "skills": [{"name": "Spot Hidden", "base": -5}]}`),
			},
			check: errors.IsInvalidImport,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := svc.ImportSnapshot(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), "got %v", err)
		})
	}

	list, err := s.characters.ListSheets(s.ctx, &character.ListSheetsInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Empty(list.Sheets)
}

func (s *ExportOrchestratorTestSuite) TestExportVTT() {
	svc := s.newService(false)
	sheet := s.createSixth(testutils.TestSheetName, libraryUse())

	out, err := svc.ExportVTT(s.ctx, &export.ExportVTTInput{SheetID: sheet.ID})
	s.Require().NoError(err)

	s.Equal(conversion.VTTKindCharacter, out.Character.Kind)
	s.Contains(strings.Split(out.Character.Data.Commands, "\n"), "CCB<=45 【Library Use】")

	_, err = svc.ExportVTT(s.ctx, &export.ExportVTTInput{SheetID: "sheet_missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ExportOrchestratorTestSuite) TestExportVTTBulk() {
	svc := s.newService(false)
	first := s.createSixth("Harvey Walters")
	second := s.createSixth("Carl Stanford")

	out, err := svc.ExportVTTBulk(s.ctx, &export.ExportVTTBulkInput{
		SheetIDs: []string{first.ID, "sheet_missing", second.ID},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Results, 3)

	s.NoError(out.Results[0].Err)
	s.Equal("Harvey Walters", out.Results[0].Character.Data.Name)
	s.True(errors.IsNotFound(out.Results[1].Err))
	s.NoError(out.Results[2].Err)
	s.Equal("Carl Stanford", out.Results[2].Character.Data.Name)

	data, err := json.Marshal(out.Results)
	s.Require().NoError(err)

	var entries []map[string]any
	s.Require().NoError(json.Unmarshal(data, &entries))
	s.Require().Len(entries, 3)
	s.Equal("character", entries[0]["kind"])
	s.Equal(true, entries[1]["error"])
	s.Equal("sheet_missing", entries[1]["character_id"])
	s.Equal("", entries[1]["character_name"])
	s.NotEmpty(entries[1]["error_message"])
	s.Equal("character", entries[2]["kind"])
}

func (s *ExportOrchestratorTestSuite) TestExportVTTBulk_StorageFailure() {
	healthy := s.createSixth(testutils.TestSheetName)

	broken := healthy.Clone()
	broken.ID = "sheet_broken"
	broken.Name = "Broken Record"
	broken.Sixth = nil

	mockSheets := sheetmock.NewMockRepository(s.ctrl)
	mockSheets.EXPECT().
		Get(gomock.Any(), sheetrepo.GetInput{ID: healthy.ID}).
		Return(&sheetrepo.GetOutput{Sheet: healthy}, nil)
	mockSheets.EXPECT().
		Get(gomock.Any(), sheetrepo.GetInput{ID: "sheet_down"}).
		Return(nil, errors.IOFailure(context.DeadlineExceeded, "redis get"))
	mockSheets.EXPECT().
		Get(gomock.Any(), sheetrepo.GetInput{ID: broken.ID}).
		Return(&sheetrepo.GetOutput{Sheet: broken}, nil)

	svc, err := export.New(&export.Config{
		SheetRepo:       mockSheets,
		SkillRepo:       s.stack.Skills,
		Characters:      s.characters,
		BulkConcurrency: 1,
	})
	s.Require().NoError(err)

	out, err := svc.ExportVTTBulk(s.ctx, &export.ExportVTTBulkInput{
		SheetIDs: []string{healthy.ID, "sheet_down", broken.ID},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Results, 3)

	s.NoError(out.Results[0].Err)
	s.True(errors.IsIOFailure(out.Results[1].Err))
	s.Empty(out.Results[1].SheetName)
	s.True(errors.IsInvalidArgument(out.Results[2].Err))
	s.Equal("Broken Record", out.Results[2].SheetName)
	s.Nil(out.Results[2].Character)
}

func (s *ExportOrchestratorTestSuite) TestExportVTTBulk_Empty() {
	out, err := s.newService(false).ExportVTTBulk(s.ctx, &export.ExportVTTBulkInput{})
	s.Require().NoError(err)
	s.Empty(out.Results)
}

func (s *ExportOrchestratorTestSuite) TestSyncToVTT() {
	sheet := s.createSixth(testutils.TestSheetName)

	s.Run("globally disabled", func() {
		_, err := s.newService(false).SyncToVTT(s.ctx, &export.SyncToVTTInput{SheetID: sheet.ID})
		s.Require().Error(err)
		s.True(errors.IsSyncDisabled(err))
	})

	svc := s.newService(true)

	s.Run("sheet has not opted in", func() {
		out, err := svc.SyncToVTT(s.ctx, &export.SyncToVTTInput{SheetID: sheet.ID})
		s.Require().NoError(err)
		s.Equal(export.SyncStatusDisabled, out.Status)
		s.Nil(out.Character)
	})

	s.Run("opted in sheet is packaged", func() {
		enabled := true
		remoteID := "ccfolia-42"
		_, err := s.characters.UpdateSheet(s.ctx, &character.UpdateSheetInput{
			SheetID:        sheet.ID,
			VTTSyncEnabled: &enabled,
			VTTCharacterID: &remoteID,
		})
		s.Require().NoError(err)

		out, err := svc.SyncToVTT(s.ctx, &export.SyncToVTTInput{SheetID: sheet.ID})
		s.Require().NoError(err)
		s.Equal(export.SyncStatusReady, out.Status)
		s.Equal(remoteID, out.CharacterID)
		s.Require().NotNil(out.Character)
		s.Equal(sheet.Name, out.Character.Data.Name)
		s.True(stack.Epoch.Equal(out.SyncedAt))
	})
}

func (s *ExportOrchestratorTestSuite) TestResolveSyncConflict() {
	out, err := s.newService(false).ResolveSyncConflict(s.ctx, &export.ResolveSyncConflictInput{
		ConflictFields: []string{"abilities", "notes"},
	})
	s.Require().NoError(err)
	s.Equal(conversion.PolicyManualMerge, out.Resolution.Strategy)
	s.Equal(conversion.PolicyRemoteWins, out.Resolution.Fields["notes"])
}

func TestExportOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(ExportOrchestratorTestSuite))
}
