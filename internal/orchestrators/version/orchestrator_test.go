package version_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/coc-api/internal/engine"
	"github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit"
	rpgtoolkitmock "github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit/mock"
	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/character"
	"github.com/KirkDiggler/coc-api/internal/orchestrators/version"
	"github.com/KirkDiggler/coc-api/internal/pkg/idgen"
	imagerepo "github.com/KirkDiggler/coc-api/internal/repositories/image"
	"github.com/KirkDiggler/coc-api/internal/testutils"
	"github.com/KirkDiggler/coc-api/internal/testutils/mocks"
	"github.com/KirkDiggler/coc-api/internal/testutils/stack"
)

type VersionOrchestratorTestSuite struct {
	suite.Suite

	ctrl          *gomock.Controller
	mockPublisher *rpgtoolkitmock.MockPublisher
	stack         *stack.Stack
	characters    *character.Orchestrator
	orchestrator  version.Service
	ctx           context.Context
}

func (s *VersionOrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockPublisher = rpgtoolkitmock.NewMockPublisher(s.ctrl)
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
		SheetIDGenerator: idgen.NewSequential("root"),
	})
	s.Require().NoError(err)

	s.orchestrator, err = version.New(&version.Config{
		SheetRepo:        s.stack.Sheets,
		SkillRepo:        s.stack.Skills,
		ImageRepo:        s.stack.Images,
		Engine:           eng,
		SheetIDGenerator: idgen.NewSequential(idgen.PrefixSheet),
		SkillIDGenerator: idgen.NewSequential(idgen.PrefixSkill),
		ImageIDGenerator: idgen.NewSequential(idgen.PrefixImage),
		Publisher:        s.mockPublisher,
	})
	s.Require().NoError(err)
}

func (s *VersionOrchestratorTestSuite) TearDownTest() {
	s.stack.Close()
	s.ctrl.Finish()
}

func intPtr(v int) *int { return &v }

func (s *VersionOrchestratorTestSuite) createRoot(name string, skills ...character.SkillInput) *coc.Sheet {
	out, err := s.characters.CreateSheet(s.ctx, &character.CreateSheetInput{
		OwnerID:   testutils.TestOwnerID,
		Name:      name,
		Edition:   coc.EditionSixth,
		Biography: character.Biography{Age: 35},
		Abilities: testutils.SixthEditionAbilities(),
		Skills:    skills,
	})
	s.Require().NoError(err)
	return out.Sheet
}

func (s *VersionOrchestratorTestSuite) newVersion(parentID, note string) *coc.Sheet {
	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventVersionCreated)

	out, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:     parentID,
		VersionNote: note,
	})
	s.Require().NoError(err)
	return out.Sheet
}

func ids(sheets []*coc.Sheet) []string {
	out := make([]string, 0, len(sheets))
	for _, sh := range sheets {
		out = append(out, sh.ID)
	}
	return out
}

func (s *VersionOrchestratorTestSuite) TestBranchingAndRollback() {
	s1 := s.createRoot(testutils.TestSheetName)
	s2 := s.newVersion(s1.ID, "post-session-1")
	s3 := s.newVersion(s2.ID, "post-session-2")

	var published map[string]any
	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventRolledBack).
		Do(func(_ context.Context, _ string, _, _ core.Entity, data map[string]any) {
			published = data
		})

	rb, err := s.orchestrator.Rollback(s.ctx, &version.RollbackInput{CurrentID: s3.ID, TargetID: s1.ID})
	s.Require().NoError(err)
	s4 := rb.Sheet

	s.Equal(2, s2.Version)
	s.Equal(3, s3.Version)
	s.Equal(4, s4.Version)
	s.Equal(s3.ID, s4.ParentID)
	s.Equal(s1.Abilities, s4.Abilities)
	s.Equal("rolled back from v1", s4.VersionNote)
	s.Equal(1, published[rpgtoolkit.KeyTargetVersion])
	s.Equal(4, published[rpgtoolkit.KeyVersion])

	history, err := s.orchestrator.History(s.ctx, &version.HistoryInput{SheetID: s1.ID})
	s.Require().NoError(err)
	s.Equal([]string{s1.ID, s2.ID, s3.ID, s4.ID}, ids(history.Sheets))

	// A second branch off the root sorts after the first branch's subtree
	s5 := s.newVersion(s1.ID, "alternate timeline")
	s.Equal(5, s5.Version)

	history, err = s.orchestrator.History(s.ctx, &version.HistoryInput{SheetID: s3.ID})
	s.Require().NoError(err)
	s.Equal([]string{s1.ID, s2.ID, s3.ID, s4.ID, s5.ID}, ids(history.Sheets))

	children, err := s.orchestrator.Children(s.ctx, &version.ChildrenInput{SheetID: s1.ID})
	s.Require().NoError(err)
	s.Equal([]string{s2.ID, s5.ID}, ids(children.Sheets))

	latest, err := s.orchestrator.LatestVersion(s.ctx, &version.LatestVersionInput{SheetID: s2.ID})
	s.Require().NoError(err)
	s.Equal(s5.ID, latest.Sheet.ID)
}

func (s *VersionOrchestratorTestSuite) TestCreateVersion_Defaults() {
	root := s.createRoot(testutils.TestSheetName)

	mocks.ExpectPublishFrom(s.mockPublisher, rpgtoolkit.EventVersionCreated, "sheet_1")

	out, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:     root.ID,
		VersionNote: "after the asylum",
	})
	s.Require().NoError(err)

	s.Equal("sheet_1", out.Sheet.ID)
	s.Equal(root.ID, out.Parent.ID)
	s.Equal(1, out.Sheet.SessionCount)
	s.Equal(root.Abilities, out.Sheet.Abilities)
	s.Equal(root.HPMax, out.Sheet.HPMax)
	s.Equal(root.Sixth, out.Sheet.Sixth)
	s.Equal(root.Edition, out.Sheet.Edition)
	s.Empty(out.Skills)
}

func (s *VersionOrchestratorTestSuite) TestCreateVersion_SessionCountOverride() {
	root := s.createRoot(testutils.TestSheetName)
	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventVersionCreated)

	out, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:      root.ID,
		SessionCount: intPtr(7),
	})
	s.Require().NoError(err)
	s.Equal(7, out.Sheet.SessionCount)

	stats, err := s.orchestrator.Statistics(s.ctx, &version.StatisticsInput{SheetID: root.ID})
	s.Require().NoError(err)
	s.Equal(2, stats.TotalVersions)
	s.Equal(2, stats.LatestVersionNumber)
	s.Equal(7, stats.CumulativeSessionCount)
}

func (s *VersionOrchestratorTestSuite) TestCreateVersion_NoteLength() {
	root := s.createRoot(testutils.TestSheetName)

	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventVersionCreated)
	_, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:     root.ID,
		VersionNote: strings.Repeat("あ", coc.MaxVersionNoteLen),
	})
	s.Require().NoError(err)

	_, err = s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:     root.ID,
		VersionNote: strings.Repeat("a", coc.MaxVersionNoteLen+1),
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	stats, err := s.orchestrator.Statistics(s.ctx, &version.StatisticsInput{SheetID: root.ID})
	s.Require().NoError(err)
	s.Equal(2, stats.TotalVersions, "a rejected version leaves the tree unchanged")
}

func (s *VersionOrchestratorTestSuite) TestCreateVersion_CopySkillsAndImages() {
	root := s.createRoot(testutils.TestSheetName,
		character.SkillInput{Name: "Library Use", Base: intPtr(25), Occupation: intPtr(40)},
	)

	_, err := s.stack.Images.Apply(s.ctx, imagerepo.ApplyInput{
		SheetID: root.ID,
		Plan: func([]*coc.Image) (*imagerepo.Changes, error) {
			return &imagerepo.Changes{
				Put: []*coc.Image{{
					ID:         "img_root",
					SheetID:    root.ID,
					BlobDigest: "digest",
					MediaType:  coc.MediaTypePNG,
					SizeBytes:  4,
					IsMain:     true,
				}},
				Blob: &imagerepo.Blob{Digest: "digest", Data: []byte("data")},
			}, nil
		},
	})
	s.Require().NoError(err)

	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventVersionCreated)
	out, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:    root.ID,
		CopySkills: true,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Skills, 1)
	s.Equal(out.Sheet.ID, out.Skills[0].SheetID)

	skills, err := s.characters.ListSkills(s.ctx, &character.ListSkillsInput{SheetID: out.Sheet.ID})
	s.Require().NoError(err)
	s.Require().Len(skills.Skills, 1)
	s.Equal(65, skills.Skills[0].Current)

	images, err := s.stack.Images.List(s.ctx, imagerepo.ListInput{SheetID: out.Sheet.ID})
	s.Require().NoError(err)
	s.Require().Len(images.Images, 1)
	s.True(images.Images[0].IsMain)
	s.NotEqual("img_root", images.Images[0].ID)

	// Deleting the root's subtree still releases every shared blob reference
	_, err = s.characters.DeleteSheet(s.ctx, &character.DeleteSheetInput{SheetID: root.ID})
	s.Require().NoError(err)
	_, err = s.stack.Images.GetBlob(s.ctx, imagerepo.GetBlobInput{Digest: "digest"})
	s.True(errors.IsNotFound(err))
}

func (s *VersionOrchestratorTestSuite) TestCreateVersion_AbilityOverrides() {
	root := s.createRoot(testutils.TestSheetName)

	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventVersionCreated)
	out, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:          root.ID,
		AbilityOverrides: map[coc.Ability]int{coc.AbilitySIZ: 80},
	})
	s.Require().NoError(err)
	s.Equal(80, out.Sheet.Abilities.SIZ)
	s.Equal(15, out.Sheet.HPMax)
	s.Equal(13, out.Sheet.HPCurrent, "current hp is kept when the maximum grows")
	s.Equal("+1d4", out.Sheet.Sixth.DamageBonus)

	diff, err := s.orchestrator.Diff(s.ctx, &version.DiffInput{FromID: root.ID, ToID: out.Sheet.ID})
	s.Require().NoError(err)
	s.Equal(map[coc.Ability]version.Change{coc.AbilitySIZ: {Old: 60, New: 80, Delta: 20}}, diff.Diff.Abilities)

	_, err = s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:          root.ID,
		AbilityOverrides: map[coc.Ability]int{coc.Ability("luck"): 50},
	})
	s.True(errors.IsInvalidArgument(err), "got %v", err)
	s.False(errors.IsUnknownAbility(err), "unknown ability is reserved for dice rolls")

	_, err = s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:          root.ID,
		AbilityOverrides: map[coc.Ability]int{coc.AbilitySIZ: 29},
	})
	s.True(errors.IsInvalidArgument(err), "got %v", err)
}

func (s *VersionOrchestratorTestSuite) TestDiff_Skills() {
	root := s.createRoot(testutils.TestSheetName,
		character.SkillInput{Name: "Library Use", Base: intPtr(25)},
		character.SkillInput{Name: "Occult", Base: intPtr(5)},
	)

	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventVersionCreated)
	next, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{
		SheetID:    root.ID,
		CopySkills: true,
	})
	s.Require().NoError(err)

	_, err = s.characters.BulkReplaceSkills(s.ctx, &character.BulkReplaceSkillsInput{
		SheetID: next.Sheet.ID,
		Skills: []character.SkillInput{
			{Name: "Library Use", Occupation: intPtr(30)},
			{Name: "Psychology", Base: intPtr(10)},
		},
	})
	s.Require().NoError(err)

	diff, err := s.orchestrator.Diff(s.ctx, &version.DiffInput{FromID: root.ID, ToID: next.Sheet.ID})
	s.Require().NoError(err)
	s.Empty(diff.Diff.Abilities)
	s.Equal([]string{"Psychology"}, diff.Diff.Skills.Added)
	s.Equal([]string{"Occult"}, diff.Diff.Skills.Removed)
	s.Equal(map[string]version.Change{"Library Use": {Old: 25, New: 55, Delta: 30}}, diff.Diff.Skills.Changed)

	same, err := s.orchestrator.Diff(s.ctx, &version.DiffInput{FromID: root.ID, ToID: root.ID})
	s.Require().NoError(err)
	s.True(same.Diff.IsEmpty())
}

func (s *VersionOrchestratorTestSuite) TestRollback_RestoresSkills() {
	root := s.createRoot(testutils.TestSheetName,
		character.SkillInput{Name: "Occult", Base: intPtr(5)},
	)
	next := s.newVersion(root.ID, "lost skills")

	mocks.ExpectPublish(s.mockPublisher, rpgtoolkit.EventRolledBack)
	rb, err := s.orchestrator.Rollback(s.ctx, &version.RollbackInput{CurrentID: next.ID, TargetID: root.ID})
	s.Require().NoError(err)
	s.Require().Len(rb.Skills, 1)

	skills, err := s.characters.ListSkills(s.ctx, &character.ListSkillsInput{SheetID: rb.Sheet.ID})
	s.Require().NoError(err)
	s.Require().Len(skills.Skills, 1)
	s.Equal("Occult", skills.Skills[0].Name)
}

func (s *VersionOrchestratorTestSuite) TestRollback_OtherTree() {
	a := s.createRoot("Harvey Walters")
	b := s.createRoot("Agatha Crane")

	_, err := s.orchestrator.Rollback(s.ctx, &version.RollbackInput{CurrentID: a.ID, TargetID: b.ID})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *VersionOrchestratorTestSuite) TestNotFound() {
	_, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{SheetID: "sheet_missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.History(s.ctx, &version.HistoryInput{SheetID: "sheet_missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.History(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *VersionOrchestratorTestSuite) TestCreateVersion_ConcurrentWritersGetDistinctVersions() {
	root := s.createRoot(testutils.TestSheetName)
	mocks.AllowAnyPublish(s.mockPublisher)

	const writers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		versions = map[int]int{}
		failures []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.orchestrator.CreateVersion(s.ctx, &version.CreateVersionInput{SheetID: root.ID})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			versions[out.Sheet.Version]++
		}()
	}
	wg.Wait()

	for v, n := range versions {
		s.Equal(1, n, "version %d assigned more than once", v)
	}
	for _, err := range failures {
		s.True(errors.IsVersionConflict(err), "got %v", err)
	}
	s.Equal(writers, len(versions)+len(failures))
}

func TestVersionOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(VersionOrchestratorTestSuite))
}
