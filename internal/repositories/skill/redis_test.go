package skill_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
	"github.com/KirkDiggler/coc-api/internal/repositories/skill"
	"github.com/KirkDiggler/coc-api/internal/testutils"
)

const testSheetID = "sheet_test123"

type RedisSkillTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    skill.Repository
	ctx     context.Context
}

func TestRedisSkillTestSuite(t *testing.T) {
	suite.Run(t, new(RedisSkillTestSuite))
}

func (s *RedisSkillTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()

	repo, err := skill.NewRedis(&skill.RedisConfig{Client: s.client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisSkillTestSuite) TearDownTest() {
	s.cleanup()
}

func newSkill(name string, base int) *coc.Skill {
	k := &coc.Skill{
		ID:       "skill_" + name,
		SheetID:  testSheetID,
		Name:     name,
		Category: coc.SkillCategoryExploration,
		Base:     base,
	}
	k.Recompute(coc.EditionSixth)
	return k
}

func (s *RedisSkillTestSuite) TestUpsertGetDelete() {
	_, err := s.repo.Upsert(s.ctx, skill.UpsertInput{Skill: newSkill("Spot Hidden", 25)})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, skill.GetInput{SheetID: testSheetID, Name: "Spot Hidden"})
	s.Require().NoError(err)
	s.Equal(25, got.Skill.Current)

	updated := newSkill("Spot Hidden", 30)
	_, err = s.repo.Upsert(s.ctx, skill.UpsertInput{Skill: updated})
	s.Require().NoError(err)

	list, err := s.repo.List(s.ctx, skill.ListInput{SheetID: testSheetID})
	s.Require().NoError(err)
	s.Require().Len(list.Skills, 1)
	s.Equal(30, list.Skills[0].Current)

	_, err = s.repo.Delete(s.ctx, skill.DeleteInput{SheetID: testSheetID, Name: "Spot Hidden"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, skill.GetInput{SheetID: testSheetID, Name: "Spot Hidden"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, skill.DeleteInput{SheetID: testSheetID, Name: "Spot Hidden"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisSkillTestSuite) TestListSortedByName() {
	for _, name := range []string{"Spot Hidden", "Library Use", "Dodge"} {
		_, err := s.repo.Upsert(s.ctx, skill.UpsertInput{Skill: newSkill(name, 20)})
		s.Require().NoError(err)
	}

	list, err := s.repo.List(s.ctx, skill.ListInput{SheetID: testSheetID})
	s.Require().NoError(err)
	s.Require().Len(list.Skills, 3)
	s.Equal("Dodge", list.Skills[0].Name)
	s.Equal("Library Use", list.Skills[1].Name)
	s.Equal("Spot Hidden", list.Skills[2].Name)
}

func (s *RedisSkillTestSuite) TestReplaceAll() {
	_, err := s.repo.Upsert(s.ctx, skill.UpsertInput{Skill: newSkill("Occult", 5)})
	s.Require().NoError(err)

	s.Run("swaps the whole set", func() {
		_, err := s.repo.ReplaceAll(s.ctx, skill.ReplaceAllInput{
			SheetID: testSheetID,
			Skills:  []*coc.Skill{newSkill("Psychology", 5), newSkill("Listen", 25)},
		})
		s.Require().NoError(err)

		list, err := s.repo.List(s.ctx, skill.ListInput{SheetID: testSheetID})
		s.Require().NoError(err)
		s.Require().Len(list.Skills, 2)
		s.Equal("Listen", list.Skills[0].Name)
	})

	s.Run("invalid batch leaves the set untouched", func() {
		bad := newSkill("", 10)
		_, err := s.repo.ReplaceAll(s.ctx, skill.ReplaceAllInput{
			SheetID: testSheetID,
			Skills:  []*coc.Skill{newSkill("History", 5), bad},
		})
		s.Require().Error(err)

		list, err := s.repo.List(s.ctx, skill.ListInput{SheetID: testSheetID})
		s.Require().NoError(err)
		s.Len(list.Skills, 2)
	})

	s.Run("duplicate names rejected", func() {
		_, err := s.repo.ReplaceAll(s.ctx, skill.ReplaceAllInput{
			SheetID: testSheetID,
			Skills:  []*coc.Skill{newSkill("History", 5), newSkill("History", 10)},
		})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("empty set clears", func() {
		_, err := s.repo.ReplaceAll(s.ctx, skill.ReplaceAllInput{SheetID: testSheetID})
		s.Require().NoError(err)

		list, err := s.repo.List(s.ctx, skill.ListInput{SheetID: testSheetID})
		s.Require().NoError(err)
		s.Empty(list.Skills)
	})
}

func (s *RedisSkillTestSuite) TestDeleteAllWriter() {
	_, err := s.repo.Upsert(s.ctx, skill.UpsertInput{Skill: newSkill("Occult", 5)})
	s.Require().NoError(err)

	pipe := s.client.TxPipeline()
	s.Require().NoError(s.repo.DeleteAllWriter(testSheetID)(s.ctx, pipe))
	_, err = pipe.Exec(s.ctx)
	s.Require().NoError(err)

	exists, err := s.client.Exists(s.ctx, skill.KeyFor(testSheetID)).Result()
	s.Require().NoError(err)
	s.Zero(exists)
}
