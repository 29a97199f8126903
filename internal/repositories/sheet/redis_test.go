package sheet_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
	"github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	"github.com/KirkDiggler/coc-api/internal/testutils"
)

const (
	testOwnerID = "user_keeper"
	testName    = "Harvey Walters"
)

type RedisSheetTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	clock   *clock.Fixed
	repo    sheet.Repository
	ctx     context.Context
}

func TestRedisSheetTestSuite(t *testing.T) {
	suite.Run(t, new(RedisSheetTestSuite))
}

func (s *RedisSheetTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.clock = clock.NewFixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s.ctx = context.Background()

	repo, err := sheet.NewRedis(&sheet.RedisConfig{Client: s.client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisSheetTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisSheetTestSuite) newSheet(id string) *coc.Sheet {
	return &coc.Sheet{
		ID:        id,
		OwnerID:   testOwnerID,
		Name:      testName,
		Edition:   coc.EditionSixth,
		Abilities: coc.Abilities{STR: 65, CON: 70, POW: 55, DEX: 65, APP: 50, SIZ: 60, INT: 75, EDU: 80},
		HPMax:     13,
		HPCurrent: 13,
	}
}

func (s *RedisSheetTestSuite) createRoot(id string) *coc.Sheet {
	out, err := s.repo.Create(s.ctx, sheet.CreateInput{Sheet: s.newSheet(id)})
	s.Require().NoError(err)
	return out.Sheet
}

func (s *RedisSheetTestSuite) createChild(parentID, id string) *coc.Sheet {
	out, err := s.repo.CreateVersion(s.ctx, sheet.CreateVersionInput{
		ParentID: parentID,
		Sheet:    s.newSheet(id),
	})
	s.Require().NoError(err)
	return out.Sheet
}

func (s *RedisSheetTestSuite) TestNewRedis() {
	testCases := []struct {
		name    string
		config  *sheet.RedisConfig
		wantErr bool
		errMsg  string
	}{
		{
			name:   "success with valid config",
			config: &sheet.RedisConfig{Client: s.client},
		},
		{
			name:    "error with nil config",
			config:  nil,
			wantErr: true,
			errMsg:  "config cannot be nil",
		},
		{
			name:    "error with nil client",
			config:  &sheet.RedisConfig{},
			wantErr: true,
			errMsg:  "client cannot be nil",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := sheet.NewRedis(tc.config)
			if tc.wantErr {
				s.Require().Error(err)
				s.Contains(err.Error(), tc.errMsg)
				s.Nil(repo)
			} else {
				s.NoError(err)
				s.NotNil(repo)
			}
		})
	}
}

func (s *RedisSheetTestSuite) TestCreate() {
	s.Run("stores version 1 root", func() {
		created := s.createRoot("sheet_1")
		s.Equal(1, created.Version)
		s.Empty(created.ParentID)
		s.Equal(s.clock.Now(), created.CreatedAt)

		got, err := s.repo.Get(s.ctx, sheet.GetInput{ID: "sheet_1"})
		s.Require().NoError(err)
		s.Equal(created, got.Sheet)
	})

	s.Run("duplicate tree fails with version conflict", func() {
		_, err := s.repo.Create(s.ctx, sheet.CreateInput{Sheet: s.newSheet("sheet_other")})
		s.Require().Error(err)
		s.True(errors.IsVersionConflict(err))

		_, err = s.repo.Get(s.ctx, sheet.GetInput{ID: "sheet_other"})
		s.True(errors.IsNotFound(err))
	})

	s.Run("missing identity is invalid", func() {
		bad := s.newSheet("")
		bad.OwnerID = ""
		_, err := s.repo.Create(s.ctx, sheet.CreateInput{Sheet: bad})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("writers commit with the sheet", func() {
		other := s.newSheet("sheet_writer")
		other.Name = "Other Investigator"
		writer := func(ctx context.Context, pipe redisclient.Pipeliner) error {
			pipe.Set(ctx, "sheet:sheet_writer:marker", "1", 0)
			return nil
		}
		_, err := s.repo.Create(s.ctx, sheet.CreateInput{Sheet: other, Writers: []redisclient.TxWriter{writer}})
		s.Require().NoError(err)

		v, err := s.client.Get(s.ctx, "sheet:sheet_writer:marker").Result()
		s.Require().NoError(err)
		s.Equal("1", v)
	})
}

func (s *RedisSheetTestSuite) TestCreateVersion() {
	root := s.createRoot("sheet_1")
	s.clock.Advance(time.Hour)

	v2 := s.createChild(root.ID, "sheet_2")
	s.Equal(2, v2.Version)
	s.Equal(root.ID, v2.ParentID)
	s.Equal(testName, v2.Name)

	// Branching from the root still takes latest+1
	branch := s.createChild(root.ID, "sheet_3")
	s.Equal(3, branch.Version)

	s.Run("unknown parent", func() {
		_, err := s.repo.CreateVersion(s.ctx, sheet.CreateVersionInput{ParentID: "missing", Sheet: s.newSheet("x")})
		s.True(errors.IsNotFound(err))
	})

	s.Run("cannot reuse an existing node id", func() {
		_, err := s.repo.CreateVersion(s.ctx, sheet.CreateVersionInput{ParentID: v2.ID, Sheet: s.newSheet(root.ID)})
		s.Require().Error(err)
		s.True(errors.IsCyclicParent(err) || errors.IsAlreadyExists(err))
	})

	s.Run("edition follows the parent", func() {
		other := s.newSheet("sheet_4")
		other.Edition = coc.EditionSeventh
		out, err := s.repo.CreateVersion(s.ctx, sheet.CreateVersionInput{ParentID: v2.ID, Sheet: other})
		s.Require().NoError(err)
		s.Equal(coc.EditionSixth, out.Sheet.Edition)
		s.Equal(4, out.Sheet.Version)
	})
}

func (s *RedisSheetTestSuite) TestCreateVersionLosesRace() {
	root := s.createRoot("sheet_1")

	// A write that lands on the tree between WATCH and EXEC
	racer := func(ctx context.Context, _ redisclient.Pipeliner) error {
		return s.client.ZAdd(ctx, sheet.TreeKey(testOwnerID, testName),
			redisZ(2, "sheet_racer")).Err()
	}

	_, err := s.repo.CreateVersion(s.ctx, sheet.CreateVersionInput{
		ParentID: root.ID,
		Sheet:    s.newSheet("sheet_2"),
		Writers:  []redisclient.TxWriter{racer},
	})
	s.Require().Error(err)
	s.True(errors.IsVersionConflict(err))

	_, err = s.repo.Get(s.ctx, sheet.GetInput{ID: "sheet_2"})
	s.True(errors.IsNotFound(err), "losing writer leaves the graph unchanged")
}

func (s *RedisSheetTestSuite) TestUpdate() {
	root := s.createRoot("sheet_1")

	s.Run("editable fields", func() {
		root.Notes = "Lost his notebook in Arkham"
		root.HPCurrent = 9
		s.clock.Advance(time.Minute)

		out, err := s.repo.Update(s.ctx, sheet.UpdateInput{Sheet: root})
		s.Require().NoError(err)
		s.Equal(9, out.Sheet.HPCurrent)
		s.True(out.Sheet.UpdatedAt.After(out.Sheet.CreatedAt))
	})

	s.Run("immutable fields", func() {
		changed := root.Clone()
		changed.Edition = coc.EditionSeventh
		changed.Version = 7
		_, err := s.repo.Update(s.ctx, sheet.UpdateInput{Sheet: changed})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("missing sheet", func() {
		_, err := s.repo.Update(s.ctx, sheet.UpdateInput{Sheet: s.newSheet("missing")})
		s.True(errors.IsNotFound(err))
	})
}

func (s *RedisSheetTestSuite) TestDeleteCascadesToDescendants() {
	root := s.createRoot("sheet_1")
	v2 := s.createChild(root.ID, "sheet_2")
	s.createChild(v2.ID, "sheet_3")
	s.createChild(root.ID, "sheet_4")

	var cascaded []string
	out, err := s.repo.Delete(s.ctx, sheet.DeleteInput{
		ID: v2.ID,
		Cascade: func(_ context.Context, sheetID string) ([]redisclient.TxWriter, error) {
			cascaded = append(cascaded, sheetID)
			return nil, nil
		},
	})
	s.Require().NoError(err)
	s.Equal([]string{"sheet_2", "sheet_3"}, out.DeletedIDs)
	s.Equal([]string{"sheet_2", "sheet_3"}, cascaded)

	tree, err := s.repo.ListTree(s.ctx, sheet.ListTreeInput{OwnerID: testOwnerID, Name: testName})
	s.Require().NoError(err)
	s.Require().Len(tree.Sheets, 2)
	s.Equal("sheet_1", tree.Sheets[0].ID)
	s.Equal("sheet_4", tree.Sheets[1].ID)

	owned, err := s.repo.ListByOwner(s.ctx, sheet.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	s.Len(owned.Sheets, 2)
}

func (s *RedisSheetTestSuite) TestListByOwnerSortsByNameThenVersion() {
	root := s.createRoot("sheet_1")
	s.createChild(root.ID, "sheet_2")

	other := s.newSheet("sheet_a")
	other.Name = "Alice Sterling"
	_, err := s.repo.Create(s.ctx, sheet.CreateInput{Sheet: other})
	s.Require().NoError(err)

	out, err := s.repo.ListByOwner(s.ctx, sheet.ListByOwnerInput{OwnerID: testOwnerID})
	s.Require().NoError(err)
	s.Require().Len(out.Sheets, 3)
	s.Equal("Alice Sterling", out.Sheets[0].Name)
	s.Equal(1, out.Sheets[1].Version)
	s.Equal(2, out.Sheets[2].Version)

	empty, err := s.repo.ListByOwner(s.ctx, sheet.ListByOwnerInput{OwnerID: "nobody"})
	s.Require().NoError(err)
	s.Empty(empty.Sheets)
}
