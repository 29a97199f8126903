// Package stack wires every Redis repository against one in-memory server
// for orchestrator tests
package stack

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
	dicesession "github.com/KirkDiggler/coc-api/internal/repositories/dice_session"
	"github.com/KirkDiggler/coc-api/internal/repositories/dicesetting"
	"github.com/KirkDiggler/coc-api/internal/repositories/equipment"
	"github.com/KirkDiggler/coc-api/internal/repositories/image"
	"github.com/KirkDiggler/coc-api/internal/repositories/sheet"
	"github.com/KirkDiggler/coc-api/internal/repositories/skill"
	"github.com/KirkDiggler/coc-api/internal/testutils"
)

// Epoch is the time the fixed clock starts at
var Epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// Stack holds the repositories sharing one miniredis instance
type Stack struct {
	Client        redisclient.Client
	Clock         *clock.Fixed
	Sheets        sheet.Repository
	Skills        skill.Repository
	Equipment     equipment.Repository
	Images        image.Repository
	DiceSettings  dicesetting.Repository
	DiceSessions  dicesession.Repository
	cleanupClient func()
}

// New builds a Stack; call Close when the test finishes
func New(t *testing.T) *Stack {
	t.Helper()

	client, cleanup := testutils.CreateTestRedisClient(t)
	c := clock.NewFixed(Epoch)

	sheets, err := sheet.NewRedis(&sheet.RedisConfig{Client: client, Clock: c})
	require.NoError(t, err)
	skills, err := skill.NewRedis(&skill.RedisConfig{Client: client})
	require.NoError(t, err)
	equip, err := equipment.NewRedis(&equipment.RedisConfig{Client: client})
	require.NoError(t, err)
	images, err := image.NewRedis(&image.RedisConfig{Client: client})
	require.NoError(t, err)
	settings, err := dicesetting.NewRedis(&dicesetting.RedisConfig{Client: client, Clock: c})
	require.NoError(t, err)
	sessions, err := dicesession.NewRedisRepository(&dicesession.Config{Client: client, Clock: c})
	require.NoError(t, err)

	return &Stack{
		Client:        client,
		Clock:         c,
		Sheets:        sheets,
		Skills:        skills,
		Equipment:     equip,
		Images:        images,
		DiceSettings:  settings,
		DiceSessions:  sessions,
		cleanupClient: cleanup,
	}
}

// Close shuts down the in-memory server
func (s *Stack) Close() {
	if s.cleanupClient != nil {
		s.cleanupClient()
	}
}
