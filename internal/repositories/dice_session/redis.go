package dicesession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

const (
	// Key pattern: dice_session:{owner_id}:{context}
	sessionKeyPrefix = "dice_session:"

	// DefaultTTL is how long a session lives when no TTL is given
	DefaultTTL = 15 * time.Minute

	// Error messages
	errOwnerIDEmpty = "owner ID cannot be empty"
	errContextEmpty = "context cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for dice sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument(errContextEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	session := &DiceSession{
		OwnerID:   input.OwnerID,
		Context:   input.Context,
		SettingID: input.SettingID,
		Rolls:     input.Rolls,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := r.buildKey(input.OwnerID, input.Context)
	if err := r.client.Set(ctx, key, sessionJSON, ttl).Err(); err != nil {
		return nil, redisclient.WrapError(err, "failed to store dice session")
	}

	return &CreateOutput{
		Session: session,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument(errContextEmpty)
	}

	key := r.buildKey(input.OwnerID, input.Context)

	sessionJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFound("dice session not found")
		}
		return nil, redisclient.WrapError(err, "failed to get dice session")
	}

	var session DiceSession
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// The key TTL and the stored expiry can disagree under a test clock
	if r.clock.Now().After(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("dice session has expired")
	}

	return &GetOutput{
		Session: &session,
	}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument(errContextEmpty)
	}

	rollsDeleted := 0
	if out, err := r.Get(ctx, GetInput(input)); err == nil {
		rollsDeleted = len(out.Session.Rolls)
	}

	if err := r.client.Del(ctx, r.buildKey(input.OwnerID, input.Context)).Err(); err != nil {
		return nil, redisclient.WrapError(err, "failed to delete dice session")
	}

	return &DeleteOutput{
		RollsDeleted: rollsDeleted,
	}, nil
}

func (r *redisRepository) buildKey(ownerID, context string) string {
	return fmt.Sprintf("%s%s:%s", sessionKeyPrefix, ownerID, context)
}
