package skill

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

const (
	// Key pattern: sheet:{sheet_id}:skills, a hash of skill name -> JSON
	skillKeyPrefix = "sheet:"
	skillKeySuffix = ":skills"

	// Error messages
	errSkillNil      = "skill cannot be nil"
	errSheetIDEmpty  = "sheet ID cannot be empty"
	errNameEmpty     = "skill name cannot be empty"
	errSheetMismatch = "skill belongs to a different sheet"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis skill repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed skill repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	result, err := r.client.HGet(ctx, KeyFor(input.SheetID), input.Name).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("skill %q not found on sheet %s", input.Name, input.SheetID)
		}
		return nil, errors.IOFailure(err, "failed to get skill")
	}

	var k coc.Skill
	if err := json.Unmarshal([]byte(result), &k); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal skill data")
	}

	return &GetOutput{Skill: &k}, nil
}

func (r *redisRepository) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	if input.Skill == nil {
		return nil, errors.InvalidArgument(errSkillNil)
	}
	if err := validateKey(input.Skill); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Skill)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal skill data")
	}

	if err := r.client.HSet(ctx, KeyFor(input.Skill.SheetID), input.Skill.Name, data).Err(); err != nil {
		return nil, errors.IOFailuref(err, "failed to store skill %q", input.Skill.Name)
	}

	return &UpsertOutput{Skill: input.Skill}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	removed, err := r.client.HDel(ctx, KeyFor(input.SheetID), input.Name).Result()
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to delete skill %q", input.Name)
	}
	if removed == 0 {
		return nil, errors.NotFoundf("skill %q not found on sheet %s", input.Name, input.SheetID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	values, err := r.client.HGetAll(ctx, KeyFor(input.SheetID)).Result()
	if err != nil {
		return nil, errors.IOFailure(err, "failed to list skills")
	}

	skills := make([]*coc.Skill, 0, len(values))
	for name, raw := range values {
		var k coc.Skill
		if err := json.Unmarshal([]byte(raw), &k); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal skill %q", name)
		}
		skills = append(skills, &k)
	}
	sort.Slice(skills, func(i, j int) bool {
		return skills[i].Name < skills[j].Name
	})

	return &ListOutput{Skills: skills}, nil
}

func (r *redisRepository) ReplaceAll(ctx context.Context, input ReplaceAllInput) (*ReplaceAllOutput, error) {
	writer, err := r.ReplaceWriter(input.SheetID, input.Skills)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	if err := writer(ctx, pipe); err != nil {
		return nil, err
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.IOFailure(err, "failed to replace skills")
	}

	return &ReplaceAllOutput{Skills: input.Skills}, nil
}

// ReplaceWriter validates and encodes every skill up front so a bad record
// fails before anything is queued
func (r *redisRepository) ReplaceWriter(sheetID string, skills []*coc.Skill) (redisclient.TxWriter, error) {
	if sheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	fields := make([]interface{}, 0, len(skills)*2)
	seen := make(map[string]struct{}, len(skills))
	for _, k := range skills {
		if k == nil {
			return nil, errors.InvalidArgument(errSkillNil)
		}
		if k.SheetID != sheetID {
			return nil, errors.InvalidArgument(errSheetMismatch)
		}
		if err := validateKey(k); err != nil {
			return nil, err
		}
		if _, dup := seen[k.Name]; dup {
			return nil, errors.InvalidArgumentf("skill %q appears more than once", k.Name)
		}
		seen[k.Name] = struct{}{}

		data, err := json.Marshal(k)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal skill %q", k.Name)
		}
		fields = append(fields, k.Name, data)
	}

	key := KeyFor(sheetID)
	return func(ctx context.Context, pipe redisclient.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields...)
		}
		return nil
	}, nil
}

func (r *redisRepository) DeleteAllWriter(sheetID string) redisclient.TxWriter {
	key := KeyFor(sheetID)
	return func(ctx context.Context, pipe redisclient.Pipeliner) error {
		pipe.Del(ctx, key)
		return nil
	}
}

// KeyFor returns the Redis hash key holding a sheet's skills
func KeyFor(sheetID string) string {
	return skillKeyPrefix + sheetID + skillKeySuffix
}

func validateKey(k *coc.Skill) error {
	if k.SheetID == "" {
		return errors.InvalidArgument(errSheetIDEmpty)
	}
	if k.Name == "" {
		return errors.InvalidArgument(errNameEmpty)
	}
	return nil
}
