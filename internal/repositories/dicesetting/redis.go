package dicesetting

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	"github.com/KirkDiggler/coc-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

const (
	// Key patterns: dice_setting:{id}, dice_setting:user:{owner_id} (hash name -> id),
	// dice_setting:user:{owner_id}:default
	settingKeyPrefix = "dice_setting:"
	ownerKeyPrefix   = "dice_setting:user:"
	defaultKeySuffix = ":default"

	// Error messages
	errSettingNil     = "setting cannot be nil"
	errSettingIDEmpty = "setting ID cannot be empty"
	errOwnerIDEmpty   = "owner ID cannot be empty"
	errNameEmpty      = "setting name cannot be empty"
)

type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis dice setting repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
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

// NewRedis creates a new Redis-backed dice setting repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Setting == nil {
		return nil, errors.InvalidArgument(errSettingNil)
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", input.Setting.ID, vb)
	errors.ValidateRequired("owner_id", input.Setting.OwnerID, vb)
	errors.ValidateRequired("setting_name", input.Setting.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	s := input.Setting.Clone()
	s.CreatedAt = now
	s.UpdatedAt = now

	namesKey := OwnerKey(s.OwnerID)
	defaultKey := DefaultKey(s.OwnerID)
	var demoted *coc.DiceSetting

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		demoted = nil

		taken, err := tx.HExists(ctx, namesKey, s.Name).Result()
		if err != nil {
			return err
		}
		if taken {
			return errors.AlreadyExistsf("dice setting %q already exists", s.Name)
		}
		n, err := tx.Exists(ctx, SettingKey(s.ID)).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.AlreadyExistsf("dice setting with ID %s already exists", s.ID)
		}

		currentID, err := currentDefault(ctx, tx, s.OwnerID)
		if err != nil {
			return err
		}
		switch {
		case currentID == "":
			s.IsDefault = true
		case s.IsDefault:
			prev, err := load(ctx, tx, currentID)
			if err != nil {
				return err
			}
			prev.IsDefault = false
			prev.UpdatedAt = now
			demoted = prev
		}

		data, err := json.Marshal(s)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal dice setting")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SettingKey(s.ID), data, 0)
			pipe.HSet(ctx, namesKey, s.Name, s.ID)
			if s.IsDefault {
				pipe.Set(ctx, defaultKey, s.ID, 0)
			}
			if demoted != nil {
				return put(ctx, pipe, demoted)
			}
			return nil
		})
		return err
	}, namesKey, defaultKey)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to create dice setting")
	}

	slog.DebugContext(ctx, "created dice setting",
		"setting_id", s.ID,
		"owner_id", s.OwnerID,
		"is_default", s.IsDefault)

	return &CreateOutput{Setting: s, Demoted: demoted}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSettingIDEmpty)
	}

	s, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to get dice setting")
	}

	return &GetOutput{Setting: s}, nil
}

func (r *redisRepository) GetByName(ctx context.Context, input GetByNameInput) (*GetByNameOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	id, err := r.client.HGet(ctx, OwnerKey(input.OwnerID), input.Name).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("dice setting %q not found", input.Name)
		}
		return nil, redisclient.WrapError(err, "failed to resolve dice setting name")
	}

	s, err := load(ctx, r.client, id)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to get dice setting")
	}

	return &GetByNameOutput{Setting: s}, nil
}

func (r *redisRepository) GetDefault(ctx context.Context, input GetDefaultInput) (*GetDefaultOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	id, err := currentDefault(ctx, r.client, input.OwnerID)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to get default dice setting")
	}
	if id == "" {
		return nil, errors.NotFoundf("user %s has no dice settings", input.OwnerID)
	}

	s, err := load(ctx, r.client, id)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to get default dice setting")
	}

	return &GetDefaultOutput{Setting: s}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	settings, err := listOwned(ctx, r.client, input.OwnerID)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to list dice settings")
	}

	return &ListOutput{Settings: settings}, nil
}

func (r *redisRepository) SetDefault(ctx context.Context, input SetDefaultInput) (*SetDefaultOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSettingIDEmpty)
	}

	target, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to get dice setting")
	}

	now := r.clock.Now()
	defaultKey := DefaultKey(target.OwnerID)
	var previous *coc.DiceSetting

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		previous = nil

		current, err := load(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		currentID, err := currentDefault(ctx, tx, current.OwnerID)
		if err != nil {
			return err
		}
		if currentID == current.ID && current.IsDefault {
			target = current
			return nil
		}
		if currentID != "" && currentID != current.ID {
			prev, err := load(ctx, tx, currentID)
			if err != nil && !errors.IsNotFound(err) {
				return err
			}
			if prev != nil {
				prev.IsDefault = false
				prev.UpdatedAt = now
				previous = prev
			}
		}

		current.IsDefault = true
		current.UpdatedAt = now
		target = current

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, defaultKey, current.ID, 0)
			if err := put(ctx, pipe, current); err != nil {
				return err
			}
			if previous != nil {
				return put(ctx, pipe, previous)
			}
			return nil
		})
		return err
	}, defaultKey, SettingKey(input.ID))
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to set default dice setting")
	}

	return &SetDefaultOutput{Setting: target, Previous: previous}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSettingIDEmpty)
	}

	s, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to get dice setting")
	}

	now := r.clock.Now()
	namesKey := OwnerKey(s.OwnerID)
	defaultKey := DefaultKey(s.OwnerID)
	var promoted *coc.DiceSetting

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		promoted = nil

		currentID, err := currentDefault(ctx, tx, s.OwnerID)
		if err != nil {
			return err
		}
		if currentID == s.ID {
			remaining, err := listOwned(ctx, tx, s.OwnerID)
			if err != nil {
				return err
			}
			for _, candidate := range remaining {
				if candidate.ID != s.ID {
					promoted = candidate
					break
				}
			}
			if promoted != nil {
				promoted.IsDefault = true
				promoted.UpdatedAt = now
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, SettingKey(s.ID))
			pipe.HDel(ctx, namesKey, s.Name)
			switch {
			case promoted != nil:
				pipe.Set(ctx, defaultKey, promoted.ID, 0)
				return put(ctx, pipe, promoted)
			case currentID == s.ID:
				pipe.Del(ctx, defaultKey)
			}
			return nil
		})
		return err
	}, namesKey, defaultKey, SettingKey(s.ID))
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to delete dice setting")
	}

	if promoted != nil {
		slog.InfoContext(ctx, "promoted dice setting to default",
			"setting_id", promoted.ID,
			"owner_id", promoted.OwnerID)
	}

	return &DeleteOutput{Promoted: promoted}, nil
}

func currentDefault(ctx context.Context, rd reader, ownerID string) (string, error) {
	id, err := rd.Get(ctx, DefaultKey(ownerID)).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func load(ctx context.Context, rd reader, id string) (*coc.DiceSetting, error) {
	data, err := rd.Get(ctx, SettingKey(id)).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("dice setting %s not found", id)
		}
		return nil, err
	}

	var s coc.DiceSetting
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal dice setting %s", id)
	}
	return &s, nil
}

// listOwned returns the owner's settings oldest first, ties broken by name
func listOwned(ctx context.Context, rd reader, ownerID string) ([]*coc.DiceSetting, error) {
	names, err := rd.HGetAll(ctx, OwnerKey(ownerID)).Result()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []*coc.DiceSetting{}, nil
	}

	keys := make([]string, 0, len(names))
	for _, id := range names {
		keys = append(keys, SettingKey(id))
	}
	values, err := rd.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	settings := make([]*coc.DiceSetting, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "dice setting index points at missing record",
				"owner_id", ownerID,
				"key", keys[i])
			continue
		}
		var s coc.DiceSetting
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal dice setting")
		}
		settings = append(settings, &s)
	}

	sort.Slice(settings, func(i, j int) bool {
		if !settings[i].CreatedAt.Equal(settings[j].CreatedAt) {
			return settings[i].CreatedAt.Before(settings[j].CreatedAt)
		}
		return settings[i].Name < settings[j].Name
	})
	return settings, nil
}

func put(ctx context.Context, pipe redis.Pipeliner, s *coc.DiceSetting) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal dice setting")
	}
	pipe.Set(ctx, SettingKey(s.ID), data, 0)
	return nil
}

// SettingKey returns the Redis key of a setting
func SettingKey(id string) string {
	return settingKeyPrefix + id
}

// OwnerKey returns the Redis key of an owner's name index
func OwnerKey(ownerID string) string {
	return ownerKeyPrefix + ownerID
}

// DefaultKey returns the Redis key holding an owner's default setting ID
func DefaultKey(ownerID string) string {
	return ownerKeyPrefix + ownerID + defaultKeySuffix
}
