package equipment

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/coc-api/internal/entities/coc"
	"github.com/KirkDiggler/coc-api/internal/errors"
	redisclient "github.com/KirkDiggler/coc-api/internal/redis"
)

const (
	// Key pattern: equipment:sheet:{sheet_id}, a hash of equipment id -> JSON
	equipmentKeyPrefix = "equipment:sheet:"

	// Error messages
	errSheetIDEmpty     = "sheet ID cannot be empty"
	errEquipmentIDEmpty = "equipment ID cannot be empty"
	errEquipmentNil     = "equipment cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis equipment repository.
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

// NewRedis creates a new Redis-backed equipment repository
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
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	result, err := r.client.HGet(ctx, GetKey(input.SheetID), input.EquipmentID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("equipment %s for sheet %s not found", input.EquipmentID, input.SheetID)
		}
		return nil, errors.IOFailuref(err, "failed to get equipment for sheet %s", input.SheetID)
	}

	var data coc.Equipment
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal equipment data")
	}

	return &GetOutput{Equipment: &data}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	values, err := r.client.HGetAll(ctx, GetKey(input.SheetID)).Result()
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to list equipment for sheet %s", input.SheetID)
	}

	items := make([]*coc.Equipment, 0, len(values))
	for id, raw := range values {
		var data coc.Equipment
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal equipment %s", id)
		}
		items = append(items, &data)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind < items[j].Kind
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})

	return &ListOutput{Equipment: items}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Equipment == nil {
		return nil, errors.InvalidArgument(errEquipmentNil)
	}
	if input.Equipment.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}
	if input.Equipment.ID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	jsonData, err := json.Marshal(input.Equipment)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal equipment data")
	}

	key := GetKey(input.Equipment.SheetID)
	if err := r.client.HSet(ctx, key, input.Equipment.ID, jsonData).Err(); err != nil {
		return nil, errors.IOFailuref(err, "failed to store equipment for sheet %s", input.Equipment.SheetID)
	}

	return &PutOutput{Equipment: input.Equipment}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}
	if input.EquipmentID == "" {
		return nil, errors.InvalidArgument(errEquipmentIDEmpty)
	}

	removed, err := r.client.HDel(ctx, GetKey(input.SheetID), input.EquipmentID).Result()
	if err != nil {
		return nil, errors.IOFailuref(err, "failed to delete equipment for sheet %s", input.SheetID)
	}
	if removed == 0 {
		return nil, errors.NotFoundf("equipment %s for sheet %s not found", input.EquipmentID, input.SheetID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) DeleteAllWriter(sheetID string) redisclient.TxWriter {
	key := GetKey(sheetID)
	return func(ctx context.Context, pipe redisclient.Pipeliner) error {
		pipe.Del(ctx, key)
		return nil
	}
}

// GetKey returns the Redis key for a sheet's equipment
// Exposed for testing purposes
func GetKey(sheetID string) string {
	return fmt.Sprintf("%s%s", equipmentKeyPrefix, sheetID)
}
