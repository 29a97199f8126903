package image

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
	// Key patterns: sheet:{sheet_id}:images (hash of image id -> JSON),
	// image:blob:{digest} and image:blob:{digest}:refs
	imageKeyPrefix = "sheet:"
	imageKeySuffix = ":images"
	blobKeyPrefix  = "image:blob:"
	refsKeySuffix  = ":refs"

	// Error messages
	errSheetIDEmpty = "sheet ID cannot be empty"
	errImageIDEmpty = "image ID cannot be empty"
	errDigestEmpty  = "blob digest cannot be empty"
	errPlanNil      = "plan cannot be nil"
	errImageNil     = "image cannot be nil"
)

// releaseBlob drops one reference and deletes the bytes with the last one.
// It is sent with EVAL because it runs inside MULTI.
const releaseBlob = `
local n = redis.call('DECR', KEYS[1])
if n <= 0 then
	redis.call('DEL', KEYS[1], KEYS[2])
end
return n
`

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis image repository.
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

// NewRedis creates a new Redis-backed image repository
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
	if input.ImageID == "" {
		return nil, errors.InvalidArgument(errImageIDEmpty)
	}

	result, err := r.client.HGet(ctx, KeyFor(input.SheetID), input.ImageID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("image %s not found on sheet %s", input.ImageID, input.SheetID)
		}
		return nil, errors.IOFailure(err, "failed to get image")
	}

	var img coc.Image
	if err := json.Unmarshal([]byte(result), &img); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal image data")
	}

	return &GetOutput{Image: &img}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	images, err := list(ctx, r.client, input.SheetID)
	if err != nil {
		return nil, err
	}

	return &ListOutput{Images: images}, nil
}

func (r *redisRepository) Apply(ctx context.Context, input ApplyInput) (*ApplyOutput, error) {
	if input.SheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}
	if input.Plan == nil {
		return nil, errors.InvalidArgument(errPlanNil)
	}

	key := KeyFor(input.SheetID)
	var result []*coc.Image

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := list(ctx, tx, input.SheetID)
		if err != nil {
			return err
		}

		changes, err := input.Plan(current)
		if err != nil {
			return err
		}
		if changes == nil {
			result = current
			return nil
		}

		byID := make(map[string]*coc.Image, len(current))
		for _, img := range current {
			byID[img.ID] = img
		}

		puts := make([]interface{}, 0, len(changes.Put)*2)
		var newRefs []string
		for _, img := range changes.Put {
			if img == nil || img.ID == "" {
				return errors.InvalidArgument(errImageIDEmpty)
			}
			data, err := json.Marshal(img)
			if err != nil {
				return errors.Wrapf(err, "failed to marshal image %s", img.ID)
			}
			puts = append(puts, img.ID, data)
			if _, ok := byID[img.ID]; !ok {
				newRefs = append(newRefs, img.BlobDigest)
			}
			byID[img.ID] = img
		}
		for _, img := range changes.Remove {
			delete(byID, img.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if changes.Blob != nil {
				pipe.SetNX(ctx, BlobKey(changes.Blob.Digest), changes.Blob.Data, 0)
			}
			for _, digest := range newRefs {
				pipe.Incr(ctx, RefsKey(digest))
			}
			if len(puts) > 0 {
				pipe.HSet(ctx, key, puts...)
			}
			for _, img := range changes.Remove {
				pipe.HDel(ctx, key, img.ID)
				queueRelease(ctx, pipe, img.BlobDigest)
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = make([]*coc.Image, 0, len(byID))
		for _, img := range byID {
			result = append(result, img)
		}
		sortImages(result)
		return nil
	}, key)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to apply image changes")
	}

	return &ApplyOutput{Images: result}, nil
}

func (r *redisRepository) GetBlob(ctx context.Context, input GetBlobInput) (*GetBlobOutput, error) {
	if input.Digest == "" {
		return nil, errors.InvalidArgument(errDigestEmpty)
	}

	data, err := r.client.Get(ctx, BlobKey(input.Digest)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("image blob %s not found", input.Digest)
		}
		return nil, errors.IOFailure(err, "failed to get image blob")
	}

	return &GetBlobOutput{Data: data}, nil
}

func (r *redisRepository) CopyWriter(sheetID string, images []*coc.Image) (redisclient.TxWriter, error) {
	if sheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	fields := make([]interface{}, 0, len(images)*2)
	digests := make([]string, 0, len(images))
	for _, img := range images {
		if img == nil {
			return nil, errors.InvalidArgument(errImageNil)
		}
		if img.ID == "" {
			return nil, errors.InvalidArgument(errImageIDEmpty)
		}
		data, err := json.Marshal(img)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal image %s", img.ID)
		}
		fields = append(fields, img.ID, data)
		digests = append(digests, img.BlobDigest)
	}

	key := KeyFor(sheetID)
	return func(ctx context.Context, pipe redisclient.Pipeliner) error {
		if len(fields) == 0 {
			return nil
		}
		pipe.HSet(ctx, key, fields...)
		for _, digest := range digests {
			pipe.Incr(ctx, RefsKey(digest))
		}
		return nil
	}, nil
}

func (r *redisRepository) DeleteAllWriter(ctx context.Context, sheetID string) (redisclient.TxWriter, error) {
	if sheetID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	images, err := list(ctx, r.client, sheetID)
	if err != nil {
		return nil, err
	}

	key := KeyFor(sheetID)
	return func(ctx context.Context, pipe redisclient.Pipeliner) error {
		pipe.Del(ctx, key)
		for _, img := range images {
			queueRelease(ctx, pipe, img.BlobDigest)
		}
		return nil
	}, nil
}

// KeyFor returns the Redis hash key holding a sheet's image metadata
func KeyFor(sheetID string) string {
	return imageKeyPrefix + sheetID + imageKeySuffix
}

// BlobKey returns the Redis key holding the bytes for a digest
func BlobKey(digest string) string {
	return blobKeyPrefix + digest
}

// RefsKey returns the Redis key counting references to a digest
func RefsKey(digest string) string {
	return blobKeyPrefix + digest + refsKeySuffix
}

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func list(ctx context.Context, rd hashReader, sheetID string) ([]*coc.Image, error) {
	values, err := rd.HGetAll(ctx, KeyFor(sheetID)).Result()
	if err != nil {
		return nil, errors.IOFailure(err, "failed to list images")
	}

	images := make([]*coc.Image, 0, len(values))
	for id, raw := range values {
		var img coc.Image
		if err := json.Unmarshal([]byte(raw), &img); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal image %s", id)
		}
		images = append(images, &img)
	}
	sortImages(images)
	return images, nil
}

func queueRelease(ctx context.Context, pipe redis.Pipeliner, digest string) {
	pipe.Eval(ctx, releaseBlob, []string{RefsKey(digest), BlobKey(digest)})
}

func sortImages(images []*coc.Image) {
	sort.Slice(images, func(i, j int) bool {
		if images[i].Order != images[j].Order {
			return images[i].Order < images[j].Order
		}
		return images[i].ID < images[j].ID
	})
}
