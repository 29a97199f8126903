package sheet

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
	// Key patterns: sheet:{id}, sheet:owner:{owner_id}, sheet:tree:{owner_id}:{name}
	sheetKeyPrefix   = "sheet:"
	ownerIndexPrefix = "sheet:owner:"
	treeIndexPrefix  = "sheet:tree:"

	// Error messages
	errSheetNil      = "sheet cannot be nil"
	errSheetIDEmpty  = "sheet ID cannot be empty"
	errOwnerIDEmpty  = "owner ID cannot be empty"
	errNameEmpty     = "name cannot be empty"
	errParentIDEmpty = "parent ID cannot be empty"
	errCascadeNil    = "cascade cannot be nil"
)

// reader is the read surface shared by the client and a WATCH transaction
type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	ZRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis sheet repository.
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

// NewRedis creates a new Redis-backed sheet repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Use real clock if none provided
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
	if input.Sheet == nil {
		return nil, errors.InvalidArgument(errSheetNil)
	}
	if err := validateIdentity(input.Sheet); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	s := input.Sheet.Clone()
	s.Version = coc.FirstVersionNumber
	s.ParentID = ""
	s.CreatedAt = now
	s.UpdatedAt = now

	treeKey := TreeKey(s.OwnerID, s.Name)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		taken, err := tx.ZRangeByScore(ctx, treeKey, &redis.ZRangeBy{Min: "1", Max: "1"}).Result()
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return errors.VersionConflictf("sheet %q already has version 1", s.Name)
		}
		if err := ensureAbsent(ctx, tx, s.ID); err != nil {
			return err
		}

		data, err := json.Marshal(s)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal sheet")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SheetKey(s.ID), data, 0) // No TTL for sheets
			pipe.SAdd(ctx, OwnerKey(s.OwnerID), s.ID)
			pipe.ZAdd(ctx, treeKey, redis.Z{Score: float64(s.Version), Member: s.ID})
			return runWriters(ctx, pipe, input.Writers)
		})
		return err
	}, treeKey)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to create sheet")
	}

	slog.DebugContext(ctx, "created sheet",
		"sheet_id", s.ID,
		"owner_id", s.OwnerID,
		"version", s.Version)

	return &CreateOutput{Sheet: s}, nil
}

func (r *redisRepository) CreateVersion(ctx context.Context, input CreateVersionInput) (*CreateVersionOutput, error) {
	if input.ParentID == "" {
		return nil, errors.InvalidArgument(errParentIDEmpty)
	}
	if input.Sheet == nil {
		return nil, errors.InvalidArgument(errSheetNil)
	}
	if input.Sheet.ID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	// The tree key comes from the parent, which is re-read under WATCH below
	parent, err := load(ctx, r.client, input.ParentID)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	s := input.Sheet.Clone()
	treeKey := TreeKey(parent.OwnerID, parent.Name)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := load(ctx, tx, input.ParentID)
		if err != nil {
			return err
		}
		parent = current

		nodes, err := loadTree(ctx, tx, treeKey)
		if err != nil {
			return err
		}
		if err := checkAcyclic(indexByID(nodes), parent.ID, s.ID); err != nil {
			return err
		}
		if err := ensureAbsent(ctx, tx, s.ID); err != nil {
			return err
		}

		s.OwnerID = parent.OwnerID
		s.Name = parent.Name
		s.Edition = parent.Edition
		s.ParentID = parent.ID
		s.Version = latestVersion(nodes) + 1
		s.CreatedAt = now
		s.UpdatedAt = now

		data, err := json.Marshal(s)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal sheet")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SheetKey(s.ID), data, 0)
			pipe.SAdd(ctx, OwnerKey(s.OwnerID), s.ID)
			pipe.ZAdd(ctx, treeKey, redis.Z{Score: float64(s.Version), Member: s.ID})
			return runWriters(ctx, pipe, input.Writers)
		})
		return err
	}, treeKey, SheetKey(input.ParentID))
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to create sheet version")
	}

	slog.DebugContext(ctx, "created sheet version",
		"sheet_id", s.ID,
		"parent_id", s.ParentID,
		"version", s.Version)

	return &CreateVersionOutput{Sheet: s, Parent: parent}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	s, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Sheet: s}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Sheet == nil {
		return nil, errors.InvalidArgument(errSheetNil)
	}
	if input.Sheet.ID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}

	s := input.Sheet.Clone()
	key := SheetKey(s.ID)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := load(ctx, tx, s.ID)
		if err != nil {
			return err
		}
		if err := checkImmutable(stored, s); err != nil {
			return err
		}

		s.CreatedAt = stored.CreatedAt
		s.UpdatedAt = r.clock.Now()

		data, err := json.Marshal(s)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal sheet")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to update sheet")
	}

	return &UpdateOutput{Sheet: s}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errSheetIDEmpty)
	}
	if input.Cascade == nil {
		return nil, errors.InvalidArgument(errCascadeNil)
	}

	target, err := load(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}

	treeKey := TreeKey(target.OwnerID, target.Name)
	var doomed []string

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		nodes, err := loadTree(ctx, tx, treeKey)
		if err != nil {
			return err
		}

		doomed = subtree(nodes, input.ID)
		if len(doomed) == 0 {
			return errors.NotFoundf("sheet with ID %s not found", input.ID)
		}

		var writers []redisclient.TxWriter
		for _, id := range doomed {
			w, err := input.Cascade(ctx, id)
			if err != nil {
				return err
			}
			writers = append(writers, w...)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, id := range doomed {
				pipe.Del(ctx, SheetKey(id))
				pipe.SRem(ctx, OwnerKey(target.OwnerID), id)
				pipe.ZRem(ctx, treeKey, id)
			}
			return runWriters(ctx, pipe, writers)
		})
		return err
	}, treeKey)
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to delete sheet")
	}

	slog.InfoContext(ctx, "deleted sheet",
		"sheet_id", input.ID,
		"owner_id", target.OwnerID,
		"deleted_count", len(doomed))

	return &DeleteOutput{DeletedIDs: doomed}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ids, err := r.client.SMembers(ctx, OwnerKey(input.OwnerID)).Result()
	if err != nil {
		return nil, errors.IOFailure(err, "failed to list owner sheets")
	}

	sheets, err := loadMany(ctx, r.client, ids)
	if err != nil {
		return nil, err
	}

	sort.Slice(sheets, func(i, j int) bool {
		if sheets[i].Name != sheets[j].Name {
			return sheets[i].Name < sheets[j].Name
		}
		return sheets[i].Version < sheets[j].Version
	})

	return &ListByOwnerOutput{Sheets: sheets}, nil
}

func (r *redisRepository) ListTree(ctx context.Context, input ListTreeInput) (*ListTreeOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	sheets, err := loadTree(ctx, r.client, TreeKey(input.OwnerID, input.Name))
	if err != nil {
		return nil, redisclient.WrapError(err, "failed to list sheet tree")
	}

	return &ListTreeOutput{Sheets: sheets}, nil
}

// SheetKey returns the Redis key for a sheet node
func SheetKey(id string) string {
	return sheetKeyPrefix + id
}

// OwnerKey returns the Redis key for a user's sheet index
func OwnerKey(ownerID string) string {
	return ownerIndexPrefix + ownerID
}

// TreeKey returns the Redis key for one version tree, scored by version
func TreeKey(ownerID, name string) string {
	return treeIndexPrefix + ownerID + ":" + name
}

func validateIdentity(s *coc.Sheet) error {
	vb := errors.NewValidationBuilder()
	if s.ID == "" {
		vb.RequiredField("id")
	}
	if s.OwnerID == "" {
		vb.RequiredField("owner_id")
	}
	errors.ValidateRequired("name", s.Name, vb)
	if !s.Edition.IsValid() {
		errors.ValidateEnum("edition", string(s.Edition), coc.EditionStrings(), vb)
	}
	return vb.Build()
}

func checkImmutable(stored, next *coc.Sheet) error {
	vb := errors.NewValidationBuilder()
	if stored.OwnerID != next.OwnerID {
		vb.Field("owner_id", "cannot be changed")
	}
	if stored.Name != next.Name {
		vb.Field("name", "cannot be changed")
	}
	if stored.Edition != next.Edition {
		vb.Field("edition", "cannot be changed")
	}
	if stored.Version != next.Version {
		vb.Field("version", "cannot be changed")
	}
	if stored.ParentID != next.ParentID {
		vb.Field("parent_id", "cannot be changed")
	}
	return vb.Build()
}

func ensureAbsent(ctx context.Context, rd reader, id string) error {
	exists, err := rd.Exists(ctx, SheetKey(id)).Result()
	if err != nil {
		return err
	}
	if exists > 0 {
		return errors.AlreadyExistsf("sheet with ID %s already exists", id)
	}
	return nil
}

func runWriters(ctx context.Context, pipe redis.Pipeliner, writers []redisclient.TxWriter) error {
	for _, w := range writers {
		if err := w(ctx, pipe); err != nil {
			return err
		}
	}
	return nil
}

func load(ctx context.Context, rd reader, id string) (*coc.Sheet, error) {
	result, err := rd.Get(ctx, SheetKey(id)).Result()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("sheet with ID %s not found", id)
		}
		return nil, errors.IOFailure(err, "failed to get sheet")
	}

	var s coc.Sheet
	if err := json.Unmarshal([]byte(result), &s); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal sheet data")
	}
	return &s, nil
}

func loadMany(ctx context.Context, rd reader, ids []string) ([]*coc.Sheet, error) {
	if len(ids) == 0 {
		return []*coc.Sheet{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = SheetKey(id)
	}

	values, err := rd.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.IOFailure(err, "failed to get sheets")
	}

	sheets := make([]*coc.Sheet, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a node
			slog.WarnContext(ctx, "sheet index points at missing sheet", "sheet_id", ids[i])
			continue
		}
		var s coc.Sheet
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal sheet %s", ids[i])
		}
		sheets = append(sheets, &s)
	}
	return sheets, nil
}

func loadTree(ctx context.Context, rd reader, treeKey string) ([]*coc.Sheet, error) {
	members, err := rd.ZRangeWithScores(ctx, treeKey, 0, -1).Result()
	if err != nil {
		return nil, errors.IOFailure(err, "failed to read sheet tree")
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if id, ok := m.Member.(string); ok {
			ids = append(ids, id)
		}
	}

	sheets, err := loadMany(ctx, rd, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(sheets, func(i, j int) bool {
		return sheets[i].Version < sheets[j].Version
	})
	return sheets, nil
}

func indexByID(nodes []*coc.Sheet) map[string]*coc.Sheet {
	out := make(map[string]*coc.Sheet, len(nodes))
	for _, n := range nodes {
		out[n.ID] = n
	}
	return out
}

func latestVersion(nodes []*coc.Sheet) int {
	latest := 0
	for _, n := range nodes {
		latest = max(latest, n.Version)
	}
	return latest
}

// checkAcyclic walks from parentID to the root and fails if selfID is met or
// the walk takes more steps than the tree has nodes
func checkAcyclic(nodes map[string]*coc.Sheet, parentID, selfID string) error {
	steps := 0
	for id := parentID; id != ""; steps++ {
		if id == selfID {
			return errors.CyclicParent("sheet would become its own ancestor")
		}
		if steps > len(nodes) {
			return errors.CyclicParent("parent chain does not reach a root")
		}
		n, ok := nodes[id]
		if !ok {
			return errors.NotFoundf("sheet with ID %s is not part of this tree", id)
		}
		id = n.ParentID
	}
	return nil
}

// subtree returns rootID and all of its descendants, parents before children
func subtree(nodes []*coc.Sheet, rootID string) []string {
	children := make(map[string][]string)
	found := false
	for _, n := range nodes {
		if n.ID == rootID {
			found = true
		}
		if n.ParentID != "" {
			children[n.ParentID] = append(children[n.ParentID], n.ID)
		}
	}
	if !found {
		return nil
	}

	out := []string{rootID}
	for i := 0; i < len(out); i++ {
		out = append(out, children[out[i]]...)
	}
	return out
}
