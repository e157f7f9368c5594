package speciesview

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dex-api/internal/redis"
)

const (
	// Key pattern: species_view:{species_id}
	viewKeyPrefix = "species_view:"

	// DefaultTTL applies when neither the config nor the call sets one
	DefaultTTL = time.Hour

	errInputNil      = "input is required"
	errViewNil       = "view is required"
	errSpeciesIDZero = "species ID must be positive"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a Redis backed view cache
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.SpeciesID <= 0 {
		return nil, errors.InvalidArgument(errSpeciesIDZero)
	}

	data, err := r.client.Get(ctx, buildKey(input.SpeciesID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("no cached view for species %d", input.SpeciesID)
		}
		return nil, errors.Wrap(err, "failed to get view from Redis")
	}

	var view View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal view")
	}

	return &GetOutput{View: &view}, nil
}

func (r *redisRepository) Put(ctx context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.View == nil {
		return nil, errors.InvalidArgument(errViewNil)
	}
	if input.View.ID <= 0 {
		return nil, errors.InvalidArgument(errSpeciesIDZero)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}

	data, err := json.Marshal(input.View)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal view")
	}

	if err := r.client.Set(ctx, buildKey(input.View.ID), data, ttl).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to store view in Redis")
	}

	return &PutOutput{ExpiresAt: r.clock.Now().Add(ttl)}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.SpeciesID <= 0 {
		return nil, errors.InvalidArgument(errSpeciesIDZero)
	}

	n, err := r.client.Del(ctx, buildKey(input.SpeciesID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete view from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

func buildKey(speciesID int) string {
	return fmt.Sprintf("%s%d", viewKeyPrefix, speciesID)
}
