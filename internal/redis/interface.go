package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mocks/redis.go -package=redismocks -source=interface.go

// Client wraps redis.UniversalClient to allow for easy mocking
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations
type Pipeliner interface {
	redis.Pipeliner
}

// Tx is the handle passed to Watch callbacks
type Tx = redis.Tx

// TxWriter queues commands on a MULTI pipeline opened by another repository,
// so writes owned by several repositories commit together
type TxWriter func(ctx context.Context, pipe Pipeliner) error
