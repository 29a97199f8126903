// Package testutils holds fixtures and the in-memory Redis used by tests
package testutils

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/coc-api/internal/redis"
)

// TestRedis is an in-memory Redis server with a client connected to it
type TestRedis struct {
	Server *miniredis.Miniredis
	Client redis.Client
}

// StartTestRedis starts a server that is closed when the test ends
func StartTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start(), "failed to start miniredis")
	t.Cleanup(mr.Close)

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })

	return &TestRedis{Server: mr, Client: client}
}

// CreateTestRedisClient is StartTestRedis for suites that tear down per
// test; the returned func stops the server early
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	t.Helper()

	r := StartTestRedis(t)
	return r.Client, r.Server.Close
}

// Expire moves the server clock forward so keys with a TTL lapse
func (r *TestRedis) Expire(d time.Duration) {
	r.Server.FastForward(d)
}

// Break stops the server; later commands fail at the connection level,
// which repositories report as IO_FAILURE
func (r *TestRedis) Break() {
	r.Server.Close()
}
