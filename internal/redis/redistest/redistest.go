// Package redistest provides a Redis manager backed by miniredis for package tests.
package redistest

import (
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pracor/pracor/internal/redis"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// New starts a miniredis server and returns a manager connected to it.
// Both are shut down when the test ends.
func New(t *testing.T) (*redis.Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	manager := redis.NewManager(&config.Redis{Host: host, Port: port, DisableCache: true}, zap.NewNop())
	t.Cleanup(manager.Close)

	return manager, mr
}
