package session_test

import (
	"testing"
	"time"

	"github.com/pracor/pracor/internal/redis"
	"github.com/pracor/pracor/internal/redis/redistest"
	"github.com/pracor/pracor/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDuplicateGuard(t *testing.T) {
	t.Parallel()

	manager, mr := redistest.New(t)
	guard, err := session.NewDuplicateGuard(manager, time.Hour, zap.NewNop())
	require.NoError(t, err)

	claimed, err := guard.Claim(t.Context(), "abc")
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = guard.Claim(t.Context(), "abc")
	require.NoError(t, err)
	assert.False(t, claimed)

	ttl := mr.DB(redis.SubmissionDBIndex).TTL(session.SubmissionPrefix + "abc")
	assert.Equal(t, time.Hour, ttl)

	require.NoError(t, guard.Release(t.Context(), "abc"))

	claimed, err = guard.Claim(t.Context(), "abc")
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestDuplicateGuardExpiry(t *testing.T) {
	t.Parallel()

	manager, mr := redistest.New(t)
	guard, err := session.NewDuplicateGuard(manager, time.Minute, zap.NewNop())
	require.NoError(t, err)

	claimed, err := guard.Claim(t.Context(), "expiring")
	require.NoError(t, err)
	require.True(t, claimed)

	mr.FastForward(2 * time.Minute)

	claimed, err = guard.Claim(t.Context(), "expiring")
	require.NoError(t, err)
	assert.True(t, claimed)
}
