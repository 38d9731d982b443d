// Package session keeps short-lived per-user state in Redis: claimed
// submission digests and multi-step link workflows.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/pracor/pracor/internal/redis"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// SubmissionPrefix namespaces claimed submission digests.
const SubmissionPrefix = "submission:"

// DuplicateGuard remembers which submissions were already accepted so that a
// resent form is not stored twice.
type DuplicateGuard struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDuplicateGuard creates a guard that keeps claims for ttl.
func NewDuplicateGuard(redisManager *redis.Manager, ttl time.Duration, logger *zap.Logger) (*DuplicateGuard, error) {
	client, err := redisManager.GetClient(redis.SubmissionDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis client: %w", err)
	}

	return &DuplicateGuard{
		client: client,
		ttl:    ttl,
		logger: logger.Named("duplicate_guard"),
	}, nil
}

// Claim atomically records the digest. It returns false when the digest was
// already claimed, which means the submission is a duplicate.
func (g *DuplicateGuard) Claim(ctx context.Context, digest string) (bool, error) {
	seconds := max(int64(g.ttl/time.Second), 1)

	err := g.client.Do(ctx, g.client.B().Set().
		Key(SubmissionPrefix+digest).
		Value(time.Now().UTC().Format(time.RFC3339)).
		Nx().
		ExSeconds(seconds).
		Build()).Error()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			g.logger.Debug("Submission digest already claimed", zap.String("digest", digest))
			return false, nil
		}
		return false, fmt.Errorf("failed to claim submission digest: %w", err)
	}

	return true, nil
}

// Release drops a claim so the same submission can be sent again.
func (g *DuplicateGuard) Release(ctx context.Context, digest string) error {
	err := g.client.Do(ctx, g.client.B().Del().Key(SubmissionPrefix+digest).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to release submission digest: %w", err)
	}
	return nil
}
