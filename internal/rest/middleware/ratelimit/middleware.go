package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pracor/pracor/internal/rest/middleware/identity"
	"github.com/pracor/pracor/internal/rest/middleware/ip"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/pracor/pracor/pkg/utils"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	errBlocked    = "temporarily blocked for repeated rate limit violations"
	errRateLimit  = "rate limit exceeded"
	headerRetryAt = "Retry-After"
)

type limiterState struct {
	mu           sync.Mutex
	limiter      *rate.Limiter
	strikes      int       // Number of times the client has violated the limit
	blockedUntil time.Time // Time until the client is blocked for repeated violations
}

// Middleware implements rate limiting for API requests. Staff accounts are
// limited per user with their own allowance, everyone else per client IP.
type Middleware struct {
	limiters *utils.TTLMap[string, *limiterState]
	config   *config.RateLimit
	mu       sync.Mutex
	logger   *zap.Logger
}

// New creates a new rate limiting middleware.
func New(cfg *config.RateLimit, logger *zap.Logger) *Middleware {
	ttl := time.Second * time.Duration(max(cfg.BurstSize*2, 1))
	if blockTTL := time.Second * time.Duration(cfg.BlockDuration*2); blockTTL > ttl {
		ttl = blockTTL
	}

	return &Middleware{
		limiters: utils.NewTTLMap[string, *limiterState](ttl),
		config:   cfg,
		logger:   logger.Named("rate_limit"),
	}
}

// Close stops the expiry of idle limiters.
func (m *Middleware) Close() {
	m.limiters.Close()
}

// AsRESTMiddleware returns a bunrouter middleware handler for rate limiting.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		key, staff := m.clientKey(req)
		if allowed, retryAfter, msg := m.checkRateLimit(key, staff); !allowed {
			if retryAfter > 0 {
				w.Header().Set(headerRetryAt, fmt.Sprintf("%.0f", retryAfter.Seconds()))
			}
			http.Error(w, msg, http.StatusTooManyRequests)
			return nil
		}
		return next(w, req)
	}
}

// clientKey identifies the bucket a request is counted against.
func (m *Middleware) clientKey(req bunrouter.Request) (string, bool) {
	if user := identity.FromContext(req.Context()); user != nil && user.Staff {
		return "staff:" + strconv.FormatInt(user.ID, 10), true
	}
	return "ip:" + ip.FromContext(req.Context()), false
}

// getLimiter returns the limiter of a client, creating it on first use.
func (m *Middleware) getLimiter(key string, staff bool) *limiterState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state, exists := m.limiters.Get(key); exists {
		m.limiters.Set(key, state)
		return state
	}

	var limiter *rate.Limiter
	if staff {
		limiter = rate.NewLimiter(rate.Limit(m.config.StaffRequestsPerSec), m.config.StaffBurstSize)
	} else {
		limiter = rate.NewLimiter(rate.Limit(m.config.RequestsPerSecond), m.config.BurstSize)
	}

	state := &limiterState{limiter: limiter}
	m.limiters.Set(key, state)
	return state
}

// checkRateLimit checks if the request should be allowed and updates violation tracking.
func (m *Middleware) checkRateLimit(key string, staff bool) (bool, time.Duration, string) {
	state := m.getLimiter(key, staff)

	state.mu.Lock()
	defer state.mu.Unlock()

	now := time.Now()
	if !state.blockedUntil.IsZero() && now.Before(state.blockedUntil) {
		retryAfter := state.blockedUntil.Sub(now).Round(time.Second)
		m.logger.Debug("Client is temporarily blocked",
			zap.String("client", key),
			zap.Duration("retry_after", retryAfter))
		return false, retryAfter, errBlocked
	}

	reservation := state.limiter.ReserveN(now, 1)
	if reservation.OK() {
		delay := reservation.DelayFrom(now)
		if delay == 0 {
			state.strikes = 0
			return true, 0, ""
		}
		reservation.CancelAt(now)

		if blocked, retryAfter := m.addStrike(state, key, now); blocked {
			return false, retryAfter, errBlocked
		}
		return false, delay, errRateLimit
	}

	if blocked, retryAfter := m.addStrike(state, key, now); blocked {
		return false, retryAfter, errBlocked
	}
	return false, 0, errRateLimit
}

// addStrike records a violation and blocks the client once the strike limit is reached.
func (m *Middleware) addStrike(state *limiterState, key string, now time.Time) (bool, time.Duration) {
	state.strikes++
	m.logger.Debug("Rate limit exceeded",
		zap.String("client", key),
		zap.Int("strikes", state.strikes))

	if m.config.StrikeLimit <= 0 || state.strikes < m.config.StrikeLimit {
		return false, 0
	}

	blockDuration := time.Duration(m.config.BlockDuration) * time.Second
	state.blockedUntil = now.Add(blockDuration)
	state.strikes = 0

	m.logger.Info("Client exceeded strike limit and is now blocked",
		zap.String("client", key),
		zap.Duration("block_duration", blockDuration))

	return true, blockDuration
}
