package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pracor/pracor/internal/database/types"
	"github.com/pracor/pracor/internal/rest/middleware/identity"
	"github.com/pracor/pracor/internal/rest/middleware/ratelimit"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, cfg *config.RateLimit, user *types.User) *bunrouter.Router {
	t.Helper()

	limiter := ratelimit.New(cfg, zap.NewNop())
	t.Cleanup(limiter.Close)

	withUser := func(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
		return func(w http.ResponseWriter, req bunrouter.Request) error {
			if user != nil {
				req = req.WithContext(identity.WithUser(req.Context(), user))
			}
			return next(w, req)
		}
	}

	router := bunrouter.New()
	router.Use(withUser, limiter.AsRESTMiddleware).GET("/", func(w http.ResponseWriter, _ bunrouter.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
	return router
}

func hit(router *bunrouter.Router) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := &config.RateLimit{
		RequestsPerSecond:   0.001,
		BurstSize:           2,
		StaffRequestsPerSec: 0.001,
		StaffBurstSize:      4,
		StrikeLimit:         2,
		BlockDuration:       60,
	}

	t.Run("burst then limited then blocked", func(t *testing.T) {
		t.Parallel()
		router := newRouter(t, cfg, nil)

		assert.Equal(t, http.StatusNoContent, hit(router).Code)
		assert.Equal(t, http.StatusNoContent, hit(router).Code)

		rec := hit(router)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		rec = hit(router)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "temporarily blocked")
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("staff get their own allowance", func(t *testing.T) {
		t.Parallel()
		router := newRouter(t, cfg, &types.User{ID: 1, Staff: true})

		for range 4 {
			assert.Equal(t, http.StatusNoContent, hit(router).Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, hit(router).Code)
	})
}
