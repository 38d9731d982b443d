// Package identity trusts the user headers set by the authenticating proxy in
// front of the API and loads the matching local user record.
package identity

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Headers set by the authenticating proxy and the client.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
	HeaderUserStaff = "X-User-Staff"
	HeaderFormToken = "X-CSRF-Token"
)

type (
	userCtxKey  struct{}
	tokenCtxKey struct{}
)

// FromContext returns the authenticated user or nil.
func FromContext(ctx context.Context) *types.User {
	if user, ok := ctx.Value(userCtxKey{}).(*types.User); ok {
		return user
	}
	return nil
}

// TokenFromContext returns the anti-forgery token sent with the request.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenCtxKey{}).(string); ok {
		return token
	}
	return ""
}

// WithUser stores a user in the context.
func WithUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// Middleware resolves the requesting user.
type Middleware struct {
	db     database.Client
	logger *zap.Logger
}

// New creates a new identity middleware.
func New(db database.Client, logger *zap.Logger) *Middleware {
	return &Middleware{
		db:     db,
		logger: logger.Named("identity_middleware"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler that rejects
// anonymous requests and registers first-time users.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		userID, err := strconv.ParseInt(strings.TrimSpace(req.Header.Get(HeaderUserID)), 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return nil
		}

		ctx := req.Context()
		staff, _ := strconv.ParseBool(req.Header.Get(HeaderUserStaff))

		err = m.db.Model().User().Register(ctx, &types.User{
			ID:    userID,
			Email: strings.TrimSpace(req.Header.Get(HeaderUserEmail)),
			Staff: staff,
		})
		if err != nil {
			m.logger.Error("Failed to register user", zap.Int64("userID", userID), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return nil
		}

		user, err := m.db.Model().User().GetByID(ctx, userID)
		if err != nil {
			m.logger.Error("Failed to load user", zap.Int64("userID", userID), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return nil
		}

		ctx = WithUser(ctx, user)
		if token := req.Header.Get(HeaderFormToken); token != "" {
			ctx = context.WithValue(ctx, tokenCtxKey{}, token)
		}

		return next(w, req.WithContext(ctx))
	}
}

// RequireStaff rejects requests from non-staff users.
func RequireStaff(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		if user := FromContext(req.Context()); user == nil || !user.Staff {
			http.Error(w, types.ErrNotStaff.Error(), http.StatusForbidden)
			return nil
		}
		return next(w, req)
	}
}
