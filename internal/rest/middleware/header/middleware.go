package header

import (
	"context"
	"net/http"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type (
	remoteAddrCtxKey struct{}
	headersCtxKey    struct{}
)

// FromRemoteAddr retrieves the remote address from context.
func FromRemoteAddr(ctx context.Context) string {
	if addr, ok := ctx.Value(remoteAddrCtxKey{}).(string); ok {
		return addr
	}
	return ""
}

// FromContext retrieves the stored request headers. It returns an empty
// header set when none were stored.
func FromContext(ctx context.Context) http.Header {
	if headers, ok := ctx.Value(headersCtxKey{}).(http.Header); ok {
		return headers
	}
	return http.Header{}
}

// Middleware handles header extraction and storage.
type Middleware struct {
	logger *zap.Logger
}

// New creates a new header middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{
		logger: logger.Named("header_middleware"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for header extraction.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		ctx := m.storeHeadersInContext(req.Context(), req.RemoteAddr, req.Header)
		return next(w, req.WithContext(ctx))
	}
}

// storeHeadersInContext stores the remote address and a copy of the headers.
func (m *Middleware) storeHeadersInContext(ctx context.Context, remoteAddr string, headers http.Header) context.Context {
	ctx = context.WithValue(ctx, remoteAddrCtxKey{}, remoteAddr)
	m.logger.Debug("Stored remote address", zap.String("addr", remoteAddr))

	return context.WithValue(ctx, headersCtxKey{}, headers.Clone())
}
