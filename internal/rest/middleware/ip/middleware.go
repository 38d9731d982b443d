package ip

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/pracor/pracor/internal/rest/middleware/header"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type ipCtxKey struct{}

// UnknownIP is returned when no valid IP can be determined.
const UnknownIP = "unknown"

// FromContext retrieves the client IP from the context.
func FromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ipCtxKey{}).(string); ok {
		return ip
	}
	return UnknownIP
}

// Middleware detects the client IP and stores it in the context.
type Middleware struct {
	checker *Checker
	logger  *zap.Logger
	config  *config.IPConfig
}

// New creates a new IP middleware.
func New(logger *zap.Logger, cfg *config.IPConfig) *Middleware {
	logger = logger.Named("ip_middleware")
	return &Middleware{
		checker: NewChecker(logger, cfg),
		logger:  logger,
		config:  cfg,
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler that rejects
// requests without a usable client IP.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		ip := m.getClientIP(req.Context())
		if ip == UnknownIP {
			http.Error(w, "Invalid IP address", http.StatusForbidden)
			return nil
		}

		ctx := context.WithValue(req.Context(), ipCtxKey{}, ip)
		return next(w, req.WithContext(ctx))
	}
}

// getClientIP extracts the client IP from the stored remote address and headers.
func (m *Middleware) getClientIP(ctx context.Context) string {
	remoteIP := m.getRemoteIP(ctx)
	if remoteIP == nil {
		return UnknownIP
	}

	if m.config.EnableHeaderCheck && m.checker.IsTrustedProxy(remoteIP) {
		if ip := m.getIPFromHeaders(header.FromContext(ctx)); ip != UnknownIP {
			m.logger.Debug("Found valid IP in headers", zap.String("ip", ip))
			return ip
		}
		m.logger.Debug("No valid IP found in headers")
	}

	if m.checker.IsValidPublicIP(remoteIP) {
		return remoteIP.String()
	}
	m.logger.Debug("Remote IP is not a valid public IP", zap.String("ip", remoteIP.String()))
	return UnknownIP
}

// getRemoteIP parses the remote address stored by the header middleware.
func (m *Middleware) getRemoteIP(ctx context.Context) net.IP {
	remoteAddr := header.FromRemoteAddr(ctx)
	if remoteAddr == "" {
		m.logger.Debug("No remote address in context")
		return nil
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	return net.ParseIP(host)
}

// getIPFromHeaders returns the first valid IP found in the configured headers.
func (m *Middleware) getIPFromHeaders(headers http.Header) string {
	for _, h := range m.config.CustomHeaders {
		value := headers.Get(h)
		if value == "" {
			continue
		}

		if strings.Contains(h, "Forward") {
			if validated := m.getForwardedIP(value); validated != UnknownIP {
				return validated
			}
			continue
		}

		if validated := m.checker.ValidateIP(strings.TrimSpace(value)); validated != UnknownIP {
			return validated
		}
	}
	return UnknownIP
}

// getForwardedIP checks a forwarded chain from right to left, closest hop first.
func (m *Middleware) getForwardedIP(forwarded string) string {
	ips := strings.Split(forwarded, ",")
	for i := len(ips) - 1; i >= 0; i-- {
		if validated := m.checker.ValidateIP(strings.TrimSpace(ips[i])); validated != UnknownIP {
			return validated
		}
	}
	return UnknownIP
}
