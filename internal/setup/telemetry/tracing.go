package telemetry

import (
	"context"

	"github.com/pracor/pracor/internal/setup/config"
	"github.com/uptrace/uptrace-go/uptrace"
)

// ConfigureTracing installs the Uptrace exporter as the global OpenTelemetry provider.
// It returns false and does nothing when no DSN is configured.
func ConfigureTracing(cfg *config.Telemetry, serviceType ServiceType, version string) bool {
	if cfg.UptraceDSN == "" {
		return false
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "pracor"
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(serviceName+"-"+serviceType.String()),
		uptrace.WithServiceVersion(version),
	)

	return true
}

// ShutdownTracing flushes pending spans.
func ShutdownTracing(ctx context.Context) error {
	return uptrace.Shutdown(ctx)
}
