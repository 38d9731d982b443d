package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// Core implements zapcore.Core to forward error logs to OpenTelemetry as spans.
type Core struct {
	zapcore.LevelEnabler
	tracer trace.Tracer
	fields []zapcore.Field
}

// NewCore creates a new core that forwards logs to OpenTelemetry.
func NewCore(enab zapcore.LevelEnabler) zapcore.Core {
	return &Core{
		LevelEnabler: enab,
		tracer:       otel.Tracer("logs"),
	}
}

func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	return &Core{
		LevelEnabler: c.LevelEnabler,
		tracer:       c.tracer,
		fields:       append(append([]zapcore.Field{}, c.fields...), fields...),
	}
}

func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	_, span := c.tracer.Start(context.Background(), "error."+errorCategory(ent))
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("error.message", ent.Message),
		attribute.String("error.level", ent.Level.String()),
		attribute.String("error.caller", ent.Caller.String()),
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, field := range append(c.fields, fields...) {
		field.AddTo(enc)
	}
	for key, value := range enc.Fields {
		if s, ok := value.(string); ok {
			attrs = append(attrs, attribute.String(key, s))
		}
	}

	span.SetAttributes(attrs...)
	return nil
}

func (c *Core) Sync() error {
	return nil
}

// errorCategory groups error spans by the package that logged them.
func errorCategory(ent zapcore.Entry) string {
	switch {
	case strings.Contains(ent.Caller.Function, "database"):
		return "database"
	case strings.Contains(ent.Caller.Function, "redis"),
		strings.Contains(ent.Caller.Function, "session"),
		strings.Contains(ent.Caller.Function, "notify"):
		return "redis"
	case strings.Contains(ent.Caller.Function, "submission"):
		return "submission"
	case strings.Contains(ent.Caller.Function, "rest"):
		return "rest"
	case strings.Contains(ent.Caller.Function, "setup"):
		return "setup"
	default:
		return "application"
	}
}
