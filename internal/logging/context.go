package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBank is the standardized structured logging key for the bank directory or identifier.
	FieldBank = "bank"
	// FieldBuildID is the standardized structured logging key for build identifiers.
	FieldBuildID = "build_id"
	// FieldStep is the standardized structured logging key for pipeline step names.
	FieldStep = "step"
	// FieldEventType classifies warnings so they can be filtered.
	FieldEventType = "event_type"
	// FieldImpact is the standardized key for the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey string

const (
	bankKey    contextKey = "bank"
	buildIDKey contextKey = "build_id"
	stepKey    contextKey = "step"
)

// WithBank annotates context with the bank being processed.
func WithBank(ctx context.Context, bank string) context.Context {
	if bank == "" {
		return ctx
	}
	return context.WithValue(ctx, bankKey, bank)
}

// WithBuildID annotates context with the build identifier.
func WithBuildID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, buildIDKey, id)
}

// WithStep annotates context with the pipeline step name.
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// BuildIDFromContext returns the build identifier if present.
func BuildIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, buildIDKey)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if s, ok := ctx.Value(key).(string); ok && s != "" {
		return s, true
	}
	return "", false
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	fields := make([]slog.Attr, 0, 3)
	if bank, ok := stringValue(ctx, bankKey); ok {
		fields = append(fields, slog.String(FieldBank, bank))
	}
	if id, ok := stringValue(ctx, buildIDKey); ok {
		fields = append(fields, slog.String(FieldBuildID, id))
	}
	if step, ok := stringValue(ctx, stepKey); ok {
		fields = append(fields, slog.String(FieldStep, step))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, f)
	}
	return logger.With(args...)
}
