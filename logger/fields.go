package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across runquery.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldPath      = "path"
	FieldFormat    = "format"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"
	FieldLine  = "line"

	// Status
	FieldStatus = "status"

	// Message stream
	FieldMessageKind      = "message_kind"
	FieldDocument         = "document_uri"
	FieldPickle           = "pickle_id"
	FieldTestCase         = "test_case_id"
	FieldTestCaseStarted  = "test_case_started_id"
	FieldTestStep         = "test_step_id"
	FieldWillBeRetried    = "will_be_retried"
	FieldProtocolVersion  = "protocol_version"
	FieldDisabledCategory = "category"
)

// Context keys for propagating logging context
type contextKey string

const (
	componentKey contextKey = "logger_component"
	sourceKey    contextKey = "logger_source"
)

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// WithSource adds the message source (file path) to the context for logging
func WithSource(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, sourceKey, path)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}
	if source, ok := ctx.Value(sourceKey).(string); ok && source != "" {
		fields = append(fields, FieldPath, source)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Repository struct {
//	    log *zap.SugaredLogger
//	}
//
//	func New() *Repository {
//	    return &Repository{
//	        log: logger.ComponentLogger("store"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
