package telemetry

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader is honored on incoming requests so callers can correlate
// their own logs with ours.
const RequestIDHeader = "x-request-id"

const FieldRequestID = "request_id"

type requestContextKey struct{}

func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stamps a request id into the context, minting one when the
// caller supplied none.
func WithRequestID(ctx context.Context, requestID string) (context.Context, string) {
	if existing, ok := RequestIDFromContext(ctx); ok && requestID == "" {
		return ctx, existing
	}
	if requestID == "" {
		requestID = NewRequestID()
	}
	return context.WithValue(ctx, requestContextKey{}, requestID), requestID
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	requestID, ok := ctx.Value(requestContextKey{}).(string)
	return requestID, ok && requestID != ""
}

// LoggerWithRequest decorates a logger with the context's request id.
func LoggerWithRequest(ctx context.Context, base *zap.Logger) *zap.Logger {
	logger := base
	if logger == nil {
		logger = zap.NewNop()
	}
	requestID, ok := RequestIDFromContext(ctx)
	if !ok {
		return logger
	}
	return logger.With(zap.String(FieldRequestID, requestID))
}
