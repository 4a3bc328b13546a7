package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// GenerateTraceID returns a fresh UUID v4 trace ID.
func GenerateTraceID() string {
	return uuid.New().String()
}

// EnsureTraceID returns a context that carries a trace ID, generating
// one when missing. Lets code outside the HTTP stack, like the CLI,
// get correlated log lines the same way a web request does.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) == "" {
		return WithTraceID(ctx, GenerateTraceID())
	}
	return ctx
}
