// Package middleware holds the HTTP middleware of the site.
package middleware

import (
	"context"

	"github.com/joseph082/aws-amplify-docs/internal/platform"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyRequestID ctxKey = "req_id"
	ctxKeyPlatform  ctxKey = "platform"
)

// WithRequestID stores request id in context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID gets request id from context
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

// WithPlatform stores the reader's platform in context.
func WithPlatform(ctx context.Context, p platform.Platform) context.Context {
	return context.WithValue(ctx, ctxKeyPlatform, p)
}

// PlatformFromContext returns the platform resolved by the Platform middleware.
func PlatformFromContext(ctx context.Context) (platform.Platform, bool) {
	p, ok := ctx.Value(ctxKeyPlatform).(platform.Platform)
	return p, ok && p != ""
}
