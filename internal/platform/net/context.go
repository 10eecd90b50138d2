// Package net carries request-scoped values and the shared wire envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const userKey ctxKey = "user_id"

// WithRequest stores the request id where chi middleware expects it,
// so handler and middleware logging agree on the id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithUser stores the authenticated principal id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, userKey, userID)
	}
	return ctx
}

// RequestID reads the request id, empty when unset
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// UserID reads the principal id, empty when unset
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userKey).(string); ok {
		return v
	}
	return ""
}
