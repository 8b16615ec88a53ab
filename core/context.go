package core

import "context"

type contextKey string

const suppressHeaderKey contextKey = "suppressHeader"

// WithSuppressHeader marks a context so result functions skip the stdout
// header lines. Used by the MCP server, where stdout carries protocol frames.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
