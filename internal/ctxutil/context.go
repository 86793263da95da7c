// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	runIDKey  contextKey = "ctxutil.runID"
	sourceKey contextKey = "ctxutil.source"
)

// WithRunID adds a comparison run ID to the context.
// One run ID covers both extractions and the match phase of a comparison.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
// Returns the run ID and true if found, empty string and false otherwise.
func GetRunID(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok
}

// WithSource adds the display name of the document being processed.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetSource retrieves the source name from the context.
// Returns the source name if found, empty string otherwise.
func GetSource(ctx context.Context) string {
	if v := ctx.Value(sourceKey); v != nil {
		if source, ok := v.(string); ok && source != "" {
			return source
		}
	}
	return ""
}
