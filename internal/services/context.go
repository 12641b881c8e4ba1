package services

import "context"

type contextKey string

const (
	contextKeyItemID    contextKey = "item_id"
	contextKeyStage     contextKey = "stage"
	contextKeyRequestID contextKey = "request_id"
)

// WithItemID annotates a context with the queue item being processed.
func WithItemID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, contextKeyItemID, id)
}

// ItemIDFromContext extracts the queue item identifier, when present.
func ItemIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(contextKeyItemID).(int64)
	return id, ok
}

// WithStage annotates a context with the active workflow stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, contextKeyStage, stage)
}

// StageFromContext extracts the active workflow stage name, when present.
func StageFromContext(ctx context.Context) (string, bool) {
	stage, ok := ctx.Value(contextKeyStage).(string)
	return stage, ok
}

// WithRequestID annotates a context with a per-item correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, id)
}

// RequestIDFromContext extracts the correlation identifier, when present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKeyRequestID).(string)
	return id, ok
}
