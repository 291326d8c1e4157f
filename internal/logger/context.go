package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const interactionIDKey ctxKey = "interaction_id"

// WithInteraction tags ctx with a fresh id correlating all log lines produced
// by one user interaction (a catalog load, a submission attempt).
func WithInteraction(ctx context.Context) context.Context {
	return context.WithValue(ctx, interactionIDKey, uuid.NewString())
}

func InteractionIDFrom(ctx context.Context) string {
	if v := ctx.Value(interactionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns the logger with the interaction id automatically added.
func FromCtx(ctx context.Context) *zap.Logger {
	id := InteractionIDFrom(ctx)
	if id == "" {
		return L()
	}
	return L().With(zap.String("interaction_id", id))
}
