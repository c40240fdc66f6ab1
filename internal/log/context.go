package log

import (
	"context"

	"github.com/rs/zerolog"
)

type requestIDKey struct{}

// WithRequestID stores id in ctx together with a copy of logger tagged with
// it, so handlers further down can log through Ctx.
func WithRequestID(ctx context.Context, logger zerolog.Logger, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return logger.With().Str("request_id", id).Logger().WithContext(ctx)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Ctx returns the request logger carried by ctx, falling back to Base.
func Ctx(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return Base()
}
