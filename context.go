package animefilter

import (
	"context"
	"time"
)

type ctxKeyNow struct{}

// WithNow pins the evaluation clock for calls made with ctx.
func WithNow(ctx context.Context, now time.Time) context.Context {
	return context.WithValue(ctx, ctxKeyNow{}, now)
}

// GetNow returns the time pinned by WithNow.
func GetNow(ctx context.Context) (time.Time, bool) {
	now, ok := ctx.Value(ctxKeyNow{}).(time.Time)
	return now, ok
}
