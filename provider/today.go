package provider

import (
	"context"
	"time"
)

// "Sticky today vs now": today captures its timestamp on first
// evaluation within a render and reuses it for the rest of that render;
// now takes a fresh timestamp on every evaluation (spec.md §9). The
// cache lives on the context so the builtin filesystem/date provider,
// which is registered once and reused across every render, can still
// observe one sticky value per render without keeping state of its own.
type todayKey struct{}

type todayBox struct {
	t *time.Time
}

// WithTodayCache returns a context carrying a fresh, empty today-cache
// box. The evaluator calls this once per top-level render.
func WithTodayCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, todayKey{}, &todayBox{})
}

// Today returns the render's sticky "today" timestamp, computing and
// caching it via now on first call. If ctx carries no cache box (e.g. a
// provider is called outside a render), now is called directly.
func Today(ctx context.Context, now func() time.Time) time.Time {
	box, ok := ctx.Value(todayKey{}).(*todayBox)
	if !ok {
		return now()
	}
	if box.t == nil {
		t := now()
		box.t = &t
	}
	return *box.t
}
