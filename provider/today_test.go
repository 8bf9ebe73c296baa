package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodayIsStickyWithinACachedContext(t *testing.T) {
	ctx := WithTodayCache(context.Background())
	calls := 0
	now := func() time.Time {
		calls++
		return time.Date(2024, time.January, calls, 0, 0, 0, 0, time.UTC)
	}

	first := Today(ctx, now)
	second := Today(ctx, now)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestTodayCallsNowEveryTimeWithoutCache(t *testing.T) {
	ctx := context.Background()
	calls := 0
	now := func() time.Time {
		calls++
		return time.Date(2024, time.January, calls, 0, 0, 0, 0, time.UTC)
	}

	first := Today(ctx, now)
	second := Today(ctx, now)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, calls)
}
