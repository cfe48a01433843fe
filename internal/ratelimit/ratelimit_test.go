package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleRateLimiterEnforcesDelay(t *testing.T) {
	limiter := NewSimpleRateLimiter(50*time.Millisecond, 50*time.Millisecond)

	require.NoError(t, limiter.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestSimpleRateLimiterCancelledContext(t *testing.T) {
	limiter := NewSimpleRateLimiter(time.Minute, time.Minute)
	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAdaptiveRateLimiterBacksOffOnErrors(t *testing.T) {
	limiter := NewAdaptiveRateLimiter(2*time.Second, 10*time.Second)

	for i := 0; i < 3; i++ {
		limiter.RecordError()
	}

	min, max := limiter.Delays()
	assert.Equal(t, 3*time.Second, min)
	assert.Equal(t, 15*time.Second, max)
}

func TestAdaptiveRateLimiterSpeedsUpOnSuccesses(t *testing.T) {
	limiter := NewAdaptiveRateLimiter(10*time.Second, 20*time.Second)

	for i := 0; i < 6; i++ {
		limiter.RecordSuccess()
	}

	min, _ := limiter.Delays()
	assert.Equal(t, 9*time.Second, min)
}

func TestAdaptiveRateLimiterBackoffIsCapped(t *testing.T) {
	limiter := NewAdaptiveRateLimiter(55*time.Second, 115*time.Second)

	for i := 0; i < 3; i++ {
		limiter.RecordError()
	}

	min, max := limiter.Delays()
	assert.Equal(t, 60*time.Second, min)
	assert.Equal(t, 120*time.Second, max)
}

func TestErrorsResetSuccessStreak(t *testing.T) {
	limiter := NewAdaptiveRateLimiter(10*time.Second, 20*time.Second)

	for i := 0; i < 5; i++ {
		limiter.RecordSuccess()
	}
	limiter.RecordError()

	min, _ := limiter.Delays()
	assert.Equal(t, 10*time.Second, min)
}
