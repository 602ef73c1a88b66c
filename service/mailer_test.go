package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWithRetryFirstAttempt(t *testing.T) {
	calls := 0

	err := SendWithRetry(context.Background(), 3, time.Millisecond, func(attempt int) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSendWithRetryEventualSuccess(t *testing.T) {
	calls := 0

	err := SendWithRetry(context.Background(), 3, time.Millisecond, func(attempt int) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestSendWithRetryExhausted(t *testing.T) {
	calls := 0
	sendErr := errors.New("connection refused")

	err := SendWithRetry(context.Background(), 3, time.Millisecond, func(attempt int) error {
		calls++
		return sendErr
	})

	require.ErrorIs(t, err, sendErr)
	assert.Equal(t, 3, calls)
}

func TestSendWithRetryPassesAttemptNumber(t *testing.T) {
	var attempts []int

	_ = SendWithRetry(context.Background(), 3, time.Millisecond, func(attempt int) error {
		attempts = append(attempts, attempt)
		return errors.New("nope")
	})

	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestSendWithRetryCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	sendErr := errors.New("connection refused")

	err := SendWithRetry(ctx, 3, time.Hour, func(attempt int) error {
		calls++
		cancel()
		return sendErr
	})

	require.ErrorIs(t, err, sendErr)
	assert.Equal(t, 1, calls)
}
