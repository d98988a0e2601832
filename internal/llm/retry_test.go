package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), RetryConfig{MaxAttempts: 3}, func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_RecoversBeforeLimit(t *testing.T) {
	calls := 0
	var retried []int
	cfg := RetryConfig{
		MaxAttempts: 3,
		Backoff:     time.Millisecond,
		OnRetry:     func(attempt int, err error) { retried = append(retried, attempt) },
	}

	err := RetryWithBackoff(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestRetryWithBackoff_ExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")

	err := RetryWithBackoff(context.Background(), RetryConfig{MaxAttempts: 4, Backoff: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return boom
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, boom)
}

func TestRetryWithBackoff_FixedInterval(t *testing.T) {
	var stamps []time.Time
	backoff := 20 * time.Millisecond

	_ = RetryWithBackoff(context.Background(), RetryConfig{MaxAttempts: 3, Backoff: backoff}, func(ctx context.Context) error {
		stamps = append(stamps, time.Now())
		return errors.New("fail")
	})

	require.Len(t, stamps, 3)
	for i := 1; i < len(stamps); i++ {
		assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), backoff)
	}
}

func TestRetryWithBackoff_DefaultsToThreeAttempts(t *testing.T) {
	calls := 0
	_ = RetryWithBackoff(context.Background(), RetryConfig{}, func(ctx context.Context) error {
		calls++
		return errors.New("fail")
	})

	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ContextCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := RetryWithBackoff(ctx, RetryConfig{MaxAttempts: 5, Backoff: time.Hour}, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_AttemptTimeout(t *testing.T) {
	err := RetryWithBackoff(context.Background(), RetryConfig{MaxAttempts: 1, AttemptTimeout: 10 * time.Millisecond}, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestRetryCompleter(t *testing.T) {
	t.Run("returns text after transient failures", func(t *testing.T) {
		calls := 0
		inner := CompleterFunc(func(ctx context.Context, system, user string) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("503")
			}
			return "ok:" + system + ":" + user, nil
		})
		rc := &RetryCompleter{Inner: inner, RetryCfg: RetryConfig{MaxAttempts: 3, Backoff: time.Millisecond}, Module: ModuleAgentJudge}

		out, err := rc.Complete(context.Background(), "sys", "usr")
		require.NoError(t, err)
		assert.Equal(t, "ok:sys:usr", out)
		assert.Equal(t, 2, calls)
	})

	t.Run("surfaces a single terminal failure", func(t *testing.T) {
		calls := 0
		inner := CompleterFunc(func(ctx context.Context, system, user string) (string, error) {
			calls++
			return "", errors.New("down")
		})
		rc := &RetryCompleter{Inner: inner, RetryCfg: RetryConfig{MaxAttempts: 2, Backoff: time.Millisecond}}

		out, err := rc.Complete(context.Background(), "sys", "usr")
		assert.Empty(t, out)
		assert.ErrorIs(t, err, ErrRetriesExhausted)
		assert.Equal(t, 2, calls)
	})

	t.Run("empty completion is not an error", func(t *testing.T) {
		inner := CompleterFunc(func(ctx context.Context, system, user string) (string, error) {
			return "", nil
		})
		rc := &RetryCompleter{Inner: inner, RetryCfg: RetryConfig{MaxAttempts: 2}}

		out, err := rc.Complete(context.Background(), "sys", "usr")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
