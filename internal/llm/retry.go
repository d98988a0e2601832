package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/CodexForgeBR/casegen/internal/logging"
)

// RetryConfig configures fixed-interval retry behavior.
type RetryConfig struct {
	MaxAttempts    int           // total attempts, default 3
	Backoff        time.Duration // sleep between attempts
	AttemptTimeout time.Duration // per-attempt deadline, 0 disables
	MaxRateLimit   time.Duration // cap on a rate-limit pause, 0 means MaxRateLimitWait
	OnRetry        func(attempt int, err error)
}

// RetryWithBackoff calls fn until it succeeds or MaxAttempts is reached,
// sleeping Backoff between attempts. A rate-limited attempt sleeps for the
// provider's suggested delay instead when that is longer. The sleep is cut
// short by ctx.
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = runAttempt(ctx, cfg.AttemptTimeout, fn)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, lastErr)
		}

		if attempt < cfg.MaxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitFor(lastErr, cfg.Backoff, cfg.MaxRateLimit)):
			}
		}
	}

	return fmt.Errorf("%w (%d attempts): %w", ErrRetriesExhausted, cfg.MaxAttempts, lastErr)
}

func runAttempt(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}

// RetryCompleter wraps any Completer with RetryWithBackoff retry logic.
type RetryCompleter struct {
	Inner    Completer
	RetryCfg RetryConfig
	Module   string
}

// Complete delegates to the inner completer, retrying on failure. Each
// failed attempt is logged as a warning.
func (r *RetryCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	cfg := r.RetryCfg
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error) {
		if info := CheckRateLimit(err); info.Detected {
			logging.Warn(fmt.Sprintf("LLM rate limited [%s] (attempt %d/%d), waiting %s", r.moduleName(), attempt, cfg.MaxAttempts, waitFor(err, cfg.Backoff, cfg.MaxRateLimit)))
		} else {
			logging.Warn(fmt.Sprintf("LLM request failed [%s] (attempt %d/%d): %v", r.moduleName(), attempt, cfg.MaxAttempts, err))
		}
		if onRetry != nil {
			onRetry(attempt, err)
		}
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	var out string
	err := RetryWithBackoff(ctx, cfg, func(ctx context.Context) error {
		text, err := r.Inner.Complete(ctx, system, user)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (r *RetryCompleter) moduleName() string {
	if r.Module == "" {
		return "default"
	}
	return r.Module
}
