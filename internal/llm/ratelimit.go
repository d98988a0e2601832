package llm

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// MaxRateLimitWait caps how long a single rate-limit pause may last.
const MaxRateLimitWait = 2 * time.Minute

// bareMaxMessageSize bounds the error text searched for bare rate-limit
// phrases so that echoed prompt content cannot trigger a match.
const bareMaxMessageSize = 500

var (
	// "Please try again in 20s", "try again in 1.5s", "try again in 250ms"
	tryAgainRe = regexp.MustCompile(`(?i)(?:try again|retry) in\s+(\d+(?:\.\d+)?)\s*(ms|s|sec|seconds?)\b`)
	// Gemini RetryInfo detail: "retryDelay": "14s"
	retryDelayRe = regexp.MustCompile(`(?i)"?retryDelay"?\s*[:=]\s*"(\d+(?:\.\d+)?)s"`)

	barePatterns = []string{
		"rate limit",
		"rate_limit",
		"too many requests",
		"resource_exhausted",
		"quota exceeded",
	}
)

// RateLimitInfo describes a rate-limit failure.
type RateLimitInfo struct {
	// Detected is set when err looks like a rate-limit failure.
	Detected bool
	// Delay is the provider-suggested wait, zero when none was given.
	Delay time.Duration
}

// CheckRateLimit classifies err. OpenAI errors are recognised by their
// HTTP status; other providers by their message text.
func CheckRateLimit(err error) RateLimitInfo {
	if err == nil {
		return RateLimitInfo{}
	}

	detected := false
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		detected = apiErr.HTTPStatusCode == http.StatusTooManyRequests
	case errors.As(err, &reqErr):
		detected = reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	msg := err.Error()
	if !detected && len(msg) <= bareMaxMessageSize {
		lower := strings.ToLower(msg)
		for _, p := range barePatterns {
			if strings.Contains(lower, p) {
				detected = true
				break
			}
		}
	}
	if !detected {
		return RateLimitInfo{}
	}
	return RateLimitInfo{Detected: true, Delay: parseDelay(msg)}
}

// parseDelay extracts the suggested wait from a provider error message.
func parseDelay(msg string) time.Duration {
	if m := tryAgainRe.FindStringSubmatch(msg); m != nil {
		return toDuration(m[1], m[2])
	}
	if m := retryDelayRe.FindStringSubmatch(msg); m != nil {
		return toDuration(m[1], "s")
	}
	return 0
}

func toDuration(value, unit string) time.Duration {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	if strings.ToLower(unit) == "ms" {
		return time.Duration(f * float64(time.Millisecond))
	}
	return time.Duration(f * float64(time.Second))
}

// waitFor returns how long to sleep before the next attempt after err.
// Rate-limited attempts wait at least the suggested delay, capped at limit.
func waitFor(err error, backoff, limit time.Duration) time.Duration {
	info := CheckRateLimit(err)
	if !info.Detected || info.Delay <= backoff {
		return backoff
	}
	if limit <= 0 {
		limit = MaxRateLimitWait
	}
	if info.Delay > limit {
		return limit
	}
	return info.Delay
}
