package ai

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"shopassist/internal/domain"
	"shopassist/internal/metrics"
	"shopassist/internal/recommend"
)

const DefaultTimeout = 15 * time.Second

// Client asks the generative model for a ranked list and validates it. It
// never falls back on its own; every failure is returned to the caller.
type Client struct {
	gen     Generator
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient accepts a nil gen, in which case every call fails with a
// "no credentials" provider error. ratePerMin <= 0 disables the budget.
func NewClient(gen Generator, timeout time.Duration, ratePerMin int) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{gen: gen, timeout: timeout}
	if ratePerMin > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), ratePerMin)
	}
	return c
}

func (c *Client) Enabled() bool { return c != nil && c.gen != nil }

// Recommend makes a single attempt; there is no retry.
func (c *Client) Recommend(ctx context.Context, query string, candidates []domain.Product) (domain.RecommendationResult, error) {
	if !c.Enabled() {
		return domain.RecommendationResult{}, domain.AIProviderError("no credentials configured", nil)
	}
	if c.limiter != nil && !c.limiter.Allow() {
		return domain.RecommendationResult{}, domain.AIProviderError("request budget exhausted", nil)
	}

	prompt, err := BuildPrompt(query, candidates)
	if err != nil {
		return domain.RecommendationResult{}, domain.AIProviderError("build prompt", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.gen.Generate(callCtx, prompt)
	metrics.ObserveAICall(time.Since(start))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.RecommendationResult{}, domain.AIProviderError("timeout after "+c.timeout.String(), err)
		}
		return domain.RecommendationResult{}, domain.AIProviderError("generate", err)
	}

	return recommend.ValidateResponse(text, candidates)
}
