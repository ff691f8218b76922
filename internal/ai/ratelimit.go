package ai

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// rateLimited paces outbound calls. Waiting honours ctx; nothing is retried.
type rateLimited struct {
	next     Generator
	limiter  *rate.Limiter
	provider string
}

// WithRateLimit wraps g so that at most rps calls per second (with the given
// burst) reach the provider. rps <= 0 returns g unchanged.
func WithRateLimit(g Generator, provider string, rps float64, burst int) Generator {
	if rps <= 0 {
		return g
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{next: g, limiter: rate.NewLimiter(rate.Limit(rps), burst), provider: provider}
}

func (r *rateLimited) wait(ctx context.Context) error {
	start := time.Now()
	err := r.limiter.Wait(ctx)
	aiRateLimitWait.WithLabelValues(r.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		return newGenerationError(r.provider, err)
	}
	return nil
}

func (r *rateLimited) Complete(ctx context.Context, prompt string) (Result, error) {
	if err := r.wait(ctx); err != nil {
		return Result{}, err
	}
	return r.next.Complete(ctx, prompt)
}

func (r *rateLimited) Chat(ctx context.Context, history []Turn) (Result, error) {
	if err := r.wait(ctx); err != nil {
		return Result{}, err
	}
	return r.next.Chat(ctx, history)
}
