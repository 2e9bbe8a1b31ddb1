package content

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// simulated latency of a generation call
const DefaultLatency = 2 * time.Second

// sleeps on a timer, returning early when ctx is done
type TimerDelay struct{}

func (TimerDelay) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// returns immediately unless ctx is already done
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// sets the simulated latency
func WithLatency(d time.Duration) GeneratorOption {
	return func(g *TemplateGenerator) {
		if d >= 0 {
			g.latency = d
		}
	}
}

// sets how latency is waited out
func WithDelay(delay Delay) GeneratorOption {
	return func(g *TemplateGenerator) {
		if delay != nil {
			g.delay = delay
		}
	}
}

// paces generation calls through limiter
func WithRateLimiter(limiter *rate.Limiter) GeneratorOption {
	return func(g *TemplateGenerator) {
		g.limiter = limiter
	}
}

// creates a new template generator
func NewTemplateGenerator(opts ...GeneratorOption) *TemplateGenerator {
	g := &TemplateGenerator{
		delay:   TimerDelay{},
		latency: DefaultLatency,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// waits out the simulated latency, then fills the caption and hashtag templates.
// input is expected to be validated by the caller.
func (g *TemplateGenerator) Generate(ctx context.Context, input BrandInput) (*Bundle, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("generation rate limit wait failed: %w", err)
		}
	}

	if err := g.delay.Wait(ctx, g.latency); err != nil {
		return nil, fmt.Errorf("generation interrupted: %w", err)
	}

	return &Bundle{
		Captions: buildCaptions(input),
		Hashtags: buildHashtags(input),
	}, nil
}
