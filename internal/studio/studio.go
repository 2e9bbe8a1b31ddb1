package studio

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/logger"
	"codeberg.org/contentstudio/server/internal/usage"
)

// creates a new studio
func New(tracker QuotaTracker, generator content.Generator) *Studio {
	return &Studio{
		tracker:   tracker,
		generator: generator,
	}
}

// validates input, holds one unit of quota, generates and records usage.
// usage only changes when generation succeeds.
func (s *Studio) Generate(ctx context.Context, clientKey string, input content.BrandInput) (*Result, error) {
	input = content.Normalize(input)
	if err := content.Validate(input); err != nil {
		return nil, err
	}

	reservation, err := s.tracker.Reserve(ctx, clientKey)
	if err != nil {
		return nil, err
	}

	bundle, err := s.generator.Generate(ctx, input)
	if err != nil {
		reservation.Release()
		return nil, err
	}

	// the content exists, so record it even if the caller has gone away
	record, err := reservation.Commit(context.WithoutCancel(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to record usage: %w", err)
	}

	logger.Debug("content generated",
		"client_key", clientKey,
		"platform", input.Platform,
		"count", record.Count,
	)

	return &Result{
		Bundle: bundle,
		Usage:  s.usageOf(record),
	}, nil
}

// returns today's usage for a client
func (s *Studio) Usage(ctx context.Context, clientKey string) (Usage, error) {
	record, err := s.tracker.CurrentUsage(ctx, clientKey)
	if err != nil {
		return Usage{}, err
	}

	return s.usageOf(record), nil
}

// returns the daily cap
func (s *Studio) Limit() int {
	return s.tracker.Limit()
}

func (s *Studio) usageOf(record usage.Record) Usage {
	return Usage{
		Count:     record.Count,
		Date:      record.Date,
		Limit:     s.tracker.Limit(),
		Remaining: s.tracker.Remaining(record),
	}
}

// maps the result of Generate to the outcome reported to the user
func OutcomeFor(result *Result, err error) Outcome {
	switch {
	case err == nil && result != nil:
		return Outcome{Kind: OutcomeGenerated, Remaining: result.Usage.Remaining}
	case errors.Is(err, content.ErrValidationFailed):
		return Outcome{Kind: OutcomeValidationFailed}
	case errors.Is(err, usage.ErrQuotaExhausted):
		return Outcome{Kind: OutcomeQuotaExhausted}
	default:
		return Outcome{Kind: OutcomeGenerationFailed}
	}
}

// maps the result of a clipboard copy to an outcome
func CopyOutcome(err error) Outcome {
	if err != nil {
		return Outcome{Kind: OutcomeCopyFailed}
	}
	return Outcome{Kind: OutcomeCopied}
}
