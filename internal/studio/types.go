package studio

import (
	"context"

	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/usage"
)

// the quota operations the studio needs
type QuotaTracker interface {
	Limit() int
	Remaining(record usage.Record) int
	CurrentUsage(ctx context.Context, key string) (usage.Record, error)
	Reserve(ctx context.Context, key string) (*usage.Reservation, error)
}

// runs the validate, check, generate, record sequence for one client
type Studio struct {
	tracker   QuotaTracker
	generator content.Generator
}

// usage counter as shown in the header
type Usage struct {
	Count     int    `json:"count"`
	Date      string `json:"date"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

// a successful generation together with the usage it left behind
type Result struct {
	Bundle *content.Bundle `json:"bundle"`
	Usage  Usage           `json:"usage"`
}

type OutcomeKind string

const (
	OutcomeQuotaExhausted   OutcomeKind = "quota_exhausted"
	OutcomeValidationFailed OutcomeKind = "validation_failed"
	OutcomeGenerated        OutcomeKind = "generation_succeeded"
	OutcomeGenerationFailed OutcomeKind = "generation_failed"
	OutcomeCopied           OutcomeKind = "copied"
	OutcomeCopyFailed       OutcomeKind = "copy_failed"
)

// categorical result of a user action; Remaining is set for OutcomeGenerated
type Outcome struct {
	Kind      OutcomeKind `json:"kind"`
	Remaining int         `json:"remaining"`
}
