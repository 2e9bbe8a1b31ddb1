package notifications

import (
	"fmt"

	"codeberg.org/contentstudio/server/internal/studio"
)

// returns the toast for an outcome; limit is the daily cap quoted in the exhausted message
func For(outcome studio.Outcome, limit int) Toast {
	switch outcome.Kind {
	case studio.OutcomeQuotaExhausted:
		return Toast{
			Title:       "Daily limit reached",
			Description: fmt.Sprintf("You've used all %d free generations today. Upgrade to Pro for unlimited access!", limit),
			Variant:     VariantDestructive,
		}
	case studio.OutcomeValidationFailed:
		return Toast{
			Title:       "Missing information",
			Description: "Please fill in brand name, industry, and target audience.",
			Variant:     VariantDestructive,
		}
	case studio.OutcomeGenerated:
		return Toast{
			Title:       "Content generated!",
			Description: fmt.Sprintf("%d free generations remaining today.", outcome.Remaining),
			Variant:     VariantDefault,
		}
	case studio.OutcomeCopied:
		return Toast{
			Title:       "Copied!",
			Description: "Content copied to clipboard.",
			Variant:     VariantDefault,
		}
	case studio.OutcomeCopyFailed:
		return Toast{
			Title:       "Failed to copy",
			Description: "Please try again.",
			Variant:     VariantDestructive,
		}
	default:
		return Toast{
			Title:       "Generation failed",
			Description: "Something went wrong. Please try again.",
			Variant:     VariantDestructive,
		}
	}
}
