package usage

import (
	"context"

	"codeberg.org/contentstudio/server/internal/studio"
)

// the studio operation the usage handler needs
type UsageReader interface {
	Usage(ctx context.Context, clientKey string) (studio.Usage, error)
}

// UsageResponse is today's usage for the calling client
type UsageResponse = studio.Usage
