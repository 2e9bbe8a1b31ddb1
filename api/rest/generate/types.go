package generate

import (
	"context"

	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/notifications"
	"codeberg.org/contentstudio/server/internal/studio"
)

// the studio operations the generate handler needs
type ContentStudio interface {
	Generate(ctx context.Context, clientKey string, input content.BrandInput) (*studio.Result, error)
	Limit() int
}

// Request represents the request body for content generation
type Request = content.BrandInput

// Response represents a successful generation
type Response struct {
	Captions       []string            `json:"captions"`
	CaptionLengths []int               `json:"caption_lengths"`
	Hashtags       []string            `json:"hashtags"`
	Usage          studio.Usage        `json:"usage"`
	Notification   notifications.Toast `json:"notification"`
}
