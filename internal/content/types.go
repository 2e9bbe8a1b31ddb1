package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// returned (wrapped in *ValidationError) when required brand fields are missing or invalid
var ErrValidationFailed = errors.New("validation failed")

type Industry string

const (
	IndustryFashion      Industry = "fashion"
	IndustryFoodBeverage Industry = "food-beverage"
	IndustryTech         Industry = "tech"
	IndustryBeauty       Industry = "beauty"
	IndustryFitness      Industry = "fitness"
	IndustryEducation    Industry = "education"
	IndustryOther        Industry = "other"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
)

type Tone string

const (
	ToneFriendly      Tone = "friendly"
	ToneProfessional  Tone = "professional"
	TonePlayful       Tone = "playful"
	ToneInspirational Tone = "inspirational"
	ToneCasual        Tone = "casual"
)

type ContentType string

const (
	ContentPromotional  ContentType = "promotional"
	ContentEducational  ContentType = "educational"
	ContentEngagement   ContentType = "engagement"
	ContentAnnouncement ContentType = "announcement"
)

// defaults applied by Normalize
const (
	DefaultPlatform    = PlatformInstagram
	DefaultTone        = ToneFriendly
	DefaultContentType = ContentPromotional
)

// brand details submitted from the form
type BrandInput struct {
	BrandName      string      `json:"brand_name" validate:"required"`
	Industry       Industry    `json:"industry" validate:"required,oneof=fashion food-beverage tech beauty fitness education other"`
	TargetAudience string      `json:"target_audience" validate:"required"`
	Platform       Platform    `json:"platform,omitempty" validate:"omitempty,oneof=instagram facebook tiktok linkedin"`
	Tone           Tone        `json:"tone,omitempty" validate:"omitempty,oneof=friendly professional playful inspirational casual"`
	ContentType    ContentType `json:"content_type,omitempty" validate:"omitempty,oneof=promotional educational engagement announcement"`
	Context        string      `json:"context,omitempty"`
}

// generated captions and hashtags
type Bundle struct {
	Captions []string `json:"captions"`
	Hashtags []string `json:"hashtags"`
}

// all hashtags joined by single spaces, the form copied to the clipboard
func (b *Bundle) HashtagLine() string {
	return strings.Join(b.Hashtags, " ")
}

// character count of each caption
func (b *Bundle) CaptionLengths() []int {
	lengths := make([]int, len(b.Captions))
	for i, caption := range b.Captions {
		lengths[i] = len([]rune(caption))
	}
	return lengths
}

// one selectable value of an enumerated field
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Pro   bool   `json:"pro,omitempty"`
}

// the enumerated form fields with their display labels
type Options struct {
	Industries   []Option `json:"industries"`
	Platforms    []Option `json:"platforms"`
	Tones        []Option `json:"tones"`
	ContentTypes []Option `json:"content_types"`
}

// produces content for a brand
type Generator interface {
	Generate(ctx context.Context, input BrandInput) (*Bundle, error)
}

// simulated generation latency
type Delay interface {
	Wait(ctx context.Context, d time.Duration) error
}

// template-based generator with simulated latency
type TemplateGenerator struct {
	delay   Delay
	latency time.Duration
	limiter *rate.Limiter
}

// configures a TemplateGenerator
type GeneratorOption func(*TemplateGenerator)
