package content

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	captionCount = 3
	hashtagCount = 10
)

// generic tags appended after the brand and industry tags
var fixedHashtags = []string{
	"#MalaysiaBusiness",
	"#SocialMediaMarketing",
	"#ContentCreator",
	"#DigitalMarketing",
	"#SmallBusiness",
	"#Entrepreneur",
	"#MalaysianBrand",
	"#SupportLocal",
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func buildCaptions(input BrandInput) []string {
	brand, industry, audience := input.BrandName, string(input.Industry), input.TargetAudience

	return []string{
		fmt.Sprintf("🌟 %s brings you the best in %s! Perfect for %s. %s",
			brand, industry, audience, orDefault(input.Context, "Check it out today!")),
		fmt.Sprintf("Discover what makes %s special! Designed for %s who love %s. %s",
			brand, audience, industry, orDefault(input.Context, "Don't miss out!")),
		fmt.Sprintf("%s - your trusted %s partner! Made with %s in mind. %s",
			brand, industry, audience, orDefault(input.Context, "Experience the difference!")),
	}
}

func buildHashtags(input BrandInput) []string {
	tags := make([]string, 0, hashtagCount)
	tags = append(tags, hashtag(input.BrandName), hashtag(string(input.Industry)))
	return append(tags, fixedHashtags...)
}

// strips every whitespace character and prefixes '#'
func hashtag(s string) string {
	return "#" + strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
