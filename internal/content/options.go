package content

var industryOptions = []Option{
	{Value: string(IndustryFashion), Label: "Fashion"},
	{Value: string(IndustryFoodBeverage), Label: "Food & Beverage"},
	{Value: string(IndustryTech), Label: "Technology"},
	{Value: string(IndustryBeauty), Label: "Beauty"},
	{Value: string(IndustryFitness), Label: "Fitness"},
	{Value: string(IndustryEducation), Label: "Education"},
	{Value: string(IndustryOther), Label: "Other"},
}

var platformOptions = []Option{
	{Value: string(PlatformInstagram), Label: "Instagram"},
	{Value: string(PlatformFacebook), Label: "Facebook"},
	{Value: string(PlatformTikTok), Label: "TikTok"},
	{Value: string(PlatformLinkedIn), Label: "LinkedIn", Pro: true},
}

var toneOptions = []Option{
	{Value: string(ToneFriendly), Label: "Friendly"},
	{Value: string(ToneProfessional), Label: "Professional"},
	{Value: string(TonePlayful), Label: "Playful"},
	{Value: string(ToneInspirational), Label: "Inspirational"},
	{Value: string(ToneCasual), Label: "Casual"},
}

var contentTypeOptions = []Option{
	{Value: string(ContentPromotional), Label: "Promotional"},
	{Value: string(ContentEducational), Label: "Educational"},
	{Value: string(ContentEngagement), Label: "Engagement"},
	{Value: string(ContentAnnouncement), Label: "Announcement"},
}

// returns a copy of every enumerated field's options
func AllOptions() Options {
	return Options{
		Industries:   append([]Option(nil), industryOptions...),
		Platforms:    append([]Option(nil), platformOptions...),
		Tones:        append([]Option(nil), toneOptions...),
		ContentTypes: append([]Option(nil), contentTypeOptions...),
	}
}

// returns the display label for value, or value itself when unknown
func Label(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
