package tui

import (
	"codeberg.org/contentstudio/server/internal/content"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// field order on the form
const (
	fieldBrandName = iota
	fieldIndustry
	fieldAudience
	fieldPlatform
	fieldTone
	fieldContentType
	fieldContext

	// focus index of the actions row below the form
	focusActions
)

func newTextField(label, placeholder string, required bool) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	return field{label: label, required: required, kind: fieldText, input: ti, selected: -1}
}

func newChoiceField(label string, options []content.Option, selected int, required bool) field {
	return field{label: label, required: required, kind: fieldChoice, options: options, selected: selected}
}

// returns the brand form with the page's defaults selected
func newFields() []field {
	opts := content.AllOptions()

	return []field{
		fieldBrandName:   newTextField("Brand Name", "e.g., Sarah's Cafe", true),
		fieldIndustry:    newChoiceField("Industry/Niche", opts.Industries, -1, true),
		fieldAudience:    newTextField("Target Audience", "e.g., Young professionals aged 25-35", true),
		fieldPlatform:    newChoiceField("Platform", opts.Platforms, 0, false),
		fieldTone:        newChoiceField("Tone of Voice", opts.Tones, 0, false),
		fieldContentType: newChoiceField("Content Type", opts.ContentTypes, 0, false),
		fieldContext:     newTextField("Additional Context (Optional)", "e.g., launching a new product, special promotion", false),
	}
}

// steps the selection by delta, wrapping around
func (f *field) cycle(delta int) {
	if f.kind != fieldChoice || len(f.options) == 0 {
		return
	}

	n := len(f.options)
	if f.selected < 0 {
		if delta > 0 {
			f.selected = 0
		} else {
			f.selected = n - 1
		}
		return
	}

	f.selected = ((f.selected+delta)%n + n) % n
}

func (f *field) value() string {
	if f.kind == fieldText {
		return f.input.Value()
	}

	if f.selected < 0 || f.selected >= len(f.options) {
		return ""
	}

	return f.options[f.selected].Value
}

// collects the form into a brand input
func brandInput(fields []field) content.BrandInput {
	return content.BrandInput{
		BrandName:      fields[fieldBrandName].value(),
		Industry:       content.Industry(fields[fieldIndustry].value()),
		TargetAudience: fields[fieldAudience].value(),
		Platform:       content.Platform(fields[fieldPlatform].value()),
		Tone:           content.Tone(fields[fieldTone].value()),
		ContentType:    content.ContentType(fields[fieldContentType].value()),
		Context:        fields[fieldContext].value(),
	}
}
