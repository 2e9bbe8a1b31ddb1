package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/contentstudio/server/internal/clipboard"
	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/logger"
	"codeberg.org/contentstudio/server/internal/notifications"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/usage"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// how long a copy button shows "Copied!"
const copiedMarkerDuration = 2 * time.Second

// creates the generate screen
func NewApp(backend Backend, copier *clipboard.Copier) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPurple)

	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		backend: backend,
		copier:  copier,
		fields:  newFields(),
		spinner: s,
	}

	m.fields[fieldBrandName].input.Focus()

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchUsageCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case GeneratedMsg:
		return m.handleGenerated(msg)

	case UsageMsg:
		return m.handleUsage(msg)

	case clearCopiedMsg:
		if msg.seq == m.copySeq {
			m.copied = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.close()
		return m, tea.Quit

	case "tab", "down":
		return m, m.moveFocus(1)

	case "shift+tab", "up":
		return m, m.moveFocus(-1)

	case "ctrl+g":
		return m, m.generate()

	case "enter":
		if m.focus == focusActions {
			return m, m.generate()
		}
		return m, m.moveFocus(1)

	case "left", "right":
		if m.focus < len(m.fields) && m.fields[m.focus].kind == fieldChoice {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.fields[m.focus].cycle(delta)
			return m, nil
		}
	}

	if m.focus == focusActions {
		switch msg.String() {
		case "1", "2", "3":
			return m, m.copyCaption(int(msg.Runes[0] - '1'))
		case "h":
			return m, m.copyHashtags()
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.fields) || m.fields[m.focus].kind != fieldText {
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)

	return m, cmd
}

// moves focus through the form rows and the actions row
func (m *Model) moveFocus(delta int) tea.Cmd {
	if m.focus < len(m.fields) && m.fields[m.focus].kind == fieldText {
		m.fields[m.focus].input.Blur()
	}

	n := focusActions + 1
	m.focus = ((m.focus+delta)%n + n) % n

	if m.focus < len(m.fields) && m.fields[m.focus].kind == fieldText {
		return m.fields[m.focus].input.Focus()
	}

	return nil
}

// reports whether the generate action is disabled
func (m *Model) generateDisabled() bool {
	return m.generating || m.exhausted()
}

func (m *Model) exhausted() bool {
	return m.usage.Limit > 0 && m.usage.Remaining == 0
}

func (m *Model) limit() int {
	if m.usage.Limit > 0 {
		return m.usage.Limit
	}
	return usage.MaxFreeUsage
}

// starts a generate request unless one is outstanding or the quota is gone
func (m *Model) generate() tea.Cmd {
	if m.closed || m.generating || m.rechecking {
		return nil
	}

	// the day may have rolled over since the quota ran out, so re-read usage first
	if m.exhausted() {
		m.rechecking = true
		return m.recheckUsageCmd()
	}

	m.seq++
	m.generating = true
	m.toast = nil

	return tea.Batch(m.spinner.Tick, m.generateCmd(m.seq, brandInput(m.fields)))
}

func (m *Model) generateCmd(seq int, input content.BrandInput) tea.Cmd {
	ctx, backend := m.ctx, m.backend

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		result, err := backend.Generate(ctx, input)
		return GeneratedMsg{seq: seq, result: result, err: err}
	}
}

func (m *Model) fetchUsageCmd() tea.Cmd {
	ctx, backend := m.ctx, m.backend

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		u, err := backend.Usage(ctx)
		return UsageMsg{usage: u, err: err}
	}
}

// re-reads usage and retries the generate action once the result arrives
func (m *Model) recheckUsageCmd() tea.Cmd {
	fetch := m.fetchUsageCmd()

	return func() tea.Msg {
		msg := fetch().(UsageMsg)
		msg.retry = true
		return msg
	}
}

func (m *Model) handleUsage(msg UsageMsg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	if msg.retry {
		m.rechecking = false
	}

	if msg.err != nil {
		logger.Warn("failed to read usage", "error", msg.err)
	} else {
		m.usage = msg.usage
	}

	if !msg.retry {
		return m, nil
	}

	if m.exhausted() {
		m.showToast(studio.Outcome{Kind: studio.OutcomeQuotaExhausted})
		return m, nil
	}

	return m, m.generate()
}

func (m *Model) handleGenerated(msg GeneratedMsg) (tea.Model, tea.Cmd) {
	// completions for a closed screen or a superseded request are dropped
	if m.closed || msg.seq != m.seq {
		return m, nil
	}

	m.generating = false
	outcome := studio.OutcomeFor(msg.result, msg.err)
	m.showToast(outcome)

	switch outcome.Kind {
	case studio.OutcomeGenerated:
		m.bundle = msg.result.Bundle
		m.usage = msg.result.Usage
		m.copied = ""
		m.blurAll()
		m.focus = focusActions
		return m, nil

	case studio.OutcomeQuotaExhausted:
		return m, m.fetchUsageCmd()

	case studio.OutcomeGenerationFailed:
		logger.ErrorErr(msg.err, "generation failed")
	}

	return m, nil
}

func (m *Model) copyCaption(i int) tea.Cmd {
	if m.bundle == nil {
		return nil
	}

	err := m.copier.CopyCaption(m.bundle, i)
	return m.afterCopy(err, fmt.Sprintf("caption-%d", i))
}

func (m *Model) copyHashtags() tea.Cmd {
	if m.bundle == nil {
		return nil
	}

	err := m.copier.CopyHashtags(m.bundle)
	return m.afterCopy(err, "hashtags")
}

func (m *Model) afterCopy(err error, target string) tea.Cmd {
	m.showToast(studio.CopyOutcome(err))

	if err != nil {
		logger.Warn("copy failed", "target", target, "error", err)
		return nil
	}

	m.copySeq++
	m.copied = target
	seq := m.copySeq

	return tea.Tick(copiedMarkerDuration, func(time.Time) tea.Msg {
		return clearCopiedMsg{seq: seq}
	})
}

func (m *Model) showToast(outcome studio.Outcome) {
	toast := notifications.For(outcome, m.limit())
	m.toast = &toast
}

func (m *Model) blurAll() {
	for i := range m.fields {
		if m.fields[i].kind == fieldText {
			m.fields[i].input.Blur()
		}
	}
}

// cancels in-flight requests; later completions are ignored
func (m *Model) close() {
	m.closed = true
	m.cancel()
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AI Content Studio"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Create engaging social media content for your brand"))
	b.WriteString("\n")

	remaining := m.limit()
	if m.usage.Limit > 0 {
		remaining = m.usage.Remaining
	}
	b.WriteString(infoStyle.Render("Free generations: "))
	b.WriteString(counterStyle.Render(fmt.Sprintf("%d/%d", remaining, m.limit())))
	b.WriteString("\n\n")

	for i := range m.fields {
		b.WriteString(m.fieldView(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.buttonView())
	b.WriteString("\n\n")

	if m.bundle != nil {
		b.WriteString(m.resultsView())
		b.WriteString("\n")
	} else {
		b.WriteString(infoStyle.Render("Ready to create? Fill in the form and generate to see your content."))
		b.WriteString("\n")
	}

	if m.toast != nil {
		b.WriteString("\n")
		b.WriteString(toastView(*m.toast))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("[Tab/↑↓: Move] [←→: Choose] [Enter/Ctrl+G: Generate] [1-3: Copy caption] [H: Copy hashtags] [Esc: Exit]"))

	return b.String()
}

func (m *Model) fieldView(i int) string {
	f := m.fields[i]

	label := f.label
	if f.required {
		label += " *"
	}

	style := labelStyle
	if m.focus == i {
		style = labelFocusedStyle
	}

	if f.kind == fieldText {
		return style.Render(label) + "\n" + f.input.View()
	}

	choice := infoStyle.Render("Select " + strings.ToLower(strings.TrimSuffix(f.label, "/Niche")))
	if f.selected >= 0 {
		opt := f.options[f.selected]
		choice = choiceStyle.Render(opt.Label)
		if opt.Pro {
			choice += " " + proStyle.Render("(Pro)")
		}
	}

	return style.Render(label) + "\n  ‹ " + choice + " ›"
}

func (m *Model) buttonView() string {
	label := "✨ Generate Content"
	if m.generating {
		label = m.spinner.View() + " Generating..."
	}

	if m.generateDisabled() {
		return buttonDisabledStyle.Render(label)
	}

	if m.focus == focusActions {
		return buttonStyle.Bold(true).Render("› " + label)
	}

	return buttonStyle.Render(label)
}

func (m *Model) resultsView() string {
	var b strings.Builder

	b.WriteString(labelFocusedStyle.Render("Generated Captions"))
	b.WriteString("\n")

	lengths := m.bundle.CaptionLengths()
	for i, caption := range m.bundle.Captions {
		action := fmt.Sprintf("[%d] Copy", i+1)
		if m.copied == fmt.Sprintf("caption-%d", i) {
			action = "Copied!"
		}

		meta := infoStyle.Render(fmt.Sprintf("%d characters  %s", lengths[i], action))
		b.WriteString(resultBoxStyle.Render(caption + "\n" + meta))
		b.WriteString("\n")
	}

	b.WriteString(labelFocusedStyle.Render("Suggested Hashtags"))
	b.WriteString("\n")

	action := "[H] Copy All Hashtags"
	if m.copied == "hashtags" {
		action = "Copied!"
	}

	b.WriteString(resultBoxStyle.Render(m.bundle.HashtagLine() + "\n" + infoStyle.Render(action)))

	return b.String()
}

func toastView(t notifications.Toast) string {
	style := toastStyle
	if t.Variant == notifications.VariantDestructive {
		style = toastDestructiveStyle
	}

	return style.Render(lipgloss.NewStyle().Bold(true).Render(t.Title) + "\n" + t.Description)
}
