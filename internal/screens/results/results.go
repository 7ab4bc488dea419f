// Package results shows the freshly built learning profile before the
// learner moves on to picking a topic.
package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/profile"
	"lovlearn/internal/router"
	"lovlearn/internal/screen"
	"lovlearn/internal/screens/placeholder"
	"lovlearn/internal/screens/topicselector"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

// ResultsScreen renders the quiz outcome.
type ResultsScreen struct {
	app       *state.App
	generator *guide.Generator
	coachSvc  *coach.Coach
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen.
func New(app *state.App, generator *guide.Generator, coachSvc *coach.Coach) *ResultsScreen {
	return &ResultsScreen{app: app, generator: generator, coachSvc: coachSvc}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start learning"},
		{Key: "Esc", Description: "Home"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || kmsg.String() != "enter" {
		return r, nil
	}

	var next screen.Screen
	if r.generator == nil {
		next = placeholder.New("AI Unavailable",
			"No AI provider is configured, so study guides cannot be generated yet. "+
				"Set LOVLEARN_GEMINI_API_KEY and restart.")
	} else {
		next = topicselector.New(r.app, r.generator, r.coachSvc)
	}
	return r, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (r *ResultsScreen) View(width, height int) string {
	p := r.app.Profile
	if p == nil {
		return layout.Center(theme.Hint.Render("No profile yet. Take the quiz first!"), width, height)
	}

	barWidth := 20

	sections := []string{
		theme.Emphasis.Render("✔ Your Learning Profile is Ready!"),
		theme.Subtitle.Render("Guides will be shaped to exactly how your brain works best."),
		"",
		renderScale("Visual Style ", p.VisualPreference, barWidth, theme.Primary),
		scaleCaption(p.VisualPreference, "You prefer strong visuals and diagrams.", "You're okay with text, but visuals help."),
		"",
		renderScale("Hands-On     ", p.HandsOnPreference, barWidth, theme.Secondary),
		scaleCaption(p.HandsOnPreference, "You learn by doing and experimenting.", "You prefer observing first."),
		"",
		theme.Warm.Render("Superpowers"),
		renderSuperpowers(p),
	}

	return layout.Center(strings.Join(sections, "\n"), width, height)
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

// renderScale draws a 1-10 preference as a filled bar.
func renderScale(label string, value, width int, c color.Color) string {
	filled := value * width / 10
	if filled > width {
		filled = width
	}
	bar := lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
	return theme.Body.Render(label) + bar + theme.Hint.Render(fmt.Sprintf(" %d/10", value))
}

func scaleCaption(value int, high, low string) string {
	if value > 7 {
		return theme.Hint.Render(high)
	}
	return theme.Hint.Render(low)
}

func renderSuperpowers(p *profile.Profile) string {
	var lines []string
	lines = append(lines, "  🎂 "+string(p.AgeRange)+" level teaching")
	if p.NeedWhyExplanations {
		lines = append(lines, "  🤔 Needs the \"WHY\" behind concepts")
	}
	if p.StepByStepPreference > 7 {
		lines = append(lines, "  🪜 Thrives on small, clear steps")
	}
	if p.SensoryPreference == profile.SensorySimpleLayout {
		lines = append(lines, "  🧼 Prefers clean, minimal layouts")
	}
	return theme.Body.Render(strings.Join(lines, "\n"))
}
