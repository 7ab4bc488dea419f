// Package profilescreen implements the settings and saved-guides screen.
package profilescreen

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/router"
	"lovlearn/internal/screen"
	"lovlearn/internal/screens/quiz"
	"lovlearn/internal/screens/studyguide"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

// ProfileScreen shows accessibility toggles, learning-style sliders and
// the saved guide history.
type ProfileScreen struct {
	app       *state.App
	generator *guide.Generator
	coachSvc  *coach.Coach

	selected int // index into the visible history list
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the settings & history screen.
func New(app *state.App, generator *guide.Generator, coachSvc *coach.Coach) *ProfileScreen {
	return &ProfileScreen{app: app, generator: generator, coachSvc: coachSvc}
}

func (p *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (p *ProfileScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1", Description: "Toggle font"},
		{Key: "2", Description: "Toggle spacing"},
		{Key: "R", Description: "Retake quiz"},
	}
	if len(p.app.History) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Pick guide"},
			layout.KeyHint{Key: "Enter", Description: "Open"},
			layout.KeyHint{Key: "D", Description: "Delete"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	prof := p.app.Profile
	history := p.app.History
	if p.selected >= len(history) {
		p.selected = max(0, len(history)-1)
	}

	switch kmsg.String() {
	case "1":
		if prof != nil {
			hint := p.app.SetAccessibility(!prof.UseAccessibleFont, prof.IncreasedSpacing)
			return p, persist(hint)
		}
	case "2":
		if prof != nil {
			hint := p.app.SetAccessibility(prof.UseAccessibleFont, !prof.IncreasedSpacing)
			return p, persist(hint)
		}
	case "r":
		hint := p.app.ResetProfile()
		return p, tea.Batch(persist(hint), func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: quiz.New(p.app, p.generator, p.coachSvc),
			}
		})
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(history)-1 {
			p.selected++
		}
	case "enter":
		if p.selected < len(history) && p.app.LoadGuide(history[p.selected].ID) {
			return p, func() tea.Msg {
				return router.PushScreenMsg{
					Screen: studyguide.New(p.app, p.generator, p.coachSvc),
				}
			}
		}
	case "d":
		if p.selected < len(history) {
			hint := p.app.DeleteGuide(history[p.selected].ID)
			if hint != state.PersistNone {
				return p, persist(hint)
			}
		}
	}

	return p, nil
}

func persist(hint state.Persist) tea.Cmd {
	return func() tea.Msg {
		return state.PersistRequest{Hint: hint}
	}
}

func (p *ProfileScreen) View(width, height int) string {
	prof := p.app.Profile
	if prof == nil {
		return layout.Center(theme.Hint.Render("No profile yet. Take the quiz first!"), width, height)
	}

	contentWidth := min(width-6, 80)
	var b strings.Builder

	b.WriteString("  " + theme.Warm.Render("ACCESSIBILITY") + "\n")
	b.WriteString("  " + toggle("Dyslexia-friendly font", prof.UseAccessibleFont) + "\n")
	b.WriteString("  " + toggle("Increased line spacing", prof.IncreasedSpacing) + "\n")
	if prof.UseAccessibleFont {
		b.WriteString("  " + theme.Hint.Render("Font choice follows your terminal; this preference travels with your profile.") + "\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + theme.Warm.Render("LEARNING STYLES") + "\n")
	b.WriteString("  " + slider("Visual focus   ", prof.VisualPreference) + "\n")
	b.WriteString("  " + slider("Hands-on focus ", prof.HandsOnPreference) + "\n")
	b.WriteString("  " + slider("Step-by-step   ", prof.StepByStepPreference) + "\n")
	b.WriteString("\n")

	b.WriteString("  " + theme.Warm.Render("SAVED GUIDES") + "\n")
	if len(p.app.History) == 0 {
		b.WriteString("  " + theme.Hint.Render("No guides saved yet. Let's learn something!") + "\n")
	} else {
		for i, g := range p.app.History {
			line := fmt.Sprintf("%s  %s · %d cards",
				g.Topic,
				g.CreatedAt.Local().Format("Jan 2, 2006"),
				len(g.Content.Flashcards),
			)
			if i == p.selected {
				b.WriteString("  " + theme.Selected.Render("▸ "+line) + "\n")
			} else {
				b.WriteString("  " + theme.Body.Render("  "+line) + "\n")
			}
		}
	}

	content := lipgloss.NewStyle().Width(contentWidth).Render(b.String())
	return layout.Center(content, width, height)
}

func (p *ProfileScreen) Title() string {
	return "Settings & History"
}

func toggle(label string, on bool) string {
	if on {
		return theme.Emphasis.Render("[x] ") + theme.Body.Render(label)
	}
	return theme.Hint.Render("[ ] ") + theme.Body.Render(label)
}

func slider(label string, value int) string {
	const width = 10
	filled := value
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("■", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("□", width-filled))
	return theme.Body.Render(label) + bar + theme.Hint.Render(fmt.Sprintf(" %d/10", value))
}
