// Package progressscreen renders the learning journey stats and
// achievements.
package progressscreen

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/progress"
	"lovlearn/internal/screen"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

// ProgressScreen shows journey stats derived from the guide history.
type ProgressScreen struct {
	app *state.App
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates the progress screen.
func New(app *state.App) *ProgressScreen {
	return &ProgressScreen{app: app}
}

func (p *ProgressScreen) Init() tea.Cmd {
	return nil
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	stats := progress.Compute(p.app.History)

	statBox := func(value int, label string) string {
		return theme.Card.Width(18).Align(lipgloss.Center).Render(
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d", value)) +
				"\n" + theme.Hint.Render(label),
		)
	}
	statsRow := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox(stats.TopicsCompleted, "TOPICS"),
		"  ",
		statBox(stats.CardsLearned, "CARDS"),
	)

	var achievements []string
	for _, a := range progress.Achievements(stats) {
		mark := theme.Hint.Render("○")
		title := theme.Hint.Render(a.Title)
		if a.Unlocked {
			mark = theme.Emphasis.Render("●")
			title = theme.Body.Bold(true).Render(a.Title)
		}
		achievements = append(achievements,
			fmt.Sprintf("  %s %s — %s", mark, title, theme.Hint.Render(a.Description)))
	}

	sections := []string{
		theme.Title.Render("Your Learning Journey"),
		theme.Subtitle.Render("Every step forward is a victory for your brilliant brain."),
		"",
		statsRow,
		"",
		theme.Warm.Render("ACHIEVEMENTS"),
		strings.Join(achievements, "\n"),
	}

	return layout.Center(strings.Join(sections, "\n"), width, height)
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}
