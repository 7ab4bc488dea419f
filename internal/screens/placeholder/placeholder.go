// Package placeholder provides a stand-in screen for features that are
// unavailable in the current run, such as AI features without a
// configured provider.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/screen"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

// PlaceholderScreen shows a title and an explanatory message.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a placeholder screen.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	content := theme.Title.Render(p.title) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 60)).Render(p.message)
	return layout.Center(theme.Card.Render(content), width, height)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
