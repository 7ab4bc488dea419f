package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/ui/theme"
)

// Choice is a single-answer option picker. Unlike a graded multiple
// choice there is no right answer; whatever the user picks is the
// answer.
type Choice struct {
	Question string
	Options  []string
	Selected int
	Chosen   int // -1 until the user confirms
}

// NewChoice creates a new option picker.
func NewChoice(question string, options []string) Choice {
	return Choice{
		Question: question,
		Options:  options,
		Chosen:   -1,
	}
}

// Update handles keyboard navigation and confirmation.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
	}

	return c, nil
}

// Confirmed reports whether the user has picked an option.
func (c Choice) Confirmed() bool {
	return c.Chosen >= 0
}

// View renders the question and its options.
func (c Choice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question) + "\n\n"

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'a'+i, opt)

		if i == c.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
