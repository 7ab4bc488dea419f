package components

import (
	"charm.land/lipgloss/v2"

	"lovlearn/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// LoadingMessages rotate under the spinner while a guide is generated.
var LoadingMessages = []string{
	"Consulting the AI brain...",
	"Breaking down complex ideas...",
	"Finding the best visual map...",
	"Creating memory anchors for you...",
	"Almost there! Your brain is going to love this...",
	"Polishing the steps for clarity...",
}

// Spinner is a simple frame-cycling loading indicator. The owning
// screen advances it on a tick message.
type Spinner struct {
	frame   int
	message int
}

// Tick advances the spinner animation by one frame.
func (s *Spinner) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// NextMessage rotates to the next loading message.
func (s *Spinner) NextMessage() {
	s.message = (s.message + 1) % len(LoadingMessages)
}

// View renders the spinner with its current loading message.
func (s Spinner) View() string {
	frame := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(spinnerFrames[s.frame])
	msg := lipgloss.NewStyle().Foreground(theme.Text).Render(LoadingMessages[s.message])
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render("This takes about 15-30 seconds. Perfect time for a quick stretch!")
	return frame + " " + msg + "\n\n" + hint
}
