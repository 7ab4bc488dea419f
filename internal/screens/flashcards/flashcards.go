// Package flashcards implements the card practice screen.
package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/screen"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

// FlashcardsScreen flips through the open guide's cards.
type FlashcardsScreen struct {
	app     *state.App
	index   int
	flipped bool
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New creates the flashcards screen for the app's open guide.
func New(app *state.App) *FlashcardsScreen {
	return &FlashcardsScreen{app: app}
}

func (f *FlashcardsScreen) Init() tea.Cmd {
	return nil
}

func (f *FlashcardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev / Next"},
		{Key: "Esc", Description: "Back to guide"},
	}
}

func (f *FlashcardsScreen) cards() []cardView {
	g := f.app.CurrentGuide
	if g == nil {
		return nil
	}
	out := make([]cardView, len(g.Content.Flashcards))
	for i, c := range g.Content.Flashcards {
		out[i] = cardView{front: c.Front, back: c.Back}
	}
	return out
}

type cardView struct {
	front string
	back  string
}

func (f *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	cards := f.cards()
	if len(cards) == 0 {
		return f, nil
	}

	switch kmsg.String() {
	case "space", "enter":
		f.flipped = !f.flipped
	case "right", "l", "n":
		f.index = (f.index + 1) % len(cards)
		f.flipped = false
	case "left", "h", "p":
		f.index = (f.index - 1 + len(cards)) % len(cards)
		f.flipped = false
	}
	return f, nil
}

func (f *FlashcardsScreen) View(width, height int) string {
	cards := f.cards()
	if len(cards) == 0 {
		msg := theme.Hint.Render("No flashcards for this topic.\nTry regenerating the guide.")
		return layout.Center(msg, width, height)
	}
	if f.index >= len(cards) {
		f.index = 0
	}

	card := cards[f.index]

	var face, label string
	var borderColor = theme.Primary
	if f.flipped {
		face = card.back
		label = theme.Emphasis.Render("ANSWER")
		borderColor = theme.Secondary
	} else {
		face = card.front
		label = theme.Hint.Render("space to flip")
	}

	cardWidth := min(width-10, 60)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(2, 4).
		Width(cardWidth).
		Align(lipgloss.Center).
		Render(theme.Body.Bold(!f.flipped).Render(face) + "\n\n" + label)

	counter := theme.Subtitle.Render(fmt.Sprintf("%d / %d", f.index+1, len(cards)))

	return layout.Center(strings.Join([]string{counter, "", box}, "\n"), width, height)
}

func (f *FlashcardsScreen) Title() string {
	return "Flashcards"
}
