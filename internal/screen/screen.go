// Package screen declares the contract every view in the app satisfies.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"lovlearn/internal/ui/layout"
)

// Screen is a single view managed by the router. The root model owns the
// frame; a screen only renders its content area.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update reacts to a message and returns the screen to keep showing.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area at the given size.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the footer's default key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
