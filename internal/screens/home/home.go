// Package home implements the landing screen.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/router"
	"lovlearn/internal/screen"
	"lovlearn/internal/screens/placeholder"
	"lovlearn/internal/screens/profilescreen"
	"lovlearn/internal/screens/progressscreen"
	"lovlearn/internal/screens/quiz"
	"lovlearn/internal/screens/topicselector"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/components"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

const notConfiguredMsg = "No AI provider is configured. Set LOVLEARN_GEMINI_API_KEY " +
	"(or LOVLEARN_ANTHROPIC_API_KEY / LOVLEARN_OPENAI_API_KEY) and restart to " +
	"generate study guides."

// HomeScreen is the landing screen of the application.
type HomeScreen struct {
	app        *state.App
	generator  *guide.Generator
	coachSvc   *coach.Coach
	menu       components.Menu
	hasProfile bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. generator and coachSvc may be nil when
// no LLM provider is configured; AI entries then lead to a help screen.
func New(app *state.App, generator *guide.Generator, coachSvc *coach.Coach) *HomeScreen {
	h := &HomeScreen{
		app:       app,
		generator: generator,
		coachSvc:  coachSvc,
	}
	h.rebuildMenu()
	return h
}

func (h *HomeScreen) rebuildMenu() {
	h.hasProfile = h.app.Profile != nil

	var items []components.MenuItem

	if h.hasProfile {
		items = append(items, components.MenuItem{
			Label:  "Start Learning",
			Action: h.openTopicSelector,
		})
		items = append(items, components.MenuItem{
			Label: "Retake Quiz",
			Action: func() tea.Cmd {
				return push(quiz.New(h.app, h.generator, h.coachSvc))
			},
		})
	} else {
		items = append(items, components.MenuItem{
			Label: "Take Learning Style Quiz",
			Action: func() tea.Cmd {
				return push(quiz.New(h.app, h.generator, h.coachSvc))
			},
		})
	}

	items = append(items,
		components.MenuItem{
			Label: "My Progress",
			Action: func() tea.Cmd {
				return push(progressscreen.New(h.app))
			},
		},
		components.MenuItem{
			Label: "Settings & History",
			Action: func() tea.Cmd {
				return push(profilescreen.New(h.app, h.generator, h.coachSvc))
			},
			Disabled: !h.hasProfile,
		},
		components.MenuItem{
			Label: "Exit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	)

	h.menu = components.NewMenu(items)
}

func (h *HomeScreen) openTopicSelector() tea.Cmd {
	if h.generator == nil {
		return push(placeholder.New("AI Unavailable", notConfiguredMsg))
	}
	return push(topicselector.New(h.app, h.generator, h.coachSvc))
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// The profile can change while this screen sits at the bottom of
	// the stack (quiz completion, reset). Rebuild the menu when it does.
	if (h.app.Profile != nil) != h.hasProfile {
		h.rebuildMenu()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Lovable ") +
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Learner")

	tagline := theme.Subtitle.Render("For Neurodivergent Minds")
	pitch := lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).
		Render("No walls of text. Just clear, visual, step-by-step learning.")

	var status string
	if h.hasProfile {
		status = theme.Emphasis.Render("✨ You have a profile ready!")
	} else {
		status = theme.Hint.Render("Take the quiz so I can learn how your brain likes to learn.")
	}

	sections := []string{
		title,
		tagline,
		pitch,
		"",
		status,
		"",
		h.menu.View(),
	}

	return layout.Center(strings.Join(sections, "\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
