// Package topicselector implements the topic search screen where study
// guides are requested.
package topicselector

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/router"
	"lovlearn/internal/screen"
	"lovlearn/internal/screens/studyguide"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/components"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

const (
	spinnerInterval = 120 * time.Millisecond
	messageInterval = 3 * time.Second
)

// suggestions are shown under the input; Tab cycles through them.
var suggestions = []string{
	"Basic Fractions",
	"Python Loops",
	"How Photosynthesis Works",
	"French Revolution Timeline",
	"AWS Cloud Practitioner",
}

// guideReadyMsg carries the outcome of a generation request.
type guideReadyMsg struct {
	Req     state.Request
	Content *guide.Content
	Err     error
}

type spinnerTickMsg time.Time

type messageTickMsg time.Time

// TopicSelectorScreen lets the learner type a topic and request a guide.
type TopicSelectorScreen struct {
	app       *state.App
	generator *guide.Generator
	coachSvc  *coach.Coach

	input      components.TextInput
	spinner    components.Spinner
	suggestion int // next suggestion Tab inserts
}

var _ screen.Screen = (*TopicSelectorScreen)(nil)
var _ screen.KeyHintProvider = (*TopicSelectorScreen)(nil)

// New creates the topic selector screen.
func New(app *state.App, generator *guide.Generator, coachSvc *coach.Coach) *TopicSelectorScreen {
	return &TopicSelectorScreen{
		app:       app,
		generator: generator,
		coachSvc:  coachSvc,
		input:     components.NewTextInput("e.g., Quantum Physics, Baking Sourdough...", 120),
	}
}

func (t *TopicSelectorScreen) Init() tea.Cmd {
	return t.input.Init()
}

func (t *TopicSelectorScreen) KeyHints() []layout.KeyHint {
	if t.app.Loading {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Go"},
		{Key: "Tab", Description: "Suggest a topic"},
	}
	if t.app.ErrMsg != "" && t.app.LastRequest != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Try again"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (t *TopicSelectorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guideReadyMsg:
		return t.handleGuideReady(msg)

	case spinnerTickMsg:
		if !t.app.Loading {
			return t, nil
		}
		t.spinner.Tick()
		return t, spinnerTick()

	case messageTickMsg:
		if !t.app.Loading {
			return t, nil
		}
		t.spinner.NextMessage()
		return t, messageTick()

	case tea.KeyMsg:
		if t.app.Loading {
			// Busy: only the app-level Esc/quit keys do anything.
			return t, nil
		}
		switch msg.String() {
		case "enter":
			return t, t.submit(t.input.Value(), "")
		case "tab":
			t.input.SetValue(suggestions[t.suggestion])
			t.suggestion = (t.suggestion + 1) % len(suggestions)
			return t, nil
		case "ctrl+r":
			if req, ok := t.app.Retry(); ok {
				return t, t.startGeneration(req)
			}
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// submit starts a generation request for the typed topic.
func (t *TopicSelectorScreen) submit(topic, modification string) tea.Cmd {
	req, ok := t.app.BeginSearch(topic, modification)
	if !ok {
		return nil
	}
	return t.startGeneration(req)
}

func (t *TopicSelectorScreen) startGeneration(req state.Request) tea.Cmd {
	gen := func() tea.Msg {
		content, err := t.generator.Generate(context.Background(), req.Topic, *t.app.Profile, req.Modification)
		return guideReadyMsg{Req: req, Content: content, Err: err}
	}
	return tea.Batch(gen, spinnerTick(), messageTick())
}

func (t *TopicSelectorScreen) handleGuideReady(msg guideReadyMsg) (screen.Screen, tea.Cmd) {
	hint, applied := t.app.FinishSearch(msg.Req, msg.Content, msg.Err)

	var cmds []tea.Cmd
	if hint != state.PersistNone {
		cmds = append(cmds, func() tea.Msg { return state.PersistRequest{Hint: hint} })
	}
	if applied {
		t.input.Reset()
		cmds = append(cmds, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: studyguide.New(t.app, t.generator, t.coachSvc),
			}
		})
	}
	return t, tea.Batch(cmds...)
}

func (t *TopicSelectorScreen) View(width, height int) string {
	if t.app.Loading {
		return layout.Center(t.spinner.View(), width, height)
	}

	inputWidth := min(width-8, 64)

	var sections []string
	sections = append(sections,
		theme.Title.Render("What do you want to learn today?"),
		theme.Subtitle.Render("I'll break it down exactly how your brain likes it."),
		"",
	)

	if t.app.ErrMsg != "" {
		sections = append(sections,
			theme.ErrorBox.Width(inputWidth).Render(t.app.ErrMsg),
			"",
		)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Width(inputWidth).
		Render(t.input.View())
	sections = append(sections, box, "")

	sections = append(sections,
		theme.Hint.Render("POPULAR TOPICS"),
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(inputWidth).
			Render(strings.Join(suggestions, "  ·  ")),
	)

	return layout.Center(strings.Join(sections, "\n"), width, height)
}

func (t *TopicSelectorScreen) Title() string {
	return "Pick a Topic"
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(ts time.Time) tea.Msg {
		return spinnerTickMsg(ts)
	})
}

func messageTick() tea.Cmd {
	return tea.Tick(messageInterval, func(ts time.Time) tea.Msg {
		return messageTickMsg(ts)
	})
}
