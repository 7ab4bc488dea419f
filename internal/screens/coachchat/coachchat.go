// Package coachchat implements the study coach conversation screen.
package coachchat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/screen"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/components"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

// replyMsg carries the coach's answer (or the fallback on failure).
type replyMsg struct {
	text string
}

type thinkingTickMsg time.Time

// CoachChatScreen is a chat with the study coach, pinned to the open
// guide's topic.
type CoachChatScreen struct {
	app      *state.App
	coachSvc *coach.Coach

	topic   string
	turns   []coach.Turn
	input   components.TextInput
	waiting bool
	dots    int
	scroll  int
}

var _ screen.Screen = (*CoachChatScreen)(nil)
var _ screen.KeyHintProvider = (*CoachChatScreen)(nil)

// New creates the coach chat for the app's open guide. The coach opens
// the conversation with a greeting.
func New(app *state.App, coachSvc *coach.Coach) *CoachChatScreen {
	topic := ""
	if app.CurrentGuide != nil {
		topic = app.CurrentGuide.Topic
	}
	greeting := fmt.Sprintf(
		"Hi! I'm your Lovable Coach. Got questions about %s? I'm here to help in simple, easy steps!",
		topic,
	)
	return &CoachChatScreen{
		app:      app,
		coachSvc: coachSvc,
		topic:    topic,
		turns:    []coach.Turn{{Role: "coach", Text: greeting}},
		input:    components.NewTextInput("Ask me anything...", 300),
	}
}

func (c *CoachChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *CoachChatScreen) KeyHints() []layout.KeyHint {
	if c.waiting {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CoachChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		c.turns = append(c.turns, coach.Turn{Role: "coach", Text: msg.text})
		c.scroll = 0
		return c, nil

	case thinkingTickMsg:
		if !c.waiting {
			return c, nil
		}
		c.dots = (c.dots + 1) % 4
		return c, thinkingTick()

	case tea.KeyMsg:
		if c.waiting {
			return c, nil
		}
		switch msg.String() {
		case "enter":
			return c, c.send()
		case "up":
			c.scroll++
			return c, nil
		case "down":
			if c.scroll > 0 {
				c.scroll--
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// send submits the typed question. One request at a time; the send key
// is a no-op while a reply is pending.
func (c *CoachChatScreen) send() tea.Cmd {
	text := c.input.Value()
	if text == "" {
		return nil
	}

	history := make([]coach.Turn, len(c.turns))
	copy(history, c.turns)

	c.turns = append(c.turns, coach.Turn{Role: "user", Text: text})
	c.input.Reset()
	c.waiting = true
	c.scroll = 0

	ask := func() tea.Msg {
		reply, err := c.coachSvc.Chat(context.Background(), c.topic, text, history, c.app.Profile)
		if err != nil {
			return replyMsg{text: coach.FallbackReply}
		}
		return replyMsg{text: reply}
	}
	return tea.Batch(ask, thinkingTick())
}

func (c *CoachChatScreen) View(width, height int) string {
	bubbleWidth := min(width-12, 70)

	var lines []string
	for _, t := range c.turns {
		lines = append(lines, renderTurn(t, bubbleWidth, width), "")
	}
	if c.waiting {
		lines = append(lines, theme.Hint.Render("  Thinking"+strings.Repeat(".", c.dots)))
	}

	transcript := strings.Join(lines, "\n")

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Width(min(width-4, 80)).
		Render(c.input.View())

	transcriptHeight := height - lipgloss.Height(inputBox) - 1
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	return clipBottom(transcript, c.scroll, transcriptHeight) + "\n" + inputBox
}

func (c *CoachChatScreen) Title() string {
	return "Study Coach"
}

func renderTurn(t coach.Turn, bubbleWidth, screenWidth int) string {
	if t.Role == "user" {
		bubble := lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Padding(0, 1).
			Width(min(bubbleWidth, lipgloss.Width(t.Text)+2)).
			Render(t.Text)
		return lipgloss.NewStyle().Width(screenWidth - 2).Align(lipgloss.Right).Render(bubble)
	}
	return "  " + lipgloss.NewStyle().
		Background(theme.BgCard).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(min(bubbleWidth, lipgloss.Width(t.Text)+2)).
		Render(t.Text)
}

// clipBottom keeps the last visible lines of the transcript, shifted up
// by scroll.
func clipBottom(s string, scroll, height int) string {
	lines := strings.Split(s, "\n")
	end := len(lines) - scroll
	if end > len(lines) {
		end = len(lines)
	}
	if end < 1 {
		end = 1
	}
	start := end - height
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}

func thinkingTick() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(ts time.Time) tea.Msg {
		return thinkingTickMsg(ts)
	})
}
