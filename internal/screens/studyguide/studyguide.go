// Package studyguide renders a generated study guide with its tabbed
// sections and drives in-place regeneration requests.
package studyguide

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/router"
	"lovlearn/internal/screen"
	"lovlearn/internal/screens/coachchat"
	"lovlearn/internal/screens/flashcards"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/components"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

type tab int

const (
	tabVisual tab = iota
	tabSteps
	tabPractice
	tabHacks
	tabCount
)

var tabLabels = [tabCount]string{"Visual Map", "Steps", "Practice", "Memory Hacks"}

// guideReadyMsg carries the outcome of a regeneration request.
type guideReadyMsg struct {
	Req     state.Request
	Content *guide.Content
	Err     error
}

type spinnerTickMsg time.Time

type messageTickMsg time.Time

// StudyGuideScreen shows the currently open guide.
type StudyGuideScreen struct {
	app       *state.App
	generator *guide.Generator
	coachSvc  *coach.Coach

	active    tab
	scroll    int
	spinner   components.Spinner
	modifying bool
	modInput  components.TextInput
}

var _ screen.Screen = (*StudyGuideScreen)(nil)
var _ screen.KeyHintProvider = (*StudyGuideScreen)(nil)

// New creates the study guide screen for the app's open guide.
func New(app *state.App, generator *guide.Generator, coachSvc *coach.Coach) *StudyGuideScreen {
	return &StudyGuideScreen{
		app:       app,
		generator: generator,
		coachSvc:  coachSvc,
	}
}

func (s *StudyGuideScreen) Init() tea.Cmd {
	return nil
}

// HandlesEsc reports whether Esc should reach this screen instead of
// navigating back; true while the adjust editor is open.
func (s *StudyGuideScreen) HandlesEsc() bool {
	return s.modifying
}

func (s *StudyGuideScreen) KeyHints() []layout.KeyHint {
	if s.app.Loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	if s.modifying {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Regenerate"},
			{Key: "Esc", Description: "Keep as is"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Tabs"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "F", Description: "Flashcards"},
		{Key: "C", Description: "Coach"},
		{Key: "M", Description: "Adjust guide"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudyGuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case guideReadyMsg:
		return s.handleGuideReady(msg)

	case spinnerTickMsg:
		if !s.app.Loading {
			return s, nil
		}
		s.spinner.Tick()
		return s, spinnerTick()

	case messageTickMsg:
		if !s.app.Loading {
			return s, nil
		}
		s.spinner.NextMessage()
		return s, messageTick()

	case tea.KeyMsg:
		if s.app.Loading {
			return s, nil
		}
		if s.modifying {
			return s.handleModifyingKey(msg)
		}
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *StudyGuideScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	g := s.app.CurrentGuide
	switch msg.String() {
	case "left", "h":
		if s.active > 0 {
			s.active--
			s.scroll = 0
		}
	case "right", "l":
		if s.active < tabCount-1 {
			s.active++
			s.scroll = 0
		}
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		s.scroll++
	case "f":
		if g != nil {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: flashcards.New(s.app)}
			}
		}
	case "c":
		if g != nil && s.coachSvc != nil {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: coachchat.New(s.app, s.coachSvc)}
			}
		}
	case "m":
		if g != nil && s.generator != nil {
			s.modifying = true
			s.modInput = components.NewTextInput("e.g., make it simpler, add more examples...", 200)
			return s, s.modInput.Init()
		}
	}
	return s, nil
}

func (s *StudyGuideScreen) handleModifyingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.modifying = false
		return s, nil
	case "enter":
		mod := s.modInput.Value()
		if mod == "" {
			return s, nil
		}
		s.modifying = false
		g := s.app.CurrentGuide
		if g == nil {
			return s, nil
		}
		req, ok := s.app.BeginSearch(g.Topic, mod)
		if !ok {
			return s, nil
		}
		gen := func() tea.Msg {
			content, err := s.generator.Generate(context.Background(), req.Topic, *s.app.Profile, req.Modification)
			return guideReadyMsg{Req: req, Content: content, Err: err}
		}
		return s, tea.Batch(gen, spinnerTick(), messageTick())
	}

	var cmd tea.Cmd
	s.modInput, cmd = s.modInput.Update(msg)
	return s, cmd
}

func (s *StudyGuideScreen) handleGuideReady(msg guideReadyMsg) (screen.Screen, tea.Cmd) {
	hint, _ := s.app.FinishSearch(msg.Req, msg.Content, msg.Err)
	if hint == state.PersistNone {
		return s, nil
	}
	// A modification keeps the learner on this screen; only the
	// content under the tabs changes.
	s.scroll = 0
	return s, func() tea.Msg { return state.PersistRequest{Hint: hint} }
}

func (s *StudyGuideScreen) View(width, height int) string {
	if s.app.Loading {
		return layout.Center(s.spinner.View(), width, height)
	}

	g := s.app.CurrentGuide
	if g == nil {
		return layout.Center(theme.Hint.Render("No guide is open."), width, height)
	}

	contentWidth := min(width-6, 90)
	gap := "\n"
	if s.app.Profile != nil && s.app.Profile.IncreasedSpacing {
		gap = "\n\n"
	}

	var b strings.Builder

	topic := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleCase(g.Topic))
	b.WriteString("  " + topic + gap)
	b.WriteString("  " + wrap(g.Content.Summary, contentWidth) + gap)

	if s.modifying {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1).
			Width(contentWidth).
			Render("Adjust this guide: " + s.modInput.View())
		b.WriteString(box + "\n")
	}

	b.WriteString("  " + s.renderTabBar() + gap)
	b.WriteString(s.renderTab(g, contentWidth, gap))

	pep := lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).
		Render(wrap("“"+g.Content.PepTalk+"”", contentWidth))
	b.WriteString(gap + "  " + pep)

	return scrollView(b.String(), s.scroll, height)
}

func (s *StudyGuideScreen) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tab(0); i < tabCount; i++ {
		if i == s.active {
			parts[i] = theme.Selected.Render("[ " + tabLabels[i] + " ]")
		} else {
			parts[i] = theme.Hint.Render("  " + tabLabels[i] + "  ")
		}
	}
	return strings.Join(parts, " ")
}

func (s *StudyGuideScreen) renderTab(g *guide.Guide, width int, gap string) string {
	var b strings.Builder
	c := g.Content

	switch s.active {
	case tabVisual:
		b.WriteString("  " + theme.Hint.Render("Diagram (mermaid source — paste into a renderer to view):") + "\n")
		for _, line := range strings.Split(c.DiagramCode, "\n") {
			b.WriteString("    " + theme.Body.Render(line) + "\n")
		}
		b.WriteString(gap + "  " + wrap(c.VisualBreakdown, width))

	case tabSteps:
		for i, step := range c.Steps {
			num := theme.Selected.Render(fmt.Sprintf("%d.", i+1))
			b.WriteString("  " + num + " " + theme.Body.Bold(true).Render(step.Step) + "\n")
			b.WriteString("     " + wrap(step.Explanation, width-5) + "\n")
			b.WriteString("     " + theme.Warm.Italic(true).Render(wrap("Why: "+step.WhyItMatters, width-5)) + gap)
		}

	case tabPractice:
		for _, p := range c.HandsOnPractice {
			b.WriteString("  " + theme.Emphasis.Render("✓") + " " + wrap(p, width-4) + gap)
		}

	case tabHacks:
		for _, anchor := range c.MemoryAnchors {
			b.WriteString("  " + theme.Warm.Render("⚓") + " " + wrap(anchor, width-4) + gap)
		}
	}

	return b.String()
}

func (s *StudyGuideScreen) Title() string {
	if g := s.app.CurrentGuide; g != nil {
		return g.Topic
	}
	return "Study Guide"
}

// scrollView clips rendered content to the viewport, offset by line.
func scrollView(content string, scroll, height int) string {
	lines := strings.Split(content, "\n")
	if scroll >= len(lines) {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(s)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(ts time.Time) tea.Msg {
		return spinnerTickMsg(ts)
	})
}

func messageTick() tea.Cmd {
	return tea.Tick(3*time.Second, func(ts time.Time) tea.Msg {
		return messageTickMsg(ts)
	})
}
