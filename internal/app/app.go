// Package app owns the root Bubble Tea model: frame rendering, global
// key handling and persistence flushes.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/router"
	"lovlearn/internal/screen"
	"lovlearn/internal/screens/home"
	"lovlearn/internal/state"
	"lovlearn/internal/store"
	"lovlearn/internal/ui/layout"
)

// Options carries the dependencies the TUI needs. Generator and Coach
// are nil when no LLM provider is configured; the screens degrade to
// help text in that case.
type Options struct {
	State     *state.App
	StateRepo store.StateRepo
	Generator *guide.Generator
	Coach     *coach.Coach
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	app    *state.App
	repo   store.StateRepo
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.State, opts.Generator, opts.Coach)
	return AppModel{
		router: router.New(homeScreen),
		app:    opts.State,
		repo:   opts.StateRepo,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case state.PersistRequest:
		return m, m.persist(msg.Hint)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(escHandler); ok && h.HandlesEsc() {
				break // the screen owns Esc right now
			}
			// Leaving a screen with a request in flight abandons the
			// request; the late response is dropped.
			if m.app.Loading {
				m.app.AbandonSearch()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escHandler marks screens that consume Esc themselves (e.g. to close
// an inline editor) instead of navigating back.
type escHandler interface {
	HandlesEsc() bool
}

// persist snapshots the hinted state and writes it through the store.
// Storage failures are logged and never surface to the learner.
func (m AppModel) persist(hint state.Persist) tea.Cmd {
	if m.repo == nil || hint == state.PersistNone {
		return nil
	}

	var saveProfile func(context.Context) error
	if hint&state.PersistProfile != 0 {
		if m.app.Profile != nil {
			p := *m.app.Profile
			saveProfile = func(ctx context.Context) error { return m.repo.SaveProfile(ctx, p) }
		} else {
			saveProfile = func(ctx context.Context) error { return m.repo.ClearProfile(ctx) }
		}
	}

	var saveHistory func(context.Context) error
	if hint&state.PersistHistory != 0 {
		hist := make([]guide.Guide, len(m.app.History))
		copy(hist, m.app.History)
		saveHistory = func(ctx context.Context) error { return m.repo.SaveHistory(ctx, hist) }
	}

	return func() tea.Msg {
		ctx := context.Background()
		if saveProfile != nil {
			if err := saveProfile(ctx); err != nil {
				fmt.Fprintln(os.Stderr, "lovlearn: save profile:", err)
			}
		}
		if saveHistory != nil {
			if err := saveHistory(ctx); err != nil {
				fmt.Fprintln(os.Stderr, "lovlearn: save history:", err)
			}
		}
		return nil
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, len(m.app.History), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
