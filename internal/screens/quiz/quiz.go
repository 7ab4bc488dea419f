// Package quiz implements the learning-style quiz flow.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"lovlearn/internal/coach"
	"lovlearn/internal/guide"
	"lovlearn/internal/profile"
	"lovlearn/internal/router"
	"lovlearn/internal/screen"
	"lovlearn/internal/screens/results"
	"lovlearn/internal/state"
	"lovlearn/internal/ui/components"
	"lovlearn/internal/ui/layout"
	"lovlearn/internal/ui/theme"
)

// QuizScreen walks through the question bank one question at a time.
type QuizScreen struct {
	app       *state.App
	generator *guide.Generator
	coachSvc  *coach.Coach

	questions []profile.Question
	index     int
	answers   map[string]string
	choice    components.Choice
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen starting at the first question.
func New(app *state.App, generator *guide.Generator, coachSvc *coach.Coach) *QuizScreen {
	questions := profile.Questions()
	return &QuizScreen{
		app:       app,
		generator: generator,
		coachSvc:  coachSvc,
		questions: questions,
		answers:   make(map[string]string, len(questions)),
		choice:    newChoice(questions[0]),
	}
}

func newChoice(q profile.Question) components.Choice {
	options := make([]string, len(q.Options))
	for i, o := range q.Options {
		options[i] = o.Label
	}
	return components.NewChoice(q.Text, options)
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	q.choice, cmd = q.choice.Update(msg)
	if !q.choice.Confirmed() {
		return q, cmd
	}

	question := q.questions[q.index]
	q.answers[question.ID] = question.Options[q.choice.Chosen].Value

	if q.index+1 < len(q.questions) {
		q.index++
		q.choice = newChoice(q.questions[q.index])
		return q, cmd
	}

	// Last answer recorded: build the profile and show the results.
	hint := q.app.CompleteQuiz(profile.FromQuizAnswers(q.answers))
	return q, tea.Batch(
		func() tea.Msg { return state.PersistRequest{Hint: hint} },
		func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: results.New(q.app, q.generator, q.coachSvc),
			}
		},
	)
}

func (q *QuizScreen) View(width, height int) string {
	total := len(q.questions)
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", q.index+1, total),
		float64(q.index)/float64(total),
		false,
		min(width-8, 56),
	)

	sections := []string{
		theme.Title.Render("Learning Style Quiz"),
		theme.Subtitle.Render("There are no wrong answers. Pick what feels right."),
		"",
		bar.View(),
		"",
		q.choice.View(),
	}

	return layout.Center(strings.Join(sections, "\n"), width, height)
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}
