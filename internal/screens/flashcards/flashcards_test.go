package flashcards

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"lovlearn/internal/guide"
	"lovlearn/internal/screen"
	"lovlearn/internal/state"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func appWithCards(fronts ...string) *state.App {
	cards := make([]guide.Flashcard, len(fronts))
	for i, f := range fronts {
		cards[i] = guide.Flashcard{Front: f, Back: "back of " + f}
	}
	g := guide.Guide{
		ID:    "01TESTCARDS",
		Topic: "photosynthesis",
		Content: guide.Content{
			Summary:    "s",
			Flashcards: cards,
		},
	}
	app := state.New(nil, nil)
	app.CurrentGuide = &g
	return app
}

func TestFlashcards_FlipShowsBack(t *testing.T) {
	var s screen.Screen = New(appWithCards("chlorophyll"))

	view := s.View(80, 24)
	if !strings.Contains(view, "chlorophyll") {
		t.Fatalf("front not shown:\n%s", view)
	}
	if strings.Contains(view, "back of chlorophyll") {
		t.Fatal("back shown before flipping")
	}

	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})

	view = s.View(80, 24)
	if !strings.Contains(view, "back of chlorophyll") {
		t.Errorf("back not shown after flip:\n%s", view)
	}
}

func TestFlashcards_NavigationWrapsAndUnflips(t *testing.T) {
	var s screen.Screen = New(appWithCards("one", "two", "three"))

	s, _ = s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	s, _ = s.Update(keyPress('n'))

	view := s.View(80, 24)
	if !strings.Contains(view, "two") {
		t.Errorf("expected second card front:\n%s", view)
	}
	if strings.Contains(view, "back of two") {
		t.Error("moving to the next card must reset the flip")
	}

	// Going back from the first card wraps to the last.
	s, _ = s.Update(keyPress('p'))
	s, _ = s.Update(keyPress('p'))
	view = s.View(80, 24)
	if !strings.Contains(view, "3 / 3") {
		t.Errorf("expected wraparound to the last card:\n%s", view)
	}
}

func TestFlashcards_NoGuide(t *testing.T) {
	var s screen.Screen = New(state.New(nil, nil))

	s, cmd := s.Update(keyPress('n'))
	if cmd != nil {
		t.Error("no cards, keys should be inert")
	}
	if !strings.Contains(s.View(80, 24), "No flashcards") {
		t.Error("expected empty-state message")
	}
}
