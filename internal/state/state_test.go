package state

import (
	"errors"
	"strings"
	"testing"

	"lovlearn/internal/guide"
	"lovlearn/internal/llm"
	"lovlearn/internal/profile"
)

func testProfile() profile.Profile {
	return profile.Profile{
		VisualPreference:     9,
		HandsOnPreference:    5,
		StepByStepPreference: 10,
		VerbalPreference:     2,
		NeedForRepetition:    true,
		NeedWhyExplanations:  true,
		SensoryPreference:    profile.SensorySimpleLayout,
		AgeRange:             profile.AgeChild,
	}
}

func testContent(summary string) *guide.Content {
	return &guide.Content{
		Summary:         summary,
		VisualBreakdown: "visual",
		DiagramCode:     "graph TD; A-->B",
		Steps:           []guide.Step{{Step: "one", Explanation: "e", WhyItMatters: "w"}},
		HandsOnPractice: []string{"try"},
		MemoryAnchors:   []string{"anchor"},
		Flashcards:      []guide.Flashcard{{Front: "q", Back: "a"}},
		PepTalk:         "go",
	}
}

func appWithProfile() *App {
	a := New(nil, nil)
	a.CompleteQuiz(testProfile())
	return a
}

// runSearch drives a full begin/finish cycle and fails the test if the
// request is refused.
func runSearch(t *testing.T, a *App, topic string) guide.Guide {
	t.Helper()
	req, ok := a.BeginSearch(topic, "")
	if !ok {
		t.Fatalf("BeginSearch(%q) refused", topic)
	}
	if _, applied := a.FinishSearch(req, testContent(topic), nil); !applied {
		t.Fatalf("FinishSearch(%q) not applied", topic)
	}
	return *a.CurrentGuide
}

func TestBeginSearch_RequiresProfile(t *testing.T) {
	a := New(nil, nil)
	if _, ok := a.BeginSearch("Fractions", ""); ok {
		t.Error("search must be refused without a profile")
	}
	if a.Loading {
		t.Error("refused search must not set the loading flag")
	}
}

func TestBeginSearch_RefusedWhileInFlight(t *testing.T) {
	a := appWithProfile()
	if _, ok := a.BeginSearch("Fractions", ""); !ok {
		t.Fatal("first search refused")
	}
	if _, ok := a.BeginSearch("Loops", ""); ok {
		t.Error("second search must be refused while one is in flight")
	}
}

func TestBeginSearch_RefusesBlankTopic(t *testing.T) {
	a := appWithProfile()
	if _, ok := a.BeginSearch("", ""); ok {
		t.Error("blank topic must be refused")
	}
}

func TestNewTopicSearches_DistinctIDsAndGrowth(t *testing.T) {
	a := appWithProfile()

	first := runSearch(t, a, "Basic Fractions")
	if len(a.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(a.History))
	}
	second := runSearch(t, a, "Python Loops")
	if len(a.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(a.History))
	}
	if first.ID == second.ID {
		t.Error("two new searches must produce distinct ids")
	}
	if a.History[0].ID != second.ID {
		t.Error("newest guide must be prepended")
	}
	if a.Loading {
		t.Error("loading must be clear after a finished search")
	}
}

func TestSameTopicTwice_Appends(t *testing.T) {
	a := appWithProfile()
	runSearch(t, a, "Fractions")
	runSearch(t, a, "Fractions")
	if len(a.History) != 2 {
		t.Errorf("repeat topic must append, history length = %d, want 2", len(a.History))
	}
	if a.History[0].ID == a.History[1].ID {
		t.Error("repeat topic must still mint a fresh id")
	}
}

func TestModification_PreservesIdentity(t *testing.T) {
	a := appWithProfile()
	orig := runSearch(t, a, "Fractions")
	runSearch(t, a, "Loops") // push the target off the front

	if !a.LoadGuide(orig.ID) {
		t.Fatal("LoadGuide failed")
	}

	req, ok := a.BeginSearch("Fractions", "make it simpler")
	if !ok {
		t.Fatal("modification search refused")
	}
	persist, applied := a.FinishSearch(req, testContent("simpler take"), nil)
	if !applied {
		t.Fatal("modification not applied")
	}
	if persist != PersistHistory {
		t.Errorf("persist hint = %v, want PersistHistory", persist)
	}

	if a.CurrentGuide.ID != orig.ID {
		t.Errorf("id changed: %s -> %s", orig.ID, a.CurrentGuide.ID)
	}
	if a.CurrentGuide.Topic != orig.Topic {
		t.Errorf("topic changed: %s -> %s", orig.Topic, a.CurrentGuide.Topic)
	}
	if !a.CurrentGuide.CreatedAt.Equal(orig.CreatedAt) {
		t.Error("createdAt changed on modification")
	}
	if a.CurrentGuide.Content.Summary != "simpler take" {
		t.Error("content not replaced")
	}

	if len(a.History) != 2 {
		t.Fatalf("history length = %d after modification, want 2 (no duplicate)", len(a.History))
	}
	for _, g := range a.History {
		if g.ID == orig.ID && g.Content.Summary != "simpler take" {
			t.Error("history entry not updated in place")
		}
	}
}

func TestFinishSearch_FailureSetsErrorClearsLoading(t *testing.T) {
	a := appWithProfile()
	req, _ := a.BeginSearch("Fractions", "")

	_, applied := a.FinishSearch(req, nil, &llm.ErrInvalidResponse{Err: errors.New("not json")})
	if applied {
		t.Error("failed search must not report applied")
	}
	if a.Loading {
		t.Error("loading must be cleared after a failure")
	}
	if a.ErrMsg == "" {
		t.Error("failure must set a user-facing message")
	}
	if len(a.History) != 0 {
		t.Error("failure must not touch history")
	}
}

func TestFinishSearch_StaleResponseDropped(t *testing.T) {
	a := appWithProfile()
	req, _ := a.BeginSearch("Fractions", "")
	a.AbandonSearch()

	persist, applied := a.FinishSearch(req, testContent("late"), nil)
	if applied || persist != PersistNone {
		t.Error("response for an abandoned request must be dropped")
	}
	if len(a.History) != 0 || a.CurrentGuide != nil {
		t.Error("stale response must not touch state")
	}
}

func TestRetry_ReissuesLastRequest(t *testing.T) {
	a := appWithProfile()
	req, _ := a.BeginSearch("Fractions", "")
	a.FinishSearch(req, nil, &llm.ErrUpstream{Err: errors.New("boom")})

	again, ok := a.Retry()
	if !ok {
		t.Fatal("retry refused after a failure")
	}
	if again != req {
		t.Errorf("retry descriptor = %+v, want %+v", again, req)
	}
	if a.ErrMsg != "" {
		t.Error("retry must clear the previous error")
	}
}

func TestRetry_RefusedWithoutPriorRequest(t *testing.T) {
	a := appWithProfile()
	if _, ok := a.Retry(); ok {
		t.Error("retry with no prior request must be refused")
	}
}

func TestDeleteGuide_RemovesExactlyOne(t *testing.T) {
	a := appWithProfile()
	first := runSearch(t, a, "One")
	second := runSearch(t, a, "Two")
	third := runSearch(t, a, "Three")

	if a.DeleteGuide(second.ID) != PersistHistory {
		t.Fatal("delete of existing entry must hint history persistence")
	}
	if len(a.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(a.History))
	}
	if a.History[0].ID != third.ID || a.History[1].ID != first.ID {
		t.Error("surviving entries out of order")
	}
	if a.DeleteGuide("nope") != PersistNone {
		t.Error("deleting an unknown id must be a no-op")
	}
}

func TestDeleteGuide_ClosesOpenGuide(t *testing.T) {
	a := appWithProfile()
	g := runSearch(t, a, "One")
	a.DeleteGuide(g.ID)
	if a.CurrentGuide != nil {
		t.Error("deleting the open guide must close it")
	}
}

func TestLoadGuide(t *testing.T) {
	a := appWithProfile()
	g := runSearch(t, a, "One")
	runSearch(t, a, "Two")

	if !a.LoadGuide(g.ID) {
		t.Fatal("LoadGuide of a known id failed")
	}
	if a.CurrentGuide.Topic != "One" {
		t.Errorf("loaded wrong guide: %s", a.CurrentGuide.Topic)
	}
	if a.LoadGuide("missing") {
		t.Error("LoadGuide of an unknown id must fail")
	}
}

func TestSetAccessibility(t *testing.T) {
	a := appWithProfile()
	if a.SetAccessibility(true, true) != PersistProfile {
		t.Error("expected profile persistence hint")
	}
	if !a.Profile.UseAccessibleFont || !a.Profile.IncreasedSpacing {
		t.Error("flags not applied")
	}

	empty := New(nil, nil)
	if empty.SetAccessibility(true, false) != PersistNone {
		t.Error("no profile means no-op")
	}
}

func TestResetProfile_KeepsHistory(t *testing.T) {
	a := appWithProfile()
	runSearch(t, a, "One")
	a.ResetProfile()
	if a.Profile != nil {
		t.Error("profile must be cleared")
	}
	if a.CurrentGuide != nil {
		t.Error("open guide must be closed")
	}
	if len(a.History) != 1 {
		t.Error("history must survive a profile reset")
	}
}

func TestErrorMessage_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing credential names the env var",
			err:  &llm.ErrMissingCredential{Provider: "gemini", EnvVar: "LOVLEARN_GEMINI_API_KEY"},
			want: "LOVLEARN_GEMINI_API_KEY",
		},
		{
			name: "rate limit asks to wait",
			err:  &llm.ErrRateLimit{StatusCode: 429, Err: errors.New("slow down")},
			want: "busy",
		},
		{
			name: "parse failure suggests another try",
			err:  &llm.ErrInvalidResponse{Err: errors.New("bad json")},
			want: "another try",
		},
		{
			name: "empty response suggests another try",
			err:  &llm.ErrEmptyResponse{Model: "m"},
			want: "another try",
		},
		{
			name: "upstream is generic",
			err:  &llm.ErrUpstream{StatusCode: 500, Err: errors.New("oops")},
			want: "try again",
		},
		{
			name: "unknown error is generic",
			err:  errors.New("mystery"),
			want: "unexpected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorMessage(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("ErrorMessage(%v) = %q, want it to contain %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestCurrentGuideIsDetachedFromHistorySlice(t *testing.T) {
	a := appWithProfile()
	g := runSearch(t, a, "One")

	// Appending to history must not move the open guide out from
	// under the caller.
	runSearch(t, a, "Two")
	a.LoadGuide(g.ID)
	a.History[1].Topic = "mutated"
	if a.CurrentGuide.Topic != "One" {
		t.Error("open guide aliases the history slice")
	}
}
