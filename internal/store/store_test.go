package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lovlearn/internal/guide"
	"lovlearn/internal/llm"
	"lovlearn/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

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

func testGuide(id, topic string) guide.Guide {
	return guide.Guide{
		ID:    id,
		Topic: topic,
		Content: guide.Content{
			Summary:         "summary of " + topic,
			VisualBreakdown: "visual",
			DiagramCode:     "graph TD; A-->B",
			Steps:           []guide.Step{{Step: "one", Explanation: "e", WhyItMatters: "w"}},
			HandsOnPractice: []string{"try it"},
			MemoryAnchors:   []string{"anchor"},
			Flashcards:      []guide.Flashcard{{Front: "q", Back: "a"}},
			PepTalk:         "you got this",
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestLoad_EmptyDatabase(t *testing.T) {
	s := openTestStore(t)
	st, err := s.StateRepo().Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Profile != nil {
		t.Error("expected nil profile on fresh database")
	}
	if st.History == nil || len(st.History) != 0 {
		t.Errorf("expected empty non-nil history, got %#v", st.History)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	p := testProfile()
	history := []guide.Guide{
		testGuide("01HZX0000000000000000000A1", "Basic Fractions"),
		testGuide("01HZX0000000000000000000A0", "Python Loops"),
	}

	if err := repo.SaveProfile(ctx, p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := repo.SaveHistory(ctx, history); err != nil {
		t.Fatalf("save history: %v", err)
	}

	st, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if st.Profile == nil || *st.Profile != p {
		t.Errorf("profile mismatch: got %+v, want %+v", st.Profile, p)
	}
	if len(st.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(st.History))
	}
	// Order must be preserved id-for-id.
	for i := range history {
		if st.History[i].ID != history[i].ID {
			t.Errorf("history[%d].ID = %s, want %s", i, st.History[i].ID, history[i].ID)
		}
		if st.History[i].Topic != history[i].Topic {
			t.Errorf("history[%d].Topic = %s, want %s", i, st.History[i].Topic, history[i].Topic)
		}
	}
}

func TestSave_Idempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	history := []guide.Guide{testGuide("01HZX0000000000000000000B0", "Topic")}

	for i := 0; i < 2; i++ {
		if err := repo.SaveProfile(ctx, testProfile()); err != nil {
			t.Fatalf("save profile #%d: %v", i+1, err)
		}
		if err := repo.SaveHistory(ctx, history); err != nil {
			t.Fatalf("save history #%d: %v", i+1, err)
		}
	}

	st, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(st.History) != 1 {
		t.Errorf("history length = %d after duplicate saves, want 1", len(st.History))
	}
	if st.Profile == nil || *st.Profile != testProfile() {
		t.Error("profile changed across identical saves")
	}
}

func TestClearProfile(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	if err := repo.SaveProfile(ctx, testProfile()); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := repo.ClearProfile(ctx); err != nil {
		t.Fatalf("clear profile: %v", err)
	}

	st, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Profile != nil {
		t.Error("profile still present after clear")
	}
}

func TestSaveHistory_Overwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	if err := repo.SaveHistory(ctx, []guide.Guide{
		testGuide("01HZX0000000000000000000C0", "One"),
		testGuide("01HZX0000000000000000000C1", "Two"),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveHistory(ctx, []guide.Guide{
		testGuide("01HZX0000000000000000000C1", "Two"),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	st, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(st.History) != 1 || st.History[0].Topic != "Two" {
		t.Errorf("expected full overwrite, got %#v", st.History)
	}
}

func TestLoad_CorruptEntriesTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A good history next to a corrupt profile: only the profile is lost.
	repo := s.StateRepo()
	if err := repo.SaveHistory(ctx, []guide.Guide{testGuide("01HZX0000000000000000000D0", "Kept")}); err != nil {
		t.Fatalf("save history: %v", err)
	}
	if _, err := s.DB().Exec(
		`INSERT INTO state (key, value, updated_at) VALUES ('profile', '{broken', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("inject corrupt profile: %v", err)
	}

	st, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load must not fail on corrupt data: %v", err)
	}
	if st.Profile != nil {
		t.Error("corrupt profile should be treated as absent")
	}
	if len(st.History) != 1 || st.History[0].Topic != "Kept" {
		t.Errorf("good history should survive, got %#v", st.History)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL falls back to "memory" for in-memory databases, skip it.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, llm.RequestEvent{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "guide",
		InputTokens:  100,
		OutputTokens: 900,
		LatencyMs:    1200,
		Success:      true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, llm.RequestEvent{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "coach",
		Success:      false,
		ErrorMessage: "rate limited (status 429): too many requests",
	}))

	events, err := repo.RecentLLMEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	var sawGuide, sawCoach bool
	for _, ev := range events {
		switch ev.Purpose {
		case "guide":
			sawGuide = true
			assert.True(t, ev.Success)
			assert.Equal(t, 900, ev.OutputTokens)
		case "coach":
			sawCoach = true
			assert.False(t, ev.Success)
			assert.NotEmpty(t, ev.ErrorMessage)
		}
	}
	if !sawGuide || !sawCoach {
		t.Error("expected both purposes in the event log")
	}
}

func TestEventRepo_GetByPrefix(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, llm.RequestEvent{
		Provider: "mock",
		Model:    "mock",
		Purpose:  "guide",
		Success:  true,
	}))

	events, err := repo.RecentLLMEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	id := events[0].ID

	got, err := repo.GetLLMEvent(ctx, id[:8])
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)

	missing, err := repo.GetLLMEvent(ctx, "ffffffff")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
