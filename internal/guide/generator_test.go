package guide

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

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

func validGuideJSON() string {
	cards := make([]string, 12)
	for i := range cards {
		cards[i] = fmt.Sprintf(`{"front":"What is fraction %d?","back":"Part %d of a whole"}`, i+1, i+1)
	}
	return `{
		"summary": "Fractions are pieces of a whole, like slices of a pizza.",
		"visualBreakdown": "Imagine a circle cut into equal slices.",
		"diagramCode": "graph TD; Whole-->Half; Whole-->Quarter",
		"steps": [
			{"step": "Look at the bottom number", "explanation": "That is how many equal pieces there are.", "whyItMatters": "It tells you the size of each piece."},
			{"step": "Look at the top number", "explanation": "That is how many pieces you have.", "whyItMatters": "It tells you the amount."}
		],
		"handsOnPractice": ["Cut a paper circle into four equal parts."],
		"memoryAnchors": ["Denominator is Down."],
		"flashcards": [` + strings.Join(cards, ",") + `],
		"pepTalk": "You are doing great. Fractions are just pizza math!"
	}`
}

func TestGenerate_ValidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validGuideJSON())})
	gen := NewGenerator(mock, DefaultConfig())

	content, err := gen.Generate(t.Context(), "Basic Fractions", testProfile(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content.Summary == "" {
		t.Error("expected non-empty summary")
	}
	if len(content.Steps) < 1 {
		t.Error("expected at least one step")
	}
	if len(content.Flashcards) < 10 || len(content.Flashcards) > 20 {
		t.Errorf("flashcards = %d, want 10-20", len(content.Flashcards))
	}
	if content.DiagramCode == "" {
		t.Error("expected non-empty diagram code")
	}

	// Step order must survive decoding.
	if content.Steps[0].Step != "Look at the bottom number" {
		t.Errorf("first step = %q, order not preserved", content.Steps[0].Step)
	}
}

func TestGenerate_FencedResponse(t *testing.T) {
	fenced := "```json\n" + validGuideJSON() + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	gen := NewGenerator(mock, DefaultConfig())

	content, err := gen.Generate(t.Context(), "Basic Fractions", testProfile(), "")
	if err != nil {
		t.Fatalf("fenced JSON should be recoverable: %v", err)
	}
	if len(content.Flashcards) == 0 {
		t.Error("expected flashcards after fence stripping")
	}
}

func TestGenerate_NotJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), "Basic Fractions", testProfile(), "")
	var invErr *llm.ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestGenerate_MissingFlashcards(t *testing.T) {
	noCards := `{
		"summary": "s", "visualBreakdown": "v", "diagramCode": "graph TD; A-->B",
		"steps": [{"step":"a","explanation":"b","whyItMatters":"c"}],
		"handsOnPractice": [], "memoryAnchors": [], "flashcards": [],
		"pepTalk": "p"
	}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(noCards)})
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), "Topic", testProfile(), "")
	var invErr *llm.ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse for empty flashcards, got: %T", err)
	}
}

func TestGenerate_EmptyAfterStripping(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("```json\n```")})
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), "Topic", testProfile(), "")
	var emptyErr *llm.ErrEmptyResponse
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected ErrEmptyResponse, got: %T (%v)", err, err)
	}
}

func TestGenerate_EmptyTopicRejected(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := NewGenerator(mock, DefaultConfig())

	if _, err := gen.Generate(t.Context(), "   ", testProfile(), ""); err == nil {
		t.Fatal("expected error for blank topic")
	}
	if mock.CallCount() != 0 {
		t.Error("blank topic must not reach the provider")
	}
}

func TestGenerate_TruncatedResponse(t *testing.T) {
	// A reply cut off at the token limit decodes as garbage; the error
	// must name the real cause.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content:    json.RawMessage(`{"summary": "Fractions are pie`),
		StopReason: "max_tokens",
	})
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), "Topic", testProfile(), "")
	var trunc *llm.ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGenerate_UpstreamErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{StatusCode: 429}})
	gen := NewGenerator(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), "Topic", testProfile(), "")
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit to propagate, got: %T", err)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validGuideJSON())})
	gen := NewGenerator(mock, DefaultConfig())

	if _, err := gen.Generate(t.Context(), "Python Loops", testProfile(), "use simpler words"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "study-guide" {
		t.Error("expected study-guide schema on the request")
	}
	if req.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", req.Temperature)
	}

	user := req.Messages[0].Content
	if !strings.Contains(user, "TOPIC: Python Loops") {
		t.Error("user message missing topic")
	}
	if !strings.Contains(user, `"visualPreference": 9`) {
		t.Error("user message missing profile JSON")
	}
	if !strings.Contains(user, "MODIFICATION REQUEST: use simpler words") {
		t.Error("user message missing modification request")
	}
	if !strings.Contains(user, "child") {
		t.Error("user message missing age-range guidance")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"```json\n```", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewID_Distinct(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if len(a) != 26 {
		t.Errorf("id length = %d, want 26 (ULID)", len(a))
	}
}
