// Package guide defines the study-guide content model and the generation
// client that produces it from a topic and a learning-style profile.
package guide

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Step is one ordered teaching step. Order is pedagogically meaningful
// and must be preserved everywhere steps travel.
type Step struct {
	Step         string `json:"step"`
	Explanation  string `json:"explanation"`
	WhyItMatters string `json:"whyItMatters"`
}

// Flashcard is a front/back question-answer pair.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Content is the generated study-guide payload. Every field except
// YoutubeLink is required; a response missing any of them is rejected
// at the generation boundary.
type Content struct {
	Summary         string      `json:"summary"`
	VisualBreakdown string      `json:"visualBreakdown"`
	DiagramCode     string      `json:"diagramCode"` // Mermaid source, displayed as-is
	Steps           []Step      `json:"steps"`
	HandsOnPractice []string    `json:"handsOnPractice"`
	MemoryAnchors   []string    `json:"memoryAnchors"`
	Flashcards      []Flashcard `json:"flashcards"`
	PepTalk         string      `json:"pepTalk"`
	YoutubeLink     string      `json:"youtubeLink,omitempty"`
}

// Guide is a persisted, named instance of generated content.
// ID and Topic are fixed at first creation; a modification request
// replaces Content wholesale but never touches identity.
type Guide struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Content   Content   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewID returns a fresh time-ordered guide identifier.
func NewID() string {
	return ulid.Make().String()
}
