package progress

import (
	"testing"

	"lovlearn/internal/guide"
)

func historyWith(guides int, cardsEach int) []guide.Guide {
	h := make([]guide.Guide, guides)
	for i := range h {
		cards := make([]guide.Flashcard, cardsEach)
		for j := range cards {
			cards[j] = guide.Flashcard{Front: "q", Back: "a"}
		}
		h[i] = guide.Guide{ID: guide.NewID(), Topic: "t", Content: guide.Content{Flashcards: cards}}
	}
	return h
}

func TestCompute(t *testing.T) {
	s := Compute(historyWith(3, 12))
	if s.TopicsCompleted != 3 {
		t.Errorf("TopicsCompleted = %d, want 3", s.TopicsCompleted)
	}
	if s.CardsLearned != 36 {
		t.Errorf("CardsLearned = %d, want 36", s.CardsLearned)
	}
}

func TestCompute_EmptyHistory(t *testing.T) {
	s := Compute(nil)
	if s.TopicsCompleted != 0 || s.CardsLearned != 0 {
		t.Errorf("empty history stats = %+v, want zeros", s)
	}
}

func TestAchievements_Thresholds(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  [3]bool // curious mind, focus master, flashcard king
	}{
		{"nothing yet", Stats{}, [3]bool{false, false, false}},
		{"first guide", Stats{TopicsCompleted: 1, CardsLearned: 12}, [3]bool{true, false, false}},
		{"four guides short of focus", Stats{TopicsCompleted: 4, CardsLearned: 48}, [3]bool{true, false, false}},
		{"five guides", Stats{TopicsCompleted: 5, CardsLearned: 60}, [3]bool{true, true, false}},
		{"hundred cards", Stats{TopicsCompleted: 8, CardsLearned: 100}, [3]bool{true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Achievements(tt.stats)
			if len(got) != 3 {
				t.Fatalf("achievement count = %d, want 3", len(got))
			}
			for i, a := range got {
				if a.Unlocked != tt.want[i] {
					t.Errorf("%s unlocked = %v, want %v", a.Title, a.Unlocked, tt.want[i])
				}
			}
		})
	}
}
