// Package progress derives learning-journey stats and achievements from
// the guide history. Everything here is a pure function of the history.
package progress

import "lovlearn/internal/guide"

// Stats summarizes the learner's journey so far.
type Stats struct {
	TopicsCompleted int
	CardsLearned    int
}

// Achievement is one unlockable milestone.
type Achievement struct {
	Title       string
	Description string
	Unlocked    bool
}

// Compute tallies the journey stats from the history.
func Compute(history []guide.Guide) Stats {
	s := Stats{TopicsCompleted: len(history)}
	for _, g := range history {
		s.CardsLearned += len(g.Content.Flashcards)
	}
	return s
}

// Achievements returns the milestone table for the given stats, in
// display order.
func Achievements(s Stats) []Achievement {
	return []Achievement{
		{
			Title:       "Curious Mind",
			Description: "Generate your first guide",
			Unlocked:    s.TopicsCompleted >= 1,
		},
		{
			Title:       "Focus Master",
			Description: "Generate 5 study guides",
			Unlocked:    s.TopicsCompleted >= 5,
		},
		{
			Title:       "Flashcard King",
			Description: "Unlock 100+ cards",
			Unlocked:    s.CardsLearned >= 100,
		},
	}
}
