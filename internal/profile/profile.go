// Package profile holds the learner's declared content-delivery
// preferences: how they want material presented, not what they know.
package profile

import "fmt"

// Sensory is the learner's preferred presentation environment.
type Sensory string

const (
	SensorySilence      Sensory = "silence"
	SensoryMinimalText  Sensory = "minimal_text"
	SensorySimpleLayout Sensory = "simple_layout"
	SensoryStandard     Sensory = "standard"
)

// AgeRange calibrates the language complexity of generated material.
type AgeRange string

const (
	AgeChild  AgeRange = "child"
	AgeTeen   AgeRange = "teen"
	AgeAdult  AgeRange = "adult"
	AgeSenior AgeRange = "senior"
)

// Profile is the learner's learning-style profile, created once from the
// quiz and replaced wholesale when the quiz is retaken. Only the
// accessibility flags are mutated in place.
//
// JSON tags keep the persisted shape identical to the web app's
// localStorage records, scale fields run 0-10.
type Profile struct {
	VisualPreference     int      `json:"visualPreference"`
	HandsOnPreference    int      `json:"handsOnPreference"`
	StepByStepPreference int      `json:"stepByStepPreference"`
	VerbalPreference     int      `json:"verbalPreference"`
	NeedForRepetition    bool     `json:"needForRepetition"`
	NeedWhyExplanations  bool     `json:"needWhyExplanations"`
	SensoryPreference    Sensory  `json:"sensoryPreference"`
	AgeRange             AgeRange `json:"ageRange"`

	// Display accommodations. Presentation-only: they never feed the
	// generation prompt.
	UseAccessibleFont bool `json:"useAccessibleFont,omitempty"`
	IncreasedSpacing  bool `json:"increasedSpacing,omitempty"`
}

// Validate checks scale ranges and enum membership.
func (p Profile) Validate() error {
	scales := map[string]int{
		"visualPreference":     p.VisualPreference,
		"handsOnPreference":    p.HandsOnPreference,
		"stepByStepPreference": p.StepByStepPreference,
		"verbalPreference":     p.VerbalPreference,
	}
	for name, v := range scales {
		if v < 0 || v > 10 {
			return fmt.Errorf("%s out of range: %d (want 0-10)", name, v)
		}
	}

	switch p.SensoryPreference {
	case SensorySilence, SensoryMinimalText, SensorySimpleLayout, SensoryStandard:
	default:
		return fmt.Errorf("unknown sensory preference: %q", p.SensoryPreference)
	}

	switch p.AgeRange {
	case AgeChild, AgeTeen, AgeAdult, AgeSenior:
	default:
		return fmt.Errorf("unknown age range: %q", p.AgeRange)
	}

	return nil
}

// LanguageGuidance returns the prompt addendum that calibrates generated
// language complexity for the learner's age range.
func (a AgeRange) LanguageGuidance() string {
	switch a {
	case AgeChild:
		return "The learner is a child (8-12). Use very simple words, short sentences, and playful examples. Avoid jargon entirely."
	case AgeTeen:
		return "The learner is a teenager (13-19). Use clear, casual language with relatable examples. Explain any technical terms."
	case AgeSenior:
		return "The learner is a senior (65+). Use respectful, unhurried language. Avoid internet slang and define modern technical terms."
	case AgeAdult:
		return "The learner is an adult. Use plain, friendly language without being childish."
	default:
		return ""
	}
}
