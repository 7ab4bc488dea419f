package profile

// Question is one learning-style quiz question. Answer values are string
// tokens; FromQuizAnswers maps them onto the Profile fields.
type Question struct {
	ID      string
	Text    string
	Options []Option
}

// Option is a selectable quiz answer.
type Option struct {
	Label string
	Value string
}

// Questions is the quiz bank, asked in order.
func Questions() []Question {
	return []Question{
		{
			ID:   "age",
			Text: "What is your age range?",
			Options: []Option{
				{Label: "Child (8-12)", Value: "child"},
				{Label: "Teen (13-19)", Value: "teen"},
				{Label: "Adult (20-64)", Value: "adult"},
				{Label: "Senior (65+)", Value: "senior"},
			},
		},
		{
			ID:   "visual",
			Text: "When you learn something new, do you prefer:",
			Options: []Option{
				{Label: "Seeing a diagram or picture", Value: "high"},
				{Label: "Reading about it", Value: "low"},
				{Label: "Listening to someone explain it", Value: "med"},
			},
		},
		{
			ID:   "hands_on",
			Text: "How do you best understand how something works?",
			Options: []Option{
				{Label: "Taking it apart or doing it myself", Value: "high"},
				{Label: "Watching someone else do it", Value: "med"},
				{Label: "Reading the instructions first", Value: "low"},
			},
		},
		{
			ID:   "why",
			Text: "Does it bother you if you don't know WHY you are doing a step?",
			Options: []Option{
				{Label: "Yes! It drives me crazy!", Value: "yes"},
				{Label: "A little bit", Value: "a_bit"},
				{Label: "No, I just follow instructions", Value: "no"},
			},
		},
		{
			ID:   "sensory",
			Text: "What kind of environment helps you focus?",
			Options: []Option{
				{Label: "Complete silence and minimal distractions", Value: "silence"},
				{Label: "Simple layouts, not too much text at once", Value: "simple_layout"},
				{Label: "I can focus anywhere / Standard layout is fine", Value: "standard"},
			},
		},
		{
			ID:   "step_preference",
			Text: "Do you get overwhelmed by big walls of text?",
			Options: []Option{
				{Label: "Yes, break it down into tiny steps please!", Value: "tiny_steps"},
				{Label: "Sometimes", Value: "sometimes"},
				{Label: "I can handle paragraphs", Value: "paragraphs"},
			},
		},
	}
}

// FromQuizAnswers maps quiz answers (question ID → chosen option value)
// to a Profile. Missing answers fall back to the same defaults the
// original quiz used; repetition defaults high.
func FromQuizAnswers(answers map[string]string) Profile {
	p := Profile{
		VisualPreference:     5,
		HandsOnPreference:    5,
		StepByStepPreference: 8,
		VerbalPreference:     4,
		NeedForRepetition:    true,
		SensoryPreference:    SensorySimpleLayout,
		AgeRange:             AgeAdult,
	}

	if answers["visual"] == "high" {
		p.VisualPreference = 9
	}
	if answers["visual"] == "low" {
		p.VerbalPreference = 8
	}
	if answers["hands_on"] == "high" {
		p.HandsOnPreference = 9
	}

	switch answers["step_preference"] {
	case "tiny_steps":
		p.StepByStepPreference = 10
	case "sometimes":
		p.StepByStepPreference = 7
	case "paragraphs":
		p.StepByStepPreference = 5
	}

	p.NeedWhyExplanations = answers["why"] == "yes" || answers["why"] == "a_bit"

	switch Sensory(answers["sensory"]) {
	case SensorySilence, SensoryMinimalText, SensorySimpleLayout, SensoryStandard:
		p.SensoryPreference = Sensory(answers["sensory"])
	}

	switch AgeRange(answers["age"]) {
	case AgeChild, AgeTeen, AgeAdult, AgeSenior:
		p.AgeRange = AgeRange(answers["age"])
	}

	return p
}
