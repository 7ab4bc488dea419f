package guide

import (
	"encoding/json"
	"fmt"
	"strings"

	"lovlearn/internal/profile"
)

const systemPrompt = `You are "Lovable Learner," a study companion designed to teach neurodivergent learners using visual structure, step-by-step breakdowns, hands-on options, and clear explanations.

Generate a personalized study guide based on the provided LEARNING STYLE PROFILE and TOPIC.

Tone: Warm, clear, friendly, non-academic, simple.
Goal: Make the learner feel capable and supported.

CRITICAL:
1. Flashcards must be populated with ACTUAL content related to the TOPIC.
2. Produce between 10 and 20 flashcards.
3. Flashcards must use exact keys "front" and "back". "front" is the question or term, "back" is the explanation.
4. Every step needs an explanation and a "why it matters" sentence.

VISUALS:
Generate Mermaid.js diagram code (graph TD or mindmap) for 'diagramCode' that visually explains the concept.
Keep it simple. Do not wrap it in markdown backticks.`

// buildUserMessage assembles the user-side prompt: topic, the profile
// verbatim as JSON context, and the optional modification request.
func buildUserMessage(topic string, p profile.Profile, modification string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("TOPIC: %s\n\n", topic))

	b.WriteString("LEARNING STYLE PROFILE:\n")
	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		b.Write(profileJSON)
	}
	b.WriteString("\n")

	if guidance := p.AgeRange.LanguageGuidance(); guidance != "" {
		b.WriteString("\nLANGUAGE: ")
		b.WriteString(guidance)
		b.WriteString("\n")
	}

	if modification != "" {
		b.WriteString(fmt.Sprintf("\nMODIFICATION REQUEST: %s. Please regenerate the guide focusing on this request.\n", modification))
	}

	return b.String()
}
