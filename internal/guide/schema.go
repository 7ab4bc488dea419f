package guide

import "lovlearn/internal/llm"

// ContentSchema constrains generation output to the study-guide shape.
// The flashcard 10-20 count lives in the prompt, not here: models follow
// the instruction well enough, and rejecting an otherwise good guide
// over card count would punish the learner for the model's miscount.
var ContentSchema = &llm.Schema{
	Name:        "study-guide",
	Description: "A personalized study guide with steps, practice, memory anchors, and flashcards",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Short, warm overview of the topic (2-4 sentences)",
			},
			"visualBreakdown": map[string]any{
				"type":        "string",
				"description": "Text description of how the concept looks or fits together visually",
			},
			"diagramCode": map[string]any{
				"type":        "string",
				"description": "Mermaid.js diagram source (graph TD or mindmap), no markdown fences",
			},
			"steps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"step":         map[string]any{"type": "string"},
						"explanation":  map[string]any{"type": "string"},
						"whyItMatters": map[string]any{"type": "string"},
					},
					"required":             []any{"step", "explanation", "whyItMatters"},
					"additionalProperties": false,
				},
				"description": "Ordered teaching steps, simplest first",
			},
			"handsOnPractice": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Things the learner can physically do or try",
			},
			"memoryAnchors": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Mnemonics and memory hooks",
			},
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string"},
						"back":  map[string]any{"type": "string"},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
				"description": "Question/answer cards derived from the guide",
			},
			"pepTalk": map[string]any{
				"type":        "string",
				"description": "Short encouragement addressed to the learner",
			},
			"youtubeLink": map[string]any{
				"type":        "string",
				"description": "Optional URL of a relevant video",
			},
		},
		"required": []any{
			"summary", "visualBreakdown", "diagramCode", "steps",
			"handsOnPractice", "memoryAnchors", "flashcards", "pepTalk",
		},
		"additionalProperties": false,
	},
}
