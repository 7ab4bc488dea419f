package guide

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lovlearn/internal/llm"
	"lovlearn/internal/profile"
)

// Generator turns a topic and a learner profile into guide Content.
// It is stateless; every call is a single attempt with no retry.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a guide generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate produces guide content for topic. When modification is
// non-empty it steers a regeneration of the same topic; identity
// bookkeeping (id, createdAt) is the caller's concern.
//
// Two calls with identical arguments may return different content.
func (g *Generator) Generate(ctx context.Context, topic string, p profile.Profile, modification string) (*Content, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic must not be empty")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	ctx = llm.WithPurpose(ctx, "guide")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic, p, modification)},
		},
		Schema:      ContentSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("guide generation: %w", err)
	}
	if resp.StopReason == "max_tokens" {
		// A truncated guide is almost certainly unparseable JSON; report
		// the cause rather than the symptom.
		return nil, &llm.ErrMaxTokensExceeded{Content: resp.Content}
	}

	return decodeContent(resp.Content, g.provider.ModelID())
}

// decodeContent cleans and decodes raw model output into Content.
// Markdown code fences are stripped first: some models wrap JSON in
// ```json fences even when told not to, and that is recoverable.
func decodeContent(raw json.RawMessage, model string) (*Content, error) {
	text := stripFences(string(raw))
	if text == "" {
		return nil, &llm.ErrEmptyResponse{Model: model}
	}

	var content Content
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, &llm.ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("decode study guide: %w", err),
		}
	}

	if err := content.check(); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: raw, Err: err}
	}

	return &content, nil
}

// check enforces the structural invariants the schema alone cannot:
// required strings non-blank, at least one step, flashcards non-empty.
func (c *Content) check() error {
	required := map[string]string{
		"summary":         c.Summary,
		"visualBreakdown": c.VisualBreakdown,
		"diagramCode":     c.DiagramCode,
		"pepTalk":         c.PepTalk,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("study guide missing %s", name)
		}
	}

	if len(c.Steps) == 0 {
		return fmt.Errorf("study guide has no steps")
	}
	if len(c.Flashcards) == 0 {
		return fmt.Errorf("study guide has no flashcards")
	}
	for i, card := range c.Flashcards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			return fmt.Errorf("flashcard %d has a blank side", i)
		}
	}

	return nil
}

// stripFences removes a wrapping markdown code fence (``` or ```json)
// and surrounding whitespace.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence line, if any.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine == "" || isFenceTag(firstLine) {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
