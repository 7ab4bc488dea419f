// Package coach implements the per-topic study coach: a stateless chat
// function the COACH_CHAT screen drives with its running message history.
package coach

import (
	"context"
	"fmt"
	"strings"

	"lovlearn/internal/llm"
	"lovlearn/internal/profile"
)

// FallbackReply is what screens show when a chat call fails. The typed
// error still reaches the caller; this is only the user-facing text.
const FallbackReply = "Sorry, I had a glitch! Try asking again."

// Turn is one prior message in the conversation.
type Turn struct {
	Role string `json:"role"` // "user" or "coach"
	Text string `json:"text"`
}

// Config holds chat settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns chat defaults. Replies stay short by budget.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.6,
	}
}

// Coach answers follow-up questions about a single topic.
type Coach struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Coach.
func New(provider llm.Provider, cfg Config) *Coach {
	return &Coach{provider: provider, cfg: cfg}
}

// Chat sends one user message with the full prior history and returns the
// coach's reply. The Coach keeps no state between calls; appending the
// reply to the history is the caller's job.
func (c *Coach) Chat(ctx context.Context, topic, message string, history []Turn, p *profile.Profile) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message must not be empty")
	}

	ctx = llm.WithPurpose(ctx, "coach")

	messages := make([]llm.Message, 0, len(history)+1)
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == "coach" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Text})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	req := llm.Request{
		System:      buildSystemPrompt(topic, p),
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("coach chat: %w", err)
	}

	reply := strings.TrimSpace(string(resp.Content))
	if reply == "" {
		return "", &llm.ErrEmptyResponse{Model: c.provider.ModelID()}
	}

	return reply, nil
}

func buildSystemPrompt(topic string, p *profile.Profile) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`You are the "Lovable Coach," a patient study companion. The learner is currently studying: %s.

Answer their questions about this topic in simple, easy steps. Keep replies short (2-5 sentences), warm, and concrete. If a question drifts away from the topic, gently bring it back.`, topic))

	if p != nil {
		if guidance := p.AgeRange.LanguageGuidance(); guidance != "" {
			b.WriteString("\n\n")
			b.WriteString(guidance)
		}
	}

	return b.String()
}
