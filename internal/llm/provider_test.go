package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var upstream *ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("expected ErrUpstream, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	req := Request{System: "coach persona", Messages: []Message{{Role: RoleUser, Content: "hi"}}}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 recorded call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "coach persona" {
		t.Errorf("recorded system = %q", mock.Calls[0].System)
	}
}

type captureSink struct {
	events []RequestEvent
}

func (c *captureSink) AppendLLMRequest(_ context.Context, ev RequestEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	sink := &captureSink{}
	p := WithLogging(NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 7, OutputTokens: 3},
	}), sink)

	ctx := WithPurpose(context.Background(), "coach")
	if _, err := p.Generate(ctx, Request{System: "persona"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Purpose != "coach" || ev.Provider != "mock" {
		t.Errorf("event purpose/provider = %q/%q", ev.Purpose, ev.Provider)
	}
	if !ev.Success || ev.OutputTokens != 3 {
		t.Errorf("event fields wrong: %+v", ev)
	}
	if ev.ResponseBody != `{"ok":true}` {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	sink := &captureSink{}
	p := WithLogging(NewMockProvider(MockResponse{
		Err: &ErrRateLimit{StatusCode: 429},
	}), sink)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected the provider error to pass through")
	}

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	if sink.events[0].Success || sink.events[0].ErrorMessage == "" {
		t.Errorf("failure not recorded: %+v", sink.events[0])
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := WithPurpose(context.Background(), "guide")
	if got := PurposeFrom(ctx); got != "guide" {
		t.Errorf("PurposeFrom = %q, want guide", got)
	}
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom(background) = %q, want unknown", got)
	}
}
