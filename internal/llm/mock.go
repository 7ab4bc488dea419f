package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one queued reply for the MockProvider. Set Err to make
// the call fail instead.
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason string // defaults to "end"
	Err        error
}

// MockProvider replays queued responses in order and records every
// request it sees. It is the test seam for everything that talks to a
// Provider.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse

	Calls []Request
}

// NewMockProvider queues the given responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// Generate pops the next queued response. An exhausted queue fails with
// *ErrUpstream, which surfaces a forgotten canned response as a test
// failure rather than a hang.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.queue) == 0 {
		return nil, &ErrUpstream{}
	}

	next := m.queue[0]
	m.queue = m.queue[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	stop := next.StopReason
	if stop == "" {
		stop = "end"
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: stop,
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount reports how many Generate calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
