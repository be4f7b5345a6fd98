package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockProvider records calls and returns canned responses.
type mockProvider struct {
	mu       sync.Mutex
	calls    []CompletionRequest
	response *CompletionResponse
	err      error
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		response: &CompletionResponse{
			Content:      "mock response",
			InputTokens:  10,
			OutputTokens: 20,
			Model:        "mock-model",
			FinishReason: "stop",
		},
	}
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestNewProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_API_KEY", "or-test")

	p, err := NewProvider("openai", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("got name %q", p.Name())
	}

	p, err = NewProvider("openrouter", "meta-llama/llama-3-8b-instruct")
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if p.Name() != "openrouter" {
		t.Errorf("got name %q", p.Name())
	}

	if _, err := NewProvider("cohere", "command-r"); err == nil {
		t.Error("expected error for unsupported provider type")
	}
}

func TestNewProviderMissingKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	if _, err := NewProvider("openrouter", "some-model"); err == nil {
		t.Error("expected error when API key is unset")
	}
}

func TestRateLimitedProviderPassesThrough(t *testing.T) {
	mock := newMockProvider()
	limited := NewRateLimitedProvider(mock, 60)

	resp, err := limited.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "mock response" {
		t.Errorf("got %q", resp.Content)
	}
	if limited.Name() != "mock" {
		t.Errorf("got name %q", limited.Name())
	}
	if mock.callCount() != 1 {
		t.Errorf("got %d calls, want 1", mock.callCount())
	}
}

func TestRateLimitedProviderPropagatesError(t *testing.T) {
	mock := newMockProvider()
	mock.err = errors.New("upstream down")
	limited := NewRateLimitedProvider(mock, 60)

	if _, err := limited.Complete(context.Background(), CompletionRequest{}); err == nil {
		t.Error("expected error from wrapped provider")
	}
}

func TestRateLimitedProviderHonorsContext(t *testing.T) {
	mock := newMockProvider()
	// One token total: the second call must block until refill or cancel.
	limited := NewRateLimitedProvider(mock, 1)

	if _, err := limited.Complete(context.Background(), CompletionRequest{}); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if _, err := limited.Complete(ctx, CompletionRequest{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
