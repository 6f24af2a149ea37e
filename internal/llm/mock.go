package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockSpeech is a canned speech result for the MockProvider.
type MockSpeech struct {
	Audio []byte
	Err   error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
// Generate and Synthesize draw from separate queues.
type MockProvider struct {
	mu          sync.Mutex
	responses   []MockResponse
	speech      []MockSpeech
	Calls       []Request
	SpeechCalls []SpeechRequest
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// Synthesize returns the next canned speech result or
// ErrProviderUnavailable if the speech queue is empty.
func (m *MockProvider) Synthesize(_ context.Context, req SpeechRequest) (*SpeechResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SpeechCalls = append(m.SpeechCalls, req)

	if len(m.speech) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	s := m.speech[0]
	m.speech = m.speech[1:]

	if s.Err != nil {
		return nil, s.Err
	}

	return &SpeechResponse{
		Audio:      s.Audio,
		SampleRate: DefaultSampleRate,
		Model:      "mock-tts",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddSpeech appends a canned speech result to the speech queue.
func (m *MockProvider) AddSpeech(s MockSpeech) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speech = append(m.speech, s)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SpeechCallCount returns the number of Synthesize calls made.
func (m *MockProvider) SpeechCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SpeechCalls)
}
