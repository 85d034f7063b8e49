package translate

import (
	"context"
	"fmt"
)

// MockProvider is a translation backend for tests.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Err          error             // Error to return instead of translating
	CallCount    int               // Number of times Translate was called
	LastRequest  *Request          // Last request received
}

// NewMockProvider creates a mock provider with an empty translation table.
func NewMockProvider() *MockProvider {
	return &MockProvider{Translations: map[string]string{}}
}

// Translate returns the mapped translation, or the input bracketed when
// no mapping exists.
func (m *MockProvider) Translate(ctx context.Context, req Request) (string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return "", m.Err
	}
	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s]", req.Text), nil
}

// Reset clears the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

var _ Provider = (*MockProvider)(nil)
