// Package translate turns prompt input text into English prompt bodies.
//
// A Translator wraps a Provider with caching, retry with exponential
// backoff, and a per-call timeout. Providers are swappable so tests run
// against MockProvider while the application uses the OpenAI backend.
package translate

import (
	"context"
	"strings"
	"time"
)

// Request describes a single translation call.
type Request struct {
	Text       string // Source text to translate
	TargetLang string // Target language code (default "en")
	Model      string // Model hint, informational for cache keying
}

// Provider is the interface for translation backends.
type Provider interface {
	Translate(ctx context.Context, req Request) (string, error)
}

// Translator coordinates a provider with caching and retries.
type Translator struct {
	provider   Provider
	cache      Cache
	retry      RetryConfig
	timeout    time.Duration
	targetLang string
	model      string
}

// Option configures a Translator.
type Option func(*Translator)

// WithCache sets the translation cache.
func WithCache(c Cache) Option {
	return func(t *Translator) { t.cache = c }
}

// WithRetryConfig overrides the retry behavior.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(t *Translator) { t.retry = cfg }
}

// WithTimeout bounds each translation call.
func WithTimeout(d time.Duration) Option {
	return func(t *Translator) { t.timeout = d }
}

// WithTargetLang sets the target language for all calls.
func WithTargetLang(lang string) Option {
	return func(t *Translator) { t.targetLang = lang }
}

// WithModel records the model name used for cache keying.
func WithModel(model string) Option {
	return func(t *Translator) { t.model = model }
}

// New creates a Translator around the given provider.
func New(provider Provider, opts ...Option) *Translator {
	t := &Translator{
		provider:   provider,
		retry:      DefaultRetryConfig(),
		timeout:    30 * time.Second,
		targetLang: "en",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate translates text, consulting the cache first.
// Empty or whitespace-only input returns an empty string without a
// provider call.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", nil
	}

	key := CacheKey(HashText(trimmed), t.targetLang, t.model)
	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			return cached, nil
		}
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req := Request{Text: trimmed, TargetLang: t.targetLang, Model: t.model}
	result, err := WithRetry(ctx, t.retry, func() (string, error) {
		return t.provider.Translate(ctx, req)
	})
	if err != nil {
		return "", err
	}

	result = strings.TrimSpace(result)
	if t.cache != nil {
		t.cache.Set(key, result)
	}
	return result, nil
}
