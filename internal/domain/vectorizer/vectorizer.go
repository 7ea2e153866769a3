// Package vectorizer describes the text embedding module a collection is created with.
package vectorizer

import (
	"fmt"
	"strings"
)

// Provider is the embedding provider behind a text vectorizer.
type Provider string

const (
	// OpenAI vectorizes through the text2vec-openai module.
	OpenAI Provider = "openai"
	// Cohere vectorizes through the text2vec-cohere module.
	Cohere Provider = "cohere"
)

// ParseProvider converts a configuration value into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown embedding provider %q (want openai or cohere)", s)
	}
	return p, nil
}

// IsValid checks if the provider is supported.
func (p Provider) IsValid() bool {
	return p == OpenAI || p == Cohere
}

// Module returns the database module name for the provider.
func (p Provider) Module() string {
	switch p {
	case OpenAI:
		return "text2vec-openai"
	case Cohere:
		return "text2vec-cohere"
	}
	return ""
}

// HeaderName returns the request header carrying the provider API key.
func (p Provider) HeaderName() string {
	switch p {
	case OpenAI:
		return "X-OpenAI-Api-Key"
	case Cohere:
		return "X-Cohere-Api-Key"
	}
	return ""
}

// ProviderFromModule maps a module name back to its provider.
func ProviderFromModule(module string) (Provider, bool) {
	switch module {
	case OpenAI.Module():
		return OpenAI, true
	case Cohere.Module():
		return Cohere, true
	}
	return "", false
}

// Vectorizer is an immutable vectorizer setting: provider plus optional model.
type Vectorizer struct {
	provider Provider
	model    string
}

// New validates and creates a Vectorizer. An empty model leaves the module default.
func New(p Provider, model string) (Vectorizer, error) {
	if !p.IsValid() {
		return Vectorizer{}, fmt.Errorf("unknown embedding provider %q", p)
	}
	return Vectorizer{provider: p, model: strings.TrimSpace(model)}, nil
}

// Reconstruct creates a Vectorizer without validation (storage hydration).
func Reconstruct(p Provider, model string) Vectorizer {
	return Vectorizer{provider: p, model: model}
}

// Provider returns the embedding provider.
func (v Vectorizer) Provider() Provider { return v.provider }

// Model returns the configured model, empty for the module default.
func (v Vectorizer) Model() string { return v.model }

// Module returns the database module name.
func (v Vectorizer) Module() string { return v.provider.Module() }

// ModuleConfig returns the per-module settings sent with the collection definition.
// Nil when nothing overrides the module defaults.
func (v Vectorizer) ModuleConfig() map[string]any {
	if v.model == "" {
		return nil
	}
	return map[string]any{
		v.Module(): map[string]any{"model": v.model},
	}
}
