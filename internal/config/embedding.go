package config

import (
	"strings"

	"github.com/kailas-cloud/vecprovision/internal/domain/vectorizer"
)

// EmbeddingConfig holds vectorizer settings.
type EmbeddingConfig struct {
	Provider          string         `yaml:"provider" env:"EMBEDDING_PROVIDER"` // openai, cohere (default: openai if its key is set)
	Model             string         `yaml:"model" env:"EMBEDDING_MODEL"`       // empty = module default
	VerifyCredentials bool           `yaml:"verify_credentials" env:"VERIFY_CREDENTIALS"`
	OpenAI            ProviderConfig `yaml:"openai" envPrefix:"OPENAI_"`
	Cohere            ProviderConfig `yaml:"cohere" envPrefix:"COHERE_"`
}

// ProviderConfig holds embedding provider settings.
type ProviderConfig struct {
	APIKey         string `yaml:"api_key" env:"API_KEY"`
	BaseURL        string `yaml:"base_url" env:"BASE_URL"`               // OpenAI-compatible endpoint for preflight
	PreflightModel string `yaml:"preflight_model" env:"PREFLIGHT_MODEL"` // model used by the credential check
}

func (e *EmbeddingConfig) applyDefaults() {
	e.Provider = strings.ToLower(strings.TrimSpace(e.Provider))
	if e.OpenAI.BaseURL == "" {
		e.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if e.Cohere.BaseURL == "" {
		e.Cohere.BaseURL = "https://api.cohere.ai/compatibility/v1"
	}
	// Preflight checks the collection model unless a preflight model is set.
	e.Model = strings.TrimSpace(e.Model)
	if e.Model != "" {
		if e.OpenAI.PreflightModel == "" {
			e.OpenAI.PreflightModel = e.Model
		}
		if e.Cohere.PreflightModel == "" {
			e.Cohere.PreflightModel = e.Model
		}
	}
	if e.OpenAI.PreflightModel == "" {
		e.OpenAI.PreflightModel = "text-embedding-3-small"
	}
	if e.Cohere.PreflightModel == "" {
		e.Cohere.PreflightModel = "embed-multilingual-v3.0"
	}
}

func (e *EmbeddingConfig) validate() error {
	if e.OpenAI.APIKey == "" && e.Cohere.APIKey == "" {
		return invalid("either OPENAI_API_KEY or COHERE_API_KEY must be provided")
	}
	_, err := e.ResolveProvider()
	return err
}

// ResolveProvider returns the explicit provider, or OpenAI when its key is set, else Cohere.
func (e EmbeddingConfig) ResolveProvider() (vectorizer.Provider, error) {
	if e.Provider != "" {
		p, err := vectorizer.ParseProvider(e.Provider)
		if err != nil {
			return "", invalid("embedding.provider: %v", err)
		}
		if e.ProviderConfig(p).APIKey == "" {
			return "", invalid("embedding.provider is %s but its API key is empty", p)
		}
		return p, nil
	}
	if e.OpenAI.APIKey != "" {
		return vectorizer.OpenAI, nil
	}
	if e.Cohere.APIKey != "" {
		return vectorizer.Cohere, nil
	}
	return "", invalid("either OPENAI_API_KEY or COHERE_API_KEY must be provided")
}

// ProviderConfig returns the settings for a provider.
func (e EmbeddingConfig) ProviderConfig(p vectorizer.Provider) ProviderConfig {
	if p == vectorizer.Cohere {
		return e.Cohere
	}
	return e.OpenAI
}

// Headers returns database request headers carrying every configured provider key.
func (e EmbeddingConfig) Headers() map[string]string {
	h := make(map[string]string, 2)
	if e.OpenAI.APIKey != "" {
		h[vectorizer.OpenAI.HeaderName()] = e.OpenAI.APIKey
	}
	if e.Cohere.APIKey != "" {
		h[vectorizer.Cohere.HeaderName()] = e.Cohere.APIKey
	}
	return h
}
