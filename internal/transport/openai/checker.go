package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprovision/internal/domain"
	"github.com/kailas-cloud/vecprovision/internal/metrics"
)

// Checker verifies an embedding provider key with a one-input embedding request
// against an OpenAI-compatible endpoint (OpenAI itself, Cohere compatibility API).
type Checker struct {
	client   *openai.Client
	model    openai.EmbeddingModel
	provider string
	logger   *zap.Logger
}

// Config holds the credential checker settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewChecker creates a credential checker.
func NewChecker(cfg *Config) *Checker {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Checker{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    openai.EmbeddingModel(cfg.Model),
		provider: cfg.Provider,
		logger:   logger,
	}
}

// Check sends a single short embedding request. Any failure maps to domain.ErrProviderCredential.
func (c *Checker) Check(ctx context.Context) error {
	req := openai.EmbeddingRequest{
		Input:          []string{"ping"},
		Model:          c.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}

	start := time.Now()
	resp, err := c.client.CreateEmbeddings(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.CredentialChecksTotal.WithLabelValues(c.provider, "error").Inc()
		err = parseAPIError(c.provider, err)
		c.logger.Warn("Credential check failed",
			zap.String("provider", c.provider),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return err
	}
	if len(resp.Data) == 0 {
		metrics.CredentialChecksTotal.WithLabelValues(c.provider, "error").Inc()
		return fmt.Errorf("%s: empty embedding response: %w", c.provider, domain.ErrProviderCredential)
	}

	metrics.CredentialChecksTotal.WithLabelValues(c.provider, "success").Inc()
	c.logger.Debug("Credential check passed",
		zap.String("provider", c.provider),
		zap.String("model", string(c.model)),
		zap.Duration("duration", duration),
	)
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(provider string, err error) error {
	wrap := domain.ErrProviderCredential

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s API error %d: %s: %w",
			provider, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("%s API error %d: %s: %w",
				provider, reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("%s API error %d: %w", provider, reqErr.HTTPStatusCode, wrap)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s request: %w: %w", provider, err, wrap)
	}
	return fmt.Errorf("%s request failed: %w: %w", provider, err, wrap)
}

// extractDetail pulls "detail" or "message" out of a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return parsed.Message
}
