package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// providerDefaultBaseURL is the REST endpoint used when HTTPConfig.BaseURL
// is empty, for providers with a well-known default (§6 "Supported providers").
var providerDefaultBaseURL = map[string]string{
	ProviderOpenAI: "https://api.openai.com/v1/embeddings",
	ProviderGoogle: "https://generativelanguage.googleapis.com/v1beta/openai/embeddings",
}

const (
	httpRetryBaseSeconds = 1.0
	httpRetryMaxAttempts = 4
)

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	Dimension int
	Client    *http.Client
}

// HTTPClient calls an OpenAI-compatible REST embeddings endpoint, the shape
// shared by OpenAI, Azure OpenAI, and Google's OpenAI-compatible surface (§6).
type HTTPClient struct {
	cfg    HTTPConfig
	client *http.Client
	url    string
}

// NewHTTPClient builds an HTTPClient, resolving BaseURL from the provider's
// default when unset.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	url := cfg.BaseURL
	if url == "" {
		url = providerDefaultBaseURL[cfg.Provider]
	}

	if url == "" {
		return nil, fmt.Errorf("embed: provider %q requires an explicit base URL", cfg.Provider)
	}

	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPClient{cfg: cfg, client: client, url: url}, nil
}

// Dimension returns the model's configured embedding width.
func (c *HTTPClient) Dimension() int { return c.cfg.Dimension }

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed posts a single-input embeddings request, retrying transport errors
// and 5xx responses with exponential backoff and failing fast on 4xx.
func (c *HTTPClient) Embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(embeddingRequest{Model: c.cfg.Model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("embed: marshal request: %w", err)
	}

	var result []float32

	policy := backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(httpRetryBaseSeconds*time.Second),
			backoff.WithMultiplier(2),
			backoff.WithRandomizationFactor(0),
		),
		httpRetryMaxAttempts-1,
	)

	op := func() error {
		vec, err := c.doOnce(ctx, payload)
		if err != nil {
			return err
		}

		result = vec

		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *HTTPClient) doOnce(ctx context.Context, payload []byte) ([]float32, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("embed: build request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")

	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("embed: read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("embed: provider status %d", resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return nil, backoff.Permanent(fmt.Errorf("embed: provider status %d: %s", resp.StatusCode, body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("embed: decode response: %w", err))
	}

	if len(parsed.Data) == 0 {
		return nil, backoff.Permanent(fmt.Errorf("embed: empty response"))
	}

	return parsed.Data[0].Embedding, nil
}
