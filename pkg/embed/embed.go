// Package embed implements the embedding-model client described in §6
// ("Embedding model spec"): a "<provider>:<model>" string resolves to one of
// a generic REST adapter (OpenAI, Azure OpenAI, Google) or an AWS Bedrock
// adapter, each satisfying the narrow Embedder capability pkg/store depends on.
package embed

import (
	"context"
	"fmt"
	"strings"
)

// Provider names recognized in an embedding model spec (§6).
const (
	ProviderOpenAI  = "openai"
	ProviderAzure   = "azure"
	ProviderGoogle  = "google"
	ProviderBedrock = "bedrock"
)

// defaultProvider is used when a model spec carries no "provider:" prefix.
const defaultProvider = ProviderOpenAI

// Client is the capability pkg/store's Embedder interface requires,
// structurally satisfied by every adapter in this package.
type Client interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// ParseSpec splits a "<provider>:<model>" embedding model spec, defaulting
// the provider to openai when no colon is present.
func ParseSpec(spec string) (provider, model string) {
	p, m, ok := strings.Cut(spec, ":")
	if !ok {
		return defaultProvider, spec
	}

	return strings.ToLower(p), m
}

// Config is the provider-agnostic construction input for New.
type Config struct {
	// Spec is the "<provider>:<model>" string (§6).
	Spec string
	// Dimension is the embedding width the model produces; pkg/store's
	// dimension policy fits it to the canonical store width regardless.
	Dimension int
	// APIKey authenticates the generic REST adapter (OpenAI/Azure/Google).
	APIKey string
	// BaseURL overrides the REST adapter's endpoint (required for Azure,
	// optional elsewhere).
	BaseURL string
	// Region is the AWS region for the Bedrock adapter.
	Region string
}

// New resolves Config.Spec's provider and returns the matching Client.
func New(ctx context.Context, cfg Config) (Client, error) {
	provider, model := ParseSpec(cfg.Spec)

	switch provider {
	case ProviderOpenAI, ProviderAzure, ProviderGoogle:
		return NewHTTPClient(HTTPConfig{
			Provider:  provider,
			Model:     model,
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Dimension: cfg.Dimension,
		})
	case ProviderBedrock:
		return NewBedrockClient(ctx, BedrockConfig{
			Model:     model,
			Region:    cfg.Region,
			Dimension: cfg.Dimension,
		})
	default:
		return nil, fmt.Errorf("embed: unknown provider %q", provider)
	}
}
