package embed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// BedrockConfig configures a BedrockClient.
type BedrockConfig struct {
	Model     string
	Region    string
	Dimension int
}

// bedrockAPI is the narrow subset of *bedrockruntime.Client the adapter
// depends on, so tests can substitute a fake without a live AWS session.
type bedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient embeds text via an AWS Bedrock Titan-family embedding model (§6).
type BedrockClient struct {
	api   bedrockAPI
	model string
	dim   int
}

// NewBedrockClient resolves AWS credentials/region via the default config
// chain and builds a BedrockClient.
func NewBedrockClient(ctx context.Context, cfg BedrockConfig) (*BedrockClient, error) {
	var optFns []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("embed: load aws config: %w", err)
	}

	return &BedrockClient{
		api:   bedrockruntime.NewFromConfig(awsCfg),
		model: cfg.Model,
		dim:   cfg.Dimension,
	}, nil
}

// Dimension returns the model's configured embedding width.
func (c *BedrockClient) Dimension() int { return c.dim }

type titanEmbedRequest struct {
	InputText string `json:"inputText"`
}

type titanEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed invokes the configured Titan-family embedding model over a single
// text input (§6 "AWS Bedrock").
func (c *BedrockClient) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(titanEmbedRequest{InputText: text})
	if err != nil {
		return nil, fmt.Errorf("embed: marshal bedrock request: %w", err)
	}

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.model),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("embed: invoke bedrock model: %w", err)
	}

	var parsed titanEmbedResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return nil, fmt.Errorf("embed: decode bedrock response: %w", err)
	}

	return parsed.Embedding, nil
}
