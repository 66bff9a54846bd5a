package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// ITextGenerator is the opaque text-generation call the orchestrator depends
// on. The output may be cut off by the provider's output token limit; that is the
// failure mode the continuation protocol exists for.
type ITextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client          *genai.Client
	tracker         ICostTracker
	model           string
	maxOutputTokens int32
	temperature     float32
}

type GeminiClientOption = func(client *GeminiClient) error

func NewGeminiClient(opts ...GeminiClientOption) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	gemini := GeminiClient{
		client:          client,
		model:           "gemini-2.5-flash",
		maxOutputTokens: 8192,
		temperature:     0.7,
	}
	if err := applyFuncOptions(&gemini, opts...); err != nil {
		return nil, fmt.Errorf("failed to apply options: %w", err)
	}
	return &gemini, nil
}

func WithModel(model string) GeminiClientOption {
	return func(client *GeminiClient) error {
		client.model = model
		return nil
	}
}

func WithMaxOutputTokens(n int32) GeminiClientOption {
	return func(client *GeminiClient) error {
		client.maxOutputTokens = n
		return nil
	}
}

func WithTemperature(t float32) GeminiClientOption {
	return func(client *GeminiClient) error {
		client.temperature = t
		return nil
	}
}

func WithCostTracker(tracker ICostTracker) GeminiClientOption {
	return func(client *GeminiClient) error {
		client.tracker = tracker
		return nil
	}
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: g.maxOutputTokens,
		Temperature:     genai.Ptr(g.temperature),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if g.tracker != nil {
		um := Deref(result.UsageMetadata)
		tknIn := int(um.PromptTokenCount)
		tknOut := int(um.TotalTokenCount) - tknIn
		g.tracker.AddTokenCost(ctx, tknIn, tknOut)
	}

	return result.Text(), nil
}
