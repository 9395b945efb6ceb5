package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator is the text-generation backend. Implementations are opaque
// request/response functions; the extraction loop treats any error as a
// retryable provider failure.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, userMessage string) (string, error)
}

// GeminiGenerator talks to the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, &ConfigError{Reason: "gemini api key is not set"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, systemInstruction, userMessage string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(userMessage, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}

	return text, nil
}
