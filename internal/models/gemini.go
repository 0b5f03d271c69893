package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiGenerator wraps a Gemini client.
type geminiGenerator struct {
	client *genai.Client
	name   string
}

// NewGeminiGenerator returns a Generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiGenerator{
		client: client,
		name:   modelName,
	}, nil
}

func (g *geminiGenerator) Name() string {
	return g.name
}

func (g *geminiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, "system"),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.name, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini API: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty completion response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("completion contained no text")
	}
	return text, nil
}
