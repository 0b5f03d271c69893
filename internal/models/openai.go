package models

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiGenerator wraps an OpenAI-compatible chat client.
type openaiGenerator struct {
	client *openai.Client
	name   string
}

// NewOpenAIGenerator returns a Generator backed by the OpenAI chat API.
func NewOpenAIGenerator(apiKey, modelName string) (Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiGenerator{
		client: &client,
		name:   modelName,
	}, nil
}

func (g *openaiGenerator) Name() string {
	return g.name
}

func (g *openaiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.name,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		slog.Error("failed to call chat API", "model", g.name, "error", err.Error())
		return "", fmt.Errorf("failed to call chat API: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("completion contained no text")
	}
	return text, nil
}
