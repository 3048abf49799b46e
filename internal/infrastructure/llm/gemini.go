// Package llm provides the text generators behind the AI tools.
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/boomerhub/boomerhub/internal/shared/config"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

const defaultModel = "gemini-2.0-flash"

// GeminiGenerator generates text with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger logger.Interface
}

// NewGeminiGenerator creates a Gemini-backed generator. An API key is required.
func NewGeminiGenerator(ctx context.Context, cfg config.LLMConfig, log logger.Interface) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  model,
		logger: log,
	}, nil
}

// Generate sends prompt as a single user turn and returns the text of the first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.4)),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	if resp.UsageMetadata != nil {
		g.logger.Debugw("gemini generation finished",
			"model", g.model,
			"prompt_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
		)
	}
	return text, nil
}

func (g *GeminiGenerator) Model() string {
	return g.model
}
