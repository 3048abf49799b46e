package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/boomerhub/boomerhub/internal/shared/config"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

const noopPreviewRunes = 120

// NoopGenerator echoes a preview of the prompt. Used when no LLM is configured.
type NoopGenerator struct{}

func NewNoopGenerator() *NoopGenerator {
	return &NoopGenerator{}
}

func (NoopGenerator) Generate(_ context.Context, prompt string) (string, error) {
	preview := strings.Join(strings.Fields(prompt), " ")
	if utf8.RuneCountInString(preview) > noopPreviewRunes {
		preview = string([]rune(preview)[:noopPreviewRunes]) + "..."
	}
	return fmt.Sprintf("[llm disabled] %s", preview), nil
}

func (NoopGenerator) Model() string {
	return "noop"
}

// Generator is the text generation contract satisfied by every implementation here.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// NewGenerator returns a Gemini generator when an API key is configured and a NoopGenerator otherwise.
func NewGenerator(ctx context.Context, cfg config.LLMConfig, log logger.Interface) (Generator, error) {
	if !cfg.IsConfigured() {
		log.Warnw("LLM API key not configured, AI tools will return placeholder output")
		return NewNoopGenerator(), nil
	}
	gen, err := NewGeminiGenerator(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Infow("Gemini generator initialized", "model", gen.Model())
	return gen, nil
}
