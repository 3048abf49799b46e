package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/boomerhub/boomerhub/internal/application/aitool/dto"
	usagedto "github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/utils"
)

// Generator produces model output for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// UsageConsumer charges one invocation to an identity, failing when its quota is spent.
type UsageConsumer interface {
	ExecuteFor(ctx context.Context, identity usage.Identity) (*usagedto.UsageStatusResponse, error)
}

// RunToolUseCase runs an AI tool on behalf of an identity.
//
// The quota is charged once the request is valid and before the model is called,
// so a failed generation still costs one unit.
type RunToolUseCase struct {
	consumer  UsageConsumer
	generator Generator
	logger    logger.Interface
}

func NewRunToolUseCase(consumer UsageConsumer, generator Generator, logger logger.Interface) *RunToolUseCase {
	return &RunToolUseCase{
		consumer:  consumer,
		generator: generator,
		logger:    logger,
	}
}

func (uc *RunToolUseCase) Execute(
	ctx context.Context,
	identity usage.Identity,
	tool Tool,
	req dto.RunToolRequest,
) (*dto.RunToolResponse, error) {
	uc.logger.Infow("executing run AI tool use case",
		"tool", tool,
		"identity", identity.Key(),
		"identity_type", identity.Type(),
	)

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	prompt, err := buildPrompt(tool, req)
	if err != nil {
		return nil, err
	}

	status, err := uc.consumer.ExecuteFor(ctx, identity)
	if err != nil {
		return nil, err
	}

	output, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		uc.logger.Errorw("AI tool generation failed",
			"tool", tool,
			"identity", identity.Key(),
			"model", uc.generator.Model(),
			"error", err,
		)
		return nil, errors.NewUnavailableError("AI service is temporarily unavailable", fmt.Sprintf("tool %s", tool))
	}

	uc.logger.Infow("AI tool completed",
		"tool", tool,
		"identity", identity.Key(),
		"remaining", status.RemainingCount,
		"output_len", len(output),
	)

	return &dto.RunToolResponse{
		Tool:   tool.String(),
		Output: strings.TrimSpace(output),
		Model:  uc.generator.Model(),
		Usage:  status,
	}, nil
}
