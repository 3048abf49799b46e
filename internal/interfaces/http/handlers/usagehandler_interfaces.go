package handlers

import (
	"context"

	aitooldto "github.com/boomerhub/boomerhub/internal/application/aitool/dto"
	aitoolusecases "github.com/boomerhub/boomerhub/internal/application/aitool/usecases"
	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
)

// Use case interfaces for UsageHandler

type checkUsageUseCase interface {
	Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error)
}

type recordUsageUseCase interface {
	Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error)
}

type consumeUsageUseCase interface {
	ExecuteFor(ctx context.Context, identity usage.Identity) (*dto.UsageStatusResponse, error)
}

type resetUsageUseCase interface {
	Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error)
}

// Use case interfaces for AIToolHandler

type runToolUseCase interface {
	Execute(ctx context.Context, identity usage.Identity, tool aitoolusecases.Tool, req aitooldto.RunToolRequest) (*aitooldto.RunToolResponse, error)
}
