package usecases

import (
	"context"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// CheckUsageUseCase answers whether an identity may perform one more AI invocation today
type CheckUsageUseCase struct {
	tracker  QuotaTracker
	resolver IdentityResolver
	logger   logger.Interface
}

func NewCheckUsageUseCase(tracker QuotaTracker, resolver IdentityResolver, logger logger.Interface) *CheckUsageUseCase {
	return &CheckUsageUseCase{
		tracker:  tracker,
		resolver: resolver,
		logger:   logger,
	}
}

func (uc *CheckUsageUseCase) Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
	identity, err := uc.resolver.Resolve(req)
	if err != nil {
		uc.logger.Warnw("invalid identity for usage check",
			"identity_type", req.IdentityType,
			"error", err,
		)
		return nil, err
	}

	status, err := uc.tracker.CheckUsage(ctx, identity)
	if err != nil {
		uc.logger.Errorw("failed to check usage",
			"identity", identity.Key(),
			"identity_type", identity.Type(),
			"error", err,
		)
		return nil, toAppError(err, status)
	}

	uc.logger.Debugw("usage checked",
		"identity", identity.Key(),
		"identity_type", identity.Type(),
		"remaining", status.RemainingCount,
	)

	return dto.ToUsageStatusResponse(status), nil
}
