package usecases

import (
	"context"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// ResetUsageUseCase clears an identity's count. Operator use only.
type ResetUsageUseCase struct {
	tracker  QuotaTracker
	resolver IdentityResolver
	logger   logger.Interface
}

func NewResetUsageUseCase(tracker QuotaTracker, resolver IdentityResolver, logger logger.Interface) *ResetUsageUseCase {
	return &ResetUsageUseCase{
		tracker:  tracker,
		resolver: resolver,
		logger:   logger,
	}
}

func (uc *ResetUsageUseCase) Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
	identity, err := uc.resolver.Resolve(req)
	if err != nil {
		return nil, err
	}

	status, err := uc.tracker.ResetUsage(ctx, identity)
	if err != nil {
		uc.logger.Errorw("failed to reset usage",
			"identity", identity.Key(),
			"identity_type", identity.Type(),
			"error", err,
		)
		return nil, toAppError(err, status)
	}

	uc.logger.Warnw("usage reset by operator",
		"identity", identity.Key(),
		"identity_type", identity.Type(),
	)

	return dto.ToUsageStatusResponse(status), nil
}
