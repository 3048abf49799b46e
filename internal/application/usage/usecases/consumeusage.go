package usecases

import (
	"context"
	stderrors "errors"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// ConsumeUsageUseCase checks the quota and records one invocation when some is left.
// Exhaustion is reported as a too_many_requests AppError.
type ConsumeUsageUseCase struct {
	tracker  QuotaTracker
	resolver IdentityResolver
	logger   logger.Interface
}

func NewConsumeUsageUseCase(tracker QuotaTracker, resolver IdentityResolver, logger logger.Interface) *ConsumeUsageUseCase {
	return &ConsumeUsageUseCase{
		tracker:  tracker,
		resolver: resolver,
		logger:   logger,
	}
}

func (uc *ConsumeUsageUseCase) Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
	identity, err := uc.resolver.Resolve(req)
	if err != nil {
		uc.logger.Warnw("invalid identity for usage consume",
			"identity_type", req.IdentityType,
			"error", err,
		)
		return nil, err
	}

	return uc.ExecuteFor(ctx, identity)
}

// ExecuteFor consumes one invocation for an already resolved identity.
func (uc *ConsumeUsageUseCase) ExecuteFor(ctx context.Context, identity usage.Identity) (*dto.UsageStatusResponse, error) {
	status, err := uc.tracker.ConsumeUsage(ctx, identity)
	if stderrors.Is(err, usage.ErrQuotaExceeded) {
		uc.logger.Infow("usage limit reached",
			"identity", identity.Key(),
			"identity_type", identity.Type(),
			"limit", status.Limit,
		)
		return nil, toAppError(err, status)
	}
	if err != nil {
		uc.logger.Errorw("failed to consume usage",
			"identity", identity.Key(),
			"identity_type", identity.Type(),
			"error", err,
		)
		return nil, toAppError(err, status)
	}

	uc.logger.Infow("usage consumed",
		"identity", identity.Key(),
		"identity_type", identity.Type(),
		"remaining", status.RemainingCount,
	)

	return dto.ToUsageStatusResponse(status), nil
}
