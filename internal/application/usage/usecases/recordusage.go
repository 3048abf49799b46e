package usecases

import (
	"context"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// RecordUsageUseCase charges one invocation to an identity without enforcing the cap.
// Callers are expected to check first.
type RecordUsageUseCase struct {
	tracker  QuotaTracker
	resolver IdentityResolver
	logger   logger.Interface
}

func NewRecordUsageUseCase(tracker QuotaTracker, resolver IdentityResolver, logger logger.Interface) *RecordUsageUseCase {
	return &RecordUsageUseCase{
		tracker:  tracker,
		resolver: resolver,
		logger:   logger,
	}
}

func (uc *RecordUsageUseCase) Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
	identity, err := uc.resolver.Resolve(req)
	if err != nil {
		uc.logger.Warnw("invalid identity for usage record",
			"identity_type", req.IdentityType,
			"error", err,
		)
		return nil, err
	}

	status, err := uc.tracker.RecordUsage(ctx, identity)
	if err != nil {
		uc.logger.Errorw("failed to record usage",
			"identity", identity.Key(),
			"identity_type", identity.Type(),
			"error", err,
		)
		return nil, toAppError(err, status)
	}

	uc.logger.Infow("usage recorded",
		"identity", identity.Key(),
		"identity_type", identity.Type(),
		"used", status.Used,
		"limit", status.Limit,
	)

	return dto.ToUsageStatusResponse(status), nil
}
