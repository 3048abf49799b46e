package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
)

// QuotaTracker is the subset of usage.Tracker the use cases depend on.
type QuotaTracker interface {
	CheckUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error)
	RecordUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error)
	ConsumeUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error)
	ResetUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error)
	Limits() usage.Limits
}

// IdentityResolver turns a request into a domain identity.
type IdentityResolver struct {
	strictGuestIDs bool
}

func NewIdentityResolver(strictGuestIDs bool) IdentityResolver {
	return IdentityResolver{strictGuestIDs: strictGuestIDs}
}

// Resolve validates the request and builds the identity it names.
func (r IdentityResolver) Resolve(req dto.IdentityRequest) (usage.Identity, error) {
	typ, err := usage.ParseIdentityType(req.IdentityType)
	if err != nil {
		return usage.Identity{}, toAppError(err, nil)
	}

	var identity usage.Identity
	if typ == usage.IdentityTypeGuest {
		identity, err = usage.NewGuestIdentity(req.IdentityKey, r.strictGuestIDs)
	} else {
		identity, err = usage.NewUserIdentity(req.IdentityKey)
	}
	if err != nil {
		return usage.Identity{}, toAppError(err, nil)
	}
	return identity, nil
}

// toAppError maps domain errors onto the application error taxonomy. Anything
// unrecognized is a store failure and is returned unchanged.
func toAppError(err error, status *usage.Status) error {
	switch {
	case stderrors.Is(err, usage.ErrEmptyIdentity),
		stderrors.Is(err, usage.ErrInvalidIdentityType),
		stderrors.Is(err, usage.ErrInvalidGuestID):
		return errors.NewValidationError(err.Error())
	case stderrors.Is(err, usage.ErrQuotaExceeded):
		return errors.NewTooManyRequestsError(quotaExceededMessage(status), quotaExceededDetails(status))
	default:
		return err
	}
}

func quotaExceededMessage(status *usage.Status) string {
	if status != nil && status.Identity.IsGuest() {
		return "Daily AI request limit reached. Sign up for more requests."
	}
	return "Daily AI request limit reached. Try again tomorrow."
}

func quotaExceededDetails(status *usage.Status) string {
	if status == nil {
		return ""
	}
	details := fmt.Sprintf("%d of %d used", status.Used, status.Limit)
	if status.ResetsAt != nil {
		details += fmt.Sprintf("; resets at %s", status.ResetsAt.Format(time.RFC3339))
	}
	return details
}
