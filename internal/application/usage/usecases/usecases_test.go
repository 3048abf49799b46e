package usecases

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

const testGuestID = "6f1c2a34-8b5d-4e7f-9a10-2b3c4d5e6f70"

func newTestTracker(t *testing.T) *usage.Tracker {
	t.Helper()
	limits, err := usage.NewLimits(usage.PresetStandard, 0, 0)
	require.NoError(t, err)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tracker, err := usage.NewTracker(usage.NewMemoryStore(), limits, usage.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return tracker
}

func guestRequest() dto.IdentityRequest {
	return dto.IdentityRequest{IdentityKey: testGuestID, IdentityType: "guest"}
}

func TestIdentityResolver_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		strict  bool
		req     dto.IdentityRequest
		wantErr bool
	}{
		{"guest uuid", true, guestRequest(), false},
		{"user id", true, dto.IdentityRequest{IdentityKey: "user-42", IdentityType: "user"}, false},
		{"guest non uuid strict", true, dto.IdentityRequest{IdentityKey: "abc", IdentityType: "guest"}, true},
		{"guest non uuid relaxed", false, dto.IdentityRequest{IdentityKey: "abc", IdentityType: "guest"}, false},
		{"unknown type", true, dto.IdentityRequest{IdentityKey: "abc", IdentityType: "robot"}, true},
		{"empty key", true, dto.IdentityRequest{IdentityKey: "", IdentityType: "user"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := NewIdentityResolver(tt.strict).Resolve(tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.IdentityKey, identity.Key())
			assert.Equal(t, tt.req.IdentityType, identity.Type().String())
		})
	}
}

func TestCheckUsageUseCase_FreshGuest(t *testing.T) {
	uc := NewCheckUsageUseCase(newTestTracker(t), NewIdentityResolver(true), logger.NewNopLogger())

	resp, err := uc.Execute(context.Background(), guestRequest())

	require.NoError(t, err)
	assert.True(t, resp.HasRemaining)
	assert.Equal(t, 5, resp.RemainingCount)
	assert.Equal(t, 5, resp.Limit)
	assert.Equal(t, "guest", resp.IdentityType)
	assert.Nil(t, resp.ResetsAt)
}

func TestRecordUsageUseCase_CountsDown(t *testing.T) {
	tracker := newTestTracker(t)
	record := NewRecordUsageUseCase(tracker, NewIdentityResolver(true), logger.NewNopLogger())
	check := NewCheckUsageUseCase(tracker, NewIdentityResolver(true), logger.NewNopLogger())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := record.Execute(ctx, guestRequest())
		require.NoError(t, err)
	}

	resp, err := check.Execute(ctx, guestRequest())
	require.NoError(t, err)
	assert.True(t, resp.HasRemaining)
	assert.Equal(t, 1, resp.RemainingCount)
	assert.Equal(t, int64(4), resp.Used)
}

func TestConsumeUsageUseCase_ExhaustedReturnsTooManyRequests(t *testing.T) {
	uc := NewConsumeUsageUseCase(newTestTracker(t), NewIdentityResolver(true), logger.NewNopLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		resp, err := uc.Execute(ctx, guestRequest())
		require.NoError(t, err)
		assert.Equal(t, 4-i, resp.RemainingCount)
	}

	resp, err := uc.Execute(ctx, guestRequest())
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.IsTooManyRequestsError(err))

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 429, appErr.Code)
	assert.Contains(t, appErr.Message, "Sign up")
	assert.Equal(t, "5 of 5 used", appErr.Details)
}

func TestConsumeUsageUseCase_UserMessageMentionsReset(t *testing.T) {
	uc := NewConsumeUsageUseCase(newTestTracker(t), NewIdentityResolver(true), logger.NewNopLogger())
	ctx := context.Background()
	req := dto.IdentityRequest{IdentityKey: "user-7", IdentityType: "user"}

	for i := 0; i < 10; i++ {
		_, err := uc.Execute(ctx, req)
		require.NoError(t, err)
	}

	_, err := uc.Execute(ctx, req)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Message, "Try again tomorrow")
	assert.Contains(t, appErr.Details, "resets at 2026-03-11T00:00:00Z")
}

func TestConsumeUsageUseCase_LogsLimitReached(t *testing.T) {
	tracker := new(mockQuotaTracker)
	log := new(mockLogger)
	identity, err := usage.NewGuestIdentity(testGuestID, true)
	require.NoError(t, err)

	exhausted := &usage.Status{Identity: identity, Limit: 5, Used: 5}
	tracker.On("ConsumeUsage", mock.Anything, identity).Return(exhausted, usage.ErrQuotaExceeded)
	log.On("Infow", "usage limit reached", mock.Anything).Return()

	uc := NewConsumeUsageUseCase(tracker, NewIdentityResolver(true), log)
	_, err = uc.Execute(context.Background(), guestRequest())

	assert.True(t, errors.IsTooManyRequestsError(err))
	tracker.AssertExpectations(t)
	log.AssertExpectations(t)
}

func TestRecordUsageUseCase_StoreFailurePropagates(t *testing.T) {
	tracker := new(mockQuotaTracker)
	log := new(mockLogger)
	storeErr := stderrors.New("connection refused")

	tracker.On("RecordUsage", mock.Anything, mock.AnythingOfType("usage.Identity")).Return(nil, storeErr)
	log.On("Errorw", "failed to record usage", mock.Anything).Return()

	uc := NewRecordUsageUseCase(tracker, NewIdentityResolver(true), log)
	resp, err := uc.Execute(context.Background(), guestRequest())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, errors.IsAppError(err))
	log.AssertExpectations(t)
}

func TestCheckUsageUseCase_InvalidIdentityNeverReachesTracker(t *testing.T) {
	tracker := new(mockQuotaTracker)
	log := new(mockLogger)
	log.On("Warnw", "invalid identity for usage check", mock.Anything).Return()

	uc := NewCheckUsageUseCase(tracker, NewIdentityResolver(true), log)
	_, err := uc.Execute(context.Background(), dto.IdentityRequest{IdentityKey: "nope", IdentityType: "guest"})

	assert.True(t, errors.IsValidationError(err))
	tracker.AssertNotCalled(t, "CheckUsage", mock.Anything, mock.Anything)
}

func TestResetUsageUseCase_RestoresFullQuota(t *testing.T) {
	tracker := newTestTracker(t)
	consume := NewConsumeUsageUseCase(tracker, NewIdentityResolver(true), logger.NewNopLogger())
	reset := NewResetUsageUseCase(tracker, NewIdentityResolver(true), logger.NewNopLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := consume.Execute(ctx, guestRequest())
		require.NoError(t, err)
	}

	resp, err := reset.Execute(ctx, guestRequest())
	require.NoError(t, err)
	assert.True(t, resp.HasRemaining)
	assert.Equal(t, 5, resp.RemainingCount)
	assert.Equal(t, int64(0), resp.Used)
}
