package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/handlers/testutil"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockIdentityUC struct {
	result *dto.UsageStatusResponse
	err    error
	got    dto.IdentityRequest
}

func (m *mockIdentityUC) Execute(ctx context.Context, req dto.IdentityRequest) (*dto.UsageStatusResponse, error) {
	m.got = req
	return m.result, m.err
}

type mockConsumeUC struct {
	result *dto.UsageStatusResponse
	err    error
	got    usage.Identity
}

func (m *mockConsumeUC) ExecuteFor(ctx context.Context, identity usage.Identity) (*dto.UsageStatusResponse, error) {
	m.got = identity
	return m.result, m.err
}

// =====================================================================
// Test helpers
// =====================================================================

const testGuestID = "4f7d2c1e-8a3b-4c5d-9e6f-0a1b2c3d4e5f"

func guestIdentity(t *testing.T) usage.Identity {
	t.Helper()
	identity, err := usage.NewGuestIdentity(testGuestID, true)
	require.NoError(t, err)
	return identity
}

func statusResponse(remaining, limit int, used int64) *dto.UsageStatusResponse {
	return &dto.UsageStatusResponse{
		Identity:       testGuestID,
		IdentityType:   "guest",
		HasRemaining:   remaining > 0,
		RemainingCount: remaining,
		Limit:          limit,
		Used:           used,
	}
}

func newTestUsageHandler(check, record *mockIdentityUC, consume *mockConsumeUC) *UsageHandler {
	return NewUsageHandler(check, record, consume, usage.Limits{Guest: 5, User: 10}, testutil.NewMockLogger())
}

// =====================================================================
// TestUsageHandler_CheckUsage
// =====================================================================

func TestUsageHandler_CheckUsage_Success(t *testing.T) {
	checkUC := &mockIdentityUC{result: statusResponse(5, 5, 0)}
	handler := newTestUsageHandler(checkUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/usage", nil)
	testutil.SetIdentityContext(c, guestIdentity(t))

	handler.CheckUsage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testGuestID, checkUC.got.IdentityKey)
	assert.Equal(t, "guest", checkUC.got.IdentityType)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var status dto.UsageStatusResponse
	require.NoError(t, json.Unmarshal(resp.Data, &status))
	assert.Equal(t, 5, status.RemainingCount)
	assert.True(t, status.HasRemaining)
}

func TestUsageHandler_CheckUsage_NoIdentity(t *testing.T) {
	handler := newTestUsageHandler(&mockIdentityUC{}, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/usage", nil)

	handler.CheckUsage(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsageHandler_CheckUsage_StoreFailure(t *testing.T) {
	checkUC := &mockIdentityUC{err: assert.AnError}
	handler := newTestUsageHandler(checkUC, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/usage", nil)
	testutil.SetIdentityContext(c, guestIdentity(t))

	handler.CheckUsage(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
}

// =====================================================================
// TestUsageHandler_RecordUsage / ConsumeUsage
// =====================================================================

func TestUsageHandler_RecordUsage_Success(t *testing.T) {
	recordUC := &mockIdentityUC{result: statusResponse(4, 5, 1)}
	handler := newTestUsageHandler(nil, recordUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/usage/record", nil)
	testutil.SetIdentityContext(c, guestIdentity(t))

	handler.RecordUsage(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "usage recorded", resp.Message)
}

func TestUsageHandler_ConsumeUsage_Success(t *testing.T) {
	consumeUC := &mockConsumeUC{result: statusResponse(3, 5, 2)}
	handler := newTestUsageHandler(nil, nil, consumeUC)

	identity := guestIdentity(t)
	c, w := testutil.NewTestContext(http.MethodPost, "/usage/consume", nil)
	testutil.SetIdentityContext(c, identity)

	handler.ConsumeUsage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identity, consumeUC.got)
}

func TestUsageHandler_ConsumeUsage_Exhausted(t *testing.T) {
	consumeUC := &mockConsumeUC{err: errors.NewTooManyRequestsError("Free limit reached", "5 of 5 used")}
	handler := newTestUsageHandler(nil, nil, consumeUC)

	c, w := testutil.NewTestContext(http.MethodPost, "/usage/consume", nil)
	testutil.SetIdentityContext(c, guestIdentity(t))

	handler.ConsumeUsage(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeTooManyRequests), resp.Error.Type)
	assert.Equal(t, "5 of 5 used", resp.Error.Details)
}

// =====================================================================
// TestUsageHandler_GetLimits / MintGuestID
// =====================================================================

func TestUsageHandler_GetLimits(t *testing.T) {
	handler := newTestUsageHandler(nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodGet, "/usage/limits", nil)

	handler.GetLimits(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var limits dto.LimitsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &limits))
	assert.Equal(t, 5, limits.GuestLimit)
	assert.Equal(t, 10, limits.UserLimit)
}

func TestUsageHandler_MintGuestID(t *testing.T) {
	handler := newTestUsageHandler(nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/guests", nil)

	handler.MintGuestID(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var guest dto.GuestIDResponse
	require.NoError(t, json.Unmarshal(resp.Data, &guest))

	_, err := usage.NewGuestIdentity(guest.GuestID, true)
	assert.NoError(t, err)
}
