package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/middleware"
	"github.com/boomerhub/boomerhub/internal/shared/constants"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/utils"
)

// UsageHandler serves quota queries and charges for the caller's own identity.
type UsageHandler struct {
	checkUsageUC   checkUsageUseCase
	recordUsageUC  recordUsageUseCase
	consumeUsageUC consumeUsageUseCase
	limits         usage.Limits
	logger         logger.Interface
}

func NewUsageHandler(
	checkUsageUC checkUsageUseCase,
	recordUsageUC recordUsageUseCase,
	consumeUsageUC consumeUsageUseCase,
	limits usage.Limits,
	logger logger.Interface,
) *UsageHandler {
	return &UsageHandler{
		checkUsageUC:   checkUsageUC,
		recordUsageUC:  recordUsageUC,
		consumeUsageUC: consumeUsageUC,
		limits:         limits,
		logger:         logger,
	}
}

// CheckUsage handles GET /usage
func (h *UsageHandler) CheckUsage(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	result, err := h.checkUsageUC.Execute(c.Request.Context(), identityRequest(identity))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RecordUsage handles POST /usage/record
func (h *UsageHandler) RecordUsage(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	result, err := h.recordUsageUC.Execute(c.Request.Context(), identityRequest(identity))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "usage recorded", result)
}

// ConsumeUsage handles POST /usage/consume. It answers 429 once the cap is reached.
func (h *UsageHandler) ConsumeUsage(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	result, err := h.consumeUsageUC.ExecuteFor(c.Request.Context(), identity)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "usage consumed", result)
}

// GetLimits handles GET /usage/limits
func (h *UsageHandler) GetLimits(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", &dto.LimitsResponse{
		GuestLimit: h.limits.Guest,
		UserLimit:  h.limits.User,
	})
}

// MintGuestID handles POST /guests
func (h *UsageHandler) MintGuestID(c *gin.Context) {
	guestID := usage.NewGuestID()
	h.logger.Debugw("guest id minted", "guest_id", guestID)
	utils.CreatedResponse(c, &dto.GuestIDResponse{GuestID: guestID}, "")
}

func (h *UsageHandler) identity(c *gin.Context) (usage.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		h.logger.Warnw("usage request without resolved identity", "path", c.FullPath())
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgIdentityRequired))
		return usage.Identity{}, false
	}
	return identity, true
}

func identityRequest(identity usage.Identity) dto.IdentityRequest {
	return dto.IdentityRequest{
		IdentityKey:  identity.Key(),
		IdentityType: identity.Type().String(),
	}
}
