package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/application/usage/dto"
	"github.com/boomerhub/boomerhub/internal/shared/constants"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/utils"
)

// AdminUsageHandler exposes operator actions on any identity's quota.
type AdminUsageHandler struct {
	checkUsageUC checkUsageUseCase
	resetUsageUC resetUsageUseCase
	logger       logger.Interface
}

func NewAdminUsageHandler(checkUsageUC checkUsageUseCase, resetUsageUC resetUsageUseCase, logger logger.Interface) *AdminUsageHandler {
	return &AdminUsageHandler{
		checkUsageUC: checkUsageUC,
		resetUsageUC: resetUsageUC,
		logger:       logger,
	}
}

// GetUsage handles GET /admin/usage/:identity?type=guest|user
func (h *AdminUsageHandler) GetUsage(c *gin.Context) {
	req, ok := adminIdentityRequest(c)
	if !ok {
		return
	}

	result, err := h.checkUsageUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ResetUsage handles DELETE /admin/usage/:identity?type=guest|user
func (h *AdminUsageHandler) ResetUsage(c *gin.Context) {
	req, ok := adminIdentityRequest(c)
	if !ok {
		return
	}

	operator, _ := c.Get(constants.ContextKeyUserID)
	h.logger.Infow("admin usage reset requested",
		"operator", operator,
		"identity", req.IdentityKey,
		"identity_type", req.IdentityType,
	)

	result, err := h.resetUsageUC.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "usage reset", result)
}

func adminIdentityRequest(c *gin.Context) (dto.IdentityRequest, bool) {
	key := c.Param("identity")
	if err := utils.ValidateNonEmpty("identity", key); err != nil {
		utils.ErrorResponseWithError(c, err)
		return dto.IdentityRequest{}, false
	}
	return dto.IdentityRequest{
		IdentityKey:  key,
		IdentityType: c.DefaultQuery("type", "guest"),
	}, true
}
