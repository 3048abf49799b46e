package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boomerhub/boomerhub/internal/application/aitool/dto"
	"github.com/boomerhub/boomerhub/internal/application/aitool/usecases"
	"github.com/boomerhub/boomerhub/internal/interfaces/http/middleware"
	"github.com/boomerhub/boomerhub/internal/shared/constants"
	"github.com/boomerhub/boomerhub/internal/shared/errors"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
	"github.com/boomerhub/boomerhub/internal/shared/utils"
)

type AIToolHandler struct {
	runToolUC runToolUseCase
	logger    logger.Interface
}

func NewAIToolHandler(runToolUC runToolUseCase, logger logger.Interface) *AIToolHandler {
	return &AIToolHandler{
		runToolUC: runToolUC,
		logger:    logger,
	}
}

// ListTools handles GET /ai/tools
func (h *AIToolHandler) ListTools(c *gin.Context) {
	tools := usecases.Tools()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.String())
	}
	utils.SuccessResponse(c, http.StatusOK, "", &dto.ToolListResponse{Tools: names})
}

// RunTool handles POST /ai/tools/:tool
func (h *AIToolHandler) RunTool(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError(constants.ErrMsgIdentityRequired))
		return
	}

	tool, err := usecases.ParseTool(c.Param("tool"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.RunToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for AI tool", "tool", tool, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.runToolUC.Execute(c.Request.Context(), identity, tool, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
