package handlers

import (
	"net/http"

	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	BaseHandler
	generationService services.GenerationService
}

func NewAIHandler(generationService services.GenerationService, logger utils.Logger) *AIHandler {
	return &AIHandler{
		BaseHandler:       NewBaseHandler(logger),
		generationService: generationService,
	}
}

func (h *AIHandler) GenerateQuestions(c *gin.Context) {
	var req services.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	result, err := h.generationService.GenerateQuestions(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Questions generated", result)
}
