package handlers

import (
	"net/http"

	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
}

func NewResponseHandler(responseService services.ResponseService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
	}
}

func (h *ResponseHandler) SaveResponse(c *gin.Context) {
	var req services.SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	// A body userId overrides the token subject, same as submission.
	if req.UserID == "" {
		req.UserID = AuthUserID(c)
	}
	if req.QuestionID == "" {
		h.RespondWithError(c, http.StatusBadRequest, "questionId is required", nil)
		return
	}

	result, err := h.responseService.Save(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Response saved", result)
}

func (h *ResponseHandler) ListResponses(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = AuthUserID(c)
	}

	// Candidates may only read their own responses.
	if userID != AuthUserID(c) && !IsAdmin(c) {
		h.RespondWithError(c, http.StatusForbidden, "Forbidden", nil)
		return
	}

	responses, err := h.responseService.List(c.Request.Context(), userID, c.Query("assessmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", responses)
}
