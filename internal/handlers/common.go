package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// SuccessResponse is the fixed success envelope: clients depend on the
// success/data/message shape, so it never changes.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the fixed error envelope. The error string is the
// client-facing message, exact casing included.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common response and logging functionality for all
// handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.logger.LogError(err, message,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", statusCode)
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// HandleServiceError maps service-layer errors to HTTP responses with their
// fixed client messages.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	message := clientMessage(err)

	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, message, err)
	// Conflicts are 400, not 409. The deployed clients match on that status.
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusBadRequest, message, err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, message, err)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusUnauthorized, message, err)
	case errors.Is(err, services.ErrForbidden):
		h.RespondWithError(c, http.StatusForbidden, message, err)
	case errors.Is(err, services.ErrGeneratorNotConfigured):
		h.RespondWithError(c, http.StatusServiceUnavailable, message, err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// clientMessage returns the exact message the API contract fixes for each
// known error. Unknown errors fall through to their own text.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrAlreadySubmitted):
		return "Assessment already submitted"
	case errors.Is(err, services.ErrIncompleteSubmission):
		return "All questions must be answered before submission"
	case errors.Is(err, services.ErrUnansweredQuestion):
		return "Each question must have an answer before submission"
	case errors.Is(err, services.ErrQuestionNotFound):
		return "Question not found"
	case errors.Is(err, services.ErrResultNotFound):
		return "Results not found"
	case errors.Is(err, services.ErrAssessmentNotFound):
		return "Assessment not found"
	case errors.Is(err, services.ErrModuleNotFound):
		return "Module not found"
	case errors.Is(err, services.ErrSectionNotFound):
		return "Section not found"
	case errors.Is(err, services.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, services.ErrEmailTaken):
		return "User with this email already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, services.ErrPasswordMismatch):
		return "Current password is incorrect"
	case errors.Is(err, services.ErrGeneratorNotConfigured):
		return "Question generation is not configured"
	case errors.Is(err, services.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, services.ErrUnauthorized):
		return "Unauthorized"
	default:
		return err.Error()
	}
}

// ===== HELPERS =====

func (h *BaseHandler) ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, nil)
		return ""
	}
	return idStr
}
