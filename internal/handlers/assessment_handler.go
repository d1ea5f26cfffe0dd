package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
	submissionService services.SubmissionService
	exportService     services.ExportService
}

// SubmitRequest is the submission payload. UserID, when present, overrides
// the token subject; existing clients submit on behalf of the locally stored
// profile id.
type SubmitRequest struct {
	UserID    string                   `json:"userId"`
	Responses []services.ResponseInput `json:"responses"`
}

type AddQuestionsRequest struct {
	Questions []services.CreateQuestionRequest `json:"questions"`
}

func NewAssessmentHandler(
	assessmentService services.AssessmentService,
	submissionService services.SubmissionService,
	exportService services.ExportService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
		submissionService: submissionService,
		exportService:     exportService,
	}
}

func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	assessment, err := h.assessmentService.Create(c.Request.Context(), &req, AuthUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Assessment created", assessment)
}

func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	assessmentID := h.ParseStringIDParam(c, "assessmentId")
	if assessmentID == "" {
		return
	}

	assessment, err := h.assessmentService.Get(c.Request.Context(), assessmentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", assessment)
}

func (h *AssessmentHandler) AddQuestions(c *gin.Context) {
	assessmentID := h.ParseStringIDParam(c, "assessmentId")
	if assessmentID == "" {
		return
	}

	var req AddQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	result, err := h.assessmentService.AddQuestions(c.Request.Context(), assessmentID, req.Questions)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Questions added", result)
}

func (h *AssessmentHandler) ListQuestions(c *gin.Context) {
	assessmentID := h.ParseStringIDParam(c, "assessmentId")
	if assessmentID == "" {
		return
	}

	// The candidate UI pages one question at a time; omitted limit means 1.
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1"))

	result, err := h.assessmentService.ListQuestions(c.Request.Context(), assessmentID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", result)
}

// Submit grades the full response set. Every rejection here is a 400 with
// one of the fixed messages; clients branch on the message string.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	assessmentID := h.ParseStringIDParam(c, "assessmentId")
	if assessmentID == "" {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = AuthUserID(c)
	}

	result, err := h.submissionService.Submit(c.Request.Context(), assessmentID, userID, req.Responses)
	if err != nil {
		h.handleSubmitError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Assessment submitted successfully", result)
}

// handleSubmitError flattens all submit rejections to 400 regardless of
// their usual classification.
func (h *AssessmentHandler) handleSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadySubmitted),
		errors.Is(err, services.ErrIncompleteSubmission),
		errors.Is(err, services.ErrUnansweredQuestion),
		errors.Is(err, services.ErrAssessmentNotFound),
		services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, clientMessage(err), err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func (h *AssessmentHandler) GetResults(c *gin.Context) {
	assessmentID := h.ParseStringIDParam(c, "assessmentId")
	if assessmentID == "" {
		return
	}

	var userID *string
	if v := c.Query("userId"); v != "" {
		userID = &v
	}

	result, err := h.submissionService.GetResult(c.Request.Context(), assessmentID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "", result)
}

func (h *AssessmentHandler) ExportResults(c *gin.Context) {
	assessmentID := h.ParseStringIDParam(c, "assessmentId")
	if assessmentID == "" {
		return
	}

	data, err := h.exportService.ExportAssessmentResults(c.Request.Context(), assessmentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("results-%s-%s.xlsx", assessmentID, time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
