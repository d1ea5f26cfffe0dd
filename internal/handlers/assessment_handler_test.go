package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSubmissionService struct {
	submitErr error
	resultErr error
	result    *services.SubmissionResult
}

func (f *fakeSubmissionService) Submit(ctx context.Context, assessmentID, userID string, responses []services.ResponseInput) (*services.SubmissionResult, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.result, nil
}

func (f *fakeSubmissionService) GetResult(ctx context.Context, assessmentID string, userID *string) (*services.ResultResponse, error) {
	if f.resultErr != nil {
		return nil, f.resultErr
	}
	return &services.ResultResponse{AssessmentID: assessmentID, Score: 50, Total: 100}, nil
}

func newSubmitRouter(submission *fakeSubmissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := NewAssessmentHandler(nil, submission, nil, logger)

	router := gin.New()
	router.POST("/api/assessments/:assessmentId/submit", handler.Submit)
	router.GET("/api/assessments/:assessmentId/results", handler.GetResults)
	return router
}

func postSubmit(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/assessments/a1/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmit_ErrorContract(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"already submitted", services.ErrAlreadySubmitted, http.StatusBadRequest, "Assessment already submitted"},
		{"incomplete", services.ErrIncompleteSubmission, http.StatusBadRequest, "All questions must be answered before submission"},
		{"unanswered", services.ErrUnansweredQuestion, http.StatusBadRequest, "Each question must have an answer before submission"},
		{"assessment missing", services.ErrAssessmentNotFound, http.StatusBadRequest, "Assessment not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSubmitRouter(&fakeSubmissionService{submitErr: tt.err})

			w := postSubmit(router, `{"userId":"u1","responses":[{"questionId":"q1","answerText":"c1"}]}`)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Error)
		})
	}
}

func TestSubmit_SuccessEnvelope(t *testing.T) {
	router := newSubmitRouter(&fakeSubmissionService{
		result: &services.SubmissionResult{ResultID: "r1", Score: 100, Total: 100},
	})

	w := postSubmit(router, `{"userId":"u1","responses":[{"questionId":"q1","answerText":"c1"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Assessment submitted successfully", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["score"])
	assert.Equal(t, float64(100), data["total"])
}

type fakeAssessmentService struct {
	gotPage  int
	gotLimit int
}

func (f *fakeAssessmentService) Create(ctx context.Context, req *services.CreateAssessmentRequest, createdByID string) (*models.Assessment, error) {
	return nil, nil
}

func (f *fakeAssessmentService) Get(ctx context.Context, id string) (*services.AssessmentView, error) {
	return nil, nil
}

func (f *fakeAssessmentService) AddQuestions(ctx context.Context, assessmentID string, questions []services.CreateQuestionRequest) (*services.AddQuestionsResult, error) {
	return nil, nil
}

func (f *fakeAssessmentService) ListQuestions(ctx context.Context, assessmentID string, page, limit int) (*services.QuestionPage, error) {
	f.gotPage = page
	f.gotLimit = limit
	return &services.QuestionPage{Page: page, Limit: limit}, nil
}

// The candidate UI fetches one question per page; an omitted limit must
// default to 1, not a larger page size.
func TestListQuestions_DefaultsToOnePerPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assessmentService := &fakeAssessmentService{}
	handler := NewAssessmentHandler(assessmentService, nil, nil, logger)

	router := gin.New()
	router.GET("/api/assessments/:assessmentId/questions", handler.ListQuestions)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/a1/questions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, assessmentService.gotPage)
	assert.Equal(t, 1, assessmentService.gotLimit)
}

func TestGetResults_NotFoundContract(t *testing.T) {
	router := newSubmitRouter(&fakeSubmissionService{resultErr: services.ErrResultNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/assessments/a1/results", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Results not found", body.Error)
}
