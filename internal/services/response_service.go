package services

import (
	"context"
	"fmt"
	"time"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"github.com/commquest/commquest-backend/internal/utils"
)

// ResponseService records candidate answers as they work through an
// assessment, independent of submission state.
type ResponseService interface {
	Save(ctx context.Context, req *SaveResponseRequest) (*SaveResponseResult, error)
	// List returns the user's responses, newest first, optionally narrowed to
	// one assessment's questions.
	List(ctx context.Context, userID, assessmentID string) ([]*ResponseView, error)
}

type SaveResponseRequest struct {
	UserID         string  `json:"userId"`
	QuestionID     string  `json:"questionId" validate:"required"`
	AnswerText     *string `json:"answerText"`
	AnswerMediaURL *string `json:"answerMediaUrl" validate:"omitempty,url"`
}

type SaveResponseResult struct {
	ResponseID string    `json:"responseId"`
	SavedAt    time.Time `json:"savedAt"`
}

type ResponseView struct {
	QuestionID     string    `json:"questionId"`
	AnswerText     *string   `json:"answerText"`
	AnswerMediaURL *string   `json:"answerMediaUrl"`
	IsCorrect      *bool     `json:"isCorrect"`
	RecordedAt     time.Time `json:"recordedAt"`
}

type responseService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewResponseService(repo repositories.Repository, logger utils.Logger) ResponseService {
	return &responseService{
		repo:   repo,
		logger: logger,
	}
}

// Save upserts the single response row for (user, question). Content is not
// validated for emptiness here; that only happens at submission. Saving is
// allowed even after a result exists for the containing assessment and never
// touches that result.
func (s *responseService) Save(ctx context.Context, req *SaveResponseRequest) (*SaveResponseResult, error) {
	if _, err := s.repo.Question().GetByID(ctx, req.QuestionID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	response := &models.Response{
		UserID:         req.UserID,
		QuestionID:     req.QuestionID,
		AnswerText:     req.AnswerText,
		AnswerMediaURL: req.AnswerMediaURL,
	}
	if err := s.repo.Response().Upsert(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	s.logger.Debug("Response saved",
		"user_id", req.UserID,
		"question_id", req.QuestionID,
		"response_id", response.ID)

	return &SaveResponseResult{
		ResponseID: response.ID,
		SavedAt:    response.RecordedAt,
	}, nil
}

func (s *responseService) List(ctx context.Context, userID, assessmentID string) ([]*ResponseView, error) {
	var questionIDs []string
	if assessmentID != "" {
		ids, err := s.repo.Question().GetIDsByAssessment(ctx, assessmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get assessment questions: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		questionIDs = ids
	}

	responses, err := s.repo.Response().List(ctx, userID, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	views := make([]*ResponseView, len(responses))
	for i, response := range responses {
		views[i] = &ResponseView{
			QuestionID:     response.QuestionID,
			AnswerText:     response.AnswerText,
			AnswerMediaURL: response.AnswerMediaURL,
			IsCorrect:      response.IsCorrect,
			RecordedAt:     response.RecordedAt,
		}
	}
	return views, nil
}
