package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/commquest/commquest-backend/internal/cache"
	"github.com/commquest/commquest-backend/internal/events"
	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"github.com/commquest/commquest-backend/internal/utils"
	"gorm.io/datatypes"
)

// assessmentSnapshotTTL bounds how stale the cached question set may get.
// Question additions delete the key eagerly; the TTL is the backstop.
const assessmentSnapshotTTL = 5 * time.Minute

// SubmissionService is the one-shot submit-and-grade state machine plus
// result retrieval.
type SubmissionService interface {
	Submit(ctx context.Context, assessmentID, userID string, responses []ResponseInput) (*SubmissionResult, error)
	GetResult(ctx context.Context, assessmentID string, userID *string) (*ResultResponse, error)
}

type ResponseInput struct {
	QuestionID     string  `json:"questionId" validate:"required"`
	AnswerText     *string `json:"answerText"`
	AnswerMediaURL *string `json:"answerMediaUrl"`
}

func (in ResponseInput) answered() bool {
	if in.AnswerText != nil && *in.AnswerText != "" {
		return true
	}
	return in.AnswerMediaURL != nil && *in.AnswerMediaURL != ""
}

type SubmissionResult struct {
	ResultID    string               `json:"resultId"`
	Score       float64              `json:"score"`
	Total       int                  `json:"total"`
	Details     models.ResultDetails `json:"details"`
	SubmittedAt time.Time            `json:"submittedAt"`
}

type ResultResponse struct {
	UserID       string         `json:"userId"`
	AssessmentID string         `json:"assessmentId"`
	Score        float64        `json:"score"`
	Total        int            `json:"total"`
	Details      datatypes.JSON `json:"details"`
	SubmittedAt  time.Time      `json:"submittedAt"`
}

type submissionService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewSubmissionService(repo repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger utils.Logger) SubmissionService {
	return &submissionService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit runs the four precondition gates in order, grades the response set,
// and persists everything in one transaction. No write happens before every
// gate passes, so a failed submission leaves no partial state behind.
func (s *submissionService) Submit(ctx context.Context, assessmentID, userID string, responses []ResponseInput) (*SubmissionResult, error) {
	s.logger.Info("Submitting assessment",
		"assessment_id", assessmentID,
		"user_id", userID,
		"responses_count", len(responses))

	// Gate 1: the assessment, with its full question and choice set, exists.
	assessment, err := s.assessmentSnapshot(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	// Gate 2: no prior result for this (user, assessment). The storage
	// constraint re-checks this atomically at insert time; this pre-check
	// just fails fast for the common sequential case.
	exists, err := s.repo.Result().ExistsByUserAndAssessment(ctx, userID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing result: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	// Gate 3: completeness. A count comparison, not a per-question presence
	// check, like the deployed contract.
	if len(responses) != len(assessment.Questions) {
		return nil, ErrIncompleteSubmission
	}

	// Gate 4: every response carries some content.
	for _, input := range responses {
		if !input.answered() {
			return nil, ErrUnansweredQuestion
		}
	}

	outcome := gradeSubmission(assessment.Questions, responses, userID)
	for _, id := range outcome.unmatched {
		s.logger.Warn("Skipping response for unknown question",
			"assessment_id", assessmentID,
			"question_id", id)
	}

	details := models.ResultDetails{PerQuestion: outcome.details}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result details: %w", err)
	}

	result := &models.Result{
		UserID:       userID,
		AssessmentID: assessmentID,
		Score:        computeScore(outcome.points, len(assessment.Questions)),
		Total:        100,
		Details:      datatypes.JSON(detailsJSON),
		SubmittedAt:  time.Now(),
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for i := range outcome.responses {
			if err := txRepo.Response().Upsert(ctx, &outcome.responses[i]); err != nil {
				return fmt.Errorf("failed to record response for question %s: %w", outcome.responses[i].QuestionID, err)
			}
		}
		return txRepo.Result().Create(ctx, result)
	})
	if err != nil {
		// The losing side of a concurrent duplicate insert gets the same
		// conflict as the pre-check, never a raw storage error.
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	s.logger.Info("Assessment submitted",
		"assessment_id", assessmentID,
		"user_id", userID,
		"result_id", result.ID,
		"score", result.Score)

	// Event delivery is best effort; the result is already committed.
	gradingEvents := []*events.GradingEvent{
		events.NewAssessmentSubmittedEvent(userID, assessmentID),
		events.NewResultCreatedEvent(userID, assessmentID, result.ID, result.Score, result.Total),
	}
	for _, event := range gradingEvents {
		if err := s.publisher.PublishGradingEvent(ctx, event); err != nil {
			s.logger.Error("Failed to publish grading event",
				"event_type", event.Type, "result_id", result.ID, "error", err)
		}
	}

	return &SubmissionResult{
		ResultID:    result.ID,
		Score:       result.Score,
		Total:       result.Total,
		Details:     details,
		SubmittedAt: result.SubmittedAt,
	}, nil
}

func (s *submissionService) GetResult(ctx context.Context, assessmentID string, userID *string) (*ResultResponse, error) {
	result, err := s.repo.Result().FindFirst(ctx, assessmentID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	return &ResultResponse{
		UserID:       result.UserID,
		AssessmentID: result.AssessmentID,
		Score:        result.Score,
		Total:        result.Total,
		Details:      result.Details,
		SubmittedAt:  result.SubmittedAt,
	}, nil
}

// assessmentSnapshot loads the assessment with questions and choices, going
// through the cache first. Cache failures fall through to storage.
func (s *submissionService) assessmentSnapshot(ctx context.Context, assessmentID string) (*models.Assessment, error) {
	key := assessmentSnapshotKey(assessmentID)

	var cached models.Assessment
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	assessment, err := s.repo.Assessment().GetByIDWithQuestions(ctx, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := s.cache.Set(ctx, key, assessment, assessmentSnapshotTTL); err != nil {
		s.logger.Warn("Failed to cache assessment snapshot", "assessment_id", assessmentID, "error", err)
	}

	return assessment, nil
}

func assessmentSnapshotKey(assessmentID string) string {
	return "commquest:assessment:questions:" + assessmentID
}
