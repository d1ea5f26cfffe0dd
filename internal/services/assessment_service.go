package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/commquest/commquest-backend/internal/cache"
	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"github.com/commquest/commquest-backend/internal/utils"
	"gorm.io/datatypes"
)

type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest, createdByID string) (*models.Assessment, error)
	Get(ctx context.Context, id string) (*AssessmentView, error)
	AddQuestions(ctx context.Context, assessmentID string, questions []CreateQuestionRequest) (*AddQuestionsResult, error)
	ListQuestions(ctx context.Context, assessmentID string, page, limit int) (*QuestionPage, error)
}

type CreateAssessmentRequest struct {
	SectionID       string                 `json:"sectionId" validate:"required"`
	Title           string                 `json:"title" validate:"required,min=1,max=200"`
	Description     string                 `json:"description" validate:"required"`
	Difficulty      models.DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	DurationSeconds int                    `json:"durationSeconds" validate:"required,min=1"`
}

type CreateChoiceRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreateQuestionRequest struct {
	Text             string                 `json:"text" validate:"required"`
	Type             models.QuestionType    `json:"type" validate:"required,question_type"`
	TimeLimitSeconds int                    `json:"timeLimitSeconds" validate:"omitempty,min=1"`
	Choices          []CreateChoiceRequest  `json:"choices" validate:"omitempty,dive"`
	Metadata         map[string]interface{} `json:"metadata"`
	Answer           *string                `json:"answer"`
}

type AddQuestionsResult struct {
	CreatedCount int `json:"createdCount"`
}

// AssessmentView is the candidate-facing projection of an assessment header.
type AssessmentView struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Difficulty      models.DifficultyLevel `json:"difficulty"`
	DurationSeconds int                    `json:"durationSeconds"`
	Section         SectionRef             `json:"section"`
}

type SectionRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// QuestionView strips answer keys and choice correctness; this is what
// candidates see before submitting.
type QuestionView struct {
	ID               string              `json:"id"`
	Text             string              `json:"text"`
	Type             models.QuestionType `json:"type"`
	TimeLimitSeconds int                 `json:"timeLimitSeconds"`
	Choices          []models.ChoiceView `json:"choices,omitempty"`
	Metadata         datatypes.JSON      `json:"metadata,omitempty"`
}

type QuestionPage struct {
	Items   []QuestionView `json:"items"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Total   int64          `json:"total"`
	Section SectionRef     `json:"section"`
}

type assessmentService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    utils.Logger
	validator *utils.Validator
}

func NewAssessmentService(repo repositories.Repository, cacheService cache.CacheService, logger utils.Logger, validator *utils.Validator) AssessmentService {
	return &assessmentService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest, createdByID string) (*models.Assessment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if _, err := s.repo.Catalog().GetSectionByID(ctx, req.SectionID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	assessment := &models.Assessment{
		SectionID:       req.SectionID,
		Title:           req.Title,
		Description:     req.Description,
		Difficulty:      req.Difficulty,
		DurationSeconds: req.DurationSeconds,
		CreatedByID:     createdByID,
	}
	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.logger.Info("Assessment created",
		"assessment_id", assessment.ID,
		"section_id", req.SectionID,
		"created_by", createdByID)

	created, err := s.repo.Assessment().GetByID(ctx, assessment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload assessment: %w", err)
	}
	return created, nil
}

func (s *assessmentService) Get(ctx context.Context, id string) (*AssessmentView, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	return &AssessmentView{
		ID:              assessment.ID,
		Title:           assessment.Title,
		Description:     assessment.Description,
		Difficulty:      assessment.Difficulty,
		DurationSeconds: assessment.DurationSeconds,
		Section: SectionRef{
			ID:    assessment.Section.ID,
			Title: assessment.Section.Title,
		},
	}, nil
}

// AddQuestions appends questions (and, for mcq, their choices) to an
// assessment. MCQ payloads with choices must mark exactly one choice correct;
// the schema does not enforce this, so creation is where the invariant is
// held.
func (s *assessmentService) AddQuestions(ctx context.Context, assessmentID string, questions []CreateQuestionRequest) (*AddQuestionsResult, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: at least one question is required", ErrValidationFailed)
	}

	exists, err := s.repo.Assessment().Exists(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assessment: %w", err)
	}
	if !exists {
		return nil, ErrAssessmentNotFound
	}

	for i := range questions {
		if err := s.validator.Validate(&questions[i]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		if err := validateChoiceSet(&questions[i]); err != nil {
			return nil, err
		}
	}

	createdCount := 0
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for i := range questions {
			question, err := buildQuestion(assessmentID, &questions[i])
			if err != nil {
				return err
			}
			if err := txRepo.Question().Create(ctx, question); err != nil {
				return fmt.Errorf("failed to create question: %w", err)
			}
			createdCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The submission path caches the question snapshot; drop it so new
	// questions are visible immediately.
	if err := s.cache.Delete(ctx, assessmentSnapshotKey(assessmentID)); err != nil {
		s.logger.Warn("Failed to invalidate assessment snapshot", "assessment_id", assessmentID, "error", err)
	}

	s.logger.Info("Questions added",
		"assessment_id", assessmentID,
		"created_count", createdCount)

	return &AddQuestionsResult{CreatedCount: createdCount}, nil
}

func (s *assessmentService) ListQuestions(ctx context.Context, assessmentID string, page, limit int) (*QuestionPage, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, assessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	questions, total, err := s.repo.Question().GetByAssessment(ctx, assessmentID, repositories.QuestionFilters{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	items := make([]QuestionView, len(questions))
	for i, question := range questions {
		view := QuestionView{
			ID:               question.ID,
			Text:             question.Text,
			Type:             question.Type,
			TimeLimitSeconds: question.TimeLimitSeconds,
			Metadata:         question.Metadata,
		}
		if len(question.Choices) > 0 {
			view.Choices = make([]models.ChoiceView, len(question.Choices))
			for j, choice := range question.Choices {
				view.Choices[j] = models.ChoiceView{ID: choice.ID, Text: choice.Text}
			}
		}
		items[i] = view
	}

	return &QuestionPage{
		Items: items,
		Page:  page,
		Limit: limit,
		Total: total,
		Section: SectionRef{
			ID:    assessment.Section.ID,
			Title: assessment.Section.Title,
		},
	}, nil
}

func validateChoiceSet(req *CreateQuestionRequest) error {
	if req.Type != models.QuestionMCQ || len(req.Choices) == 0 {
		return nil
	}
	if len(req.Choices) < 2 {
		return ErrChoicesRequired
	}
	correct := 0
	for _, choice := range req.Choices {
		if choice.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return ErrOneCorrectChoice
	}
	return nil
}

func buildQuestion(assessmentID string, req *CreateQuestionRequest) (*models.Question, error) {
	question := &models.Question{
		AssessmentID:     assessmentID,
		Text:             req.Text,
		Type:             req.Type,
		TimeLimitSeconds: req.TimeLimitSeconds,
		AnswerKey:        req.Answer,
	}
	if question.TimeLimitSeconds == 0 {
		question.TimeLimitSeconds = 60
	}
	if req.Metadata != nil {
		metadata, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal question metadata: %w", err)
		}
		question.Metadata = datatypes.JSON(metadata)
	}
	if req.Type == models.QuestionMCQ {
		question.Choices = make([]models.Choice, len(req.Choices))
		for i, choice := range req.Choices {
			question.Choices[i] = models.Choice{
				Text:      choice.Text,
				IsCorrect: choice.IsCorrect,
			}
		}
	}
	return question, nil
}
