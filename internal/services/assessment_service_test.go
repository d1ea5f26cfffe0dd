package services

import (
	"context"
	"testing"
	"time"

	"github.com/commquest/commquest-backend/internal/cache"
	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// recordingCache captures Delete calls on top of a no-op cache.
type recordingCache struct {
	cache.CacheService
	deleted []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{CacheService: cache.NewNoopCache()}
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	return nil
}

func newAssessmentFixture() (*MockRepository, *recordingCache, AssessmentService) {
	repo := NewMockRepository()
	rc := newRecordingCache()
	service := NewAssessmentService(repo, rc, newTestLogger(), utils.NewValidator())
	return repo, rc, service
}

func validMCQRequest() CreateQuestionRequest {
	return CreateQuestionRequest{
		Text: "Pick the greeting",
		Type: models.QuestionMCQ,
		Choices: []CreateChoiceRequest{
			{Text: "Hello", IsCorrect: true},
			{Text: "Goodbye"},
		},
	}
}

func TestAddQuestions(t *testing.T) {
	repo, rc, service := newAssessmentFixture()

	repo.assessment.On("Exists", mock.Anything, "a1").Return(true, nil)
	repo.question.On("Create", mock.Anything, mock.AnythingOfType("*models.Question")).Return(nil)

	result, err := service.AddQuestions(context.Background(), "a1", []CreateQuestionRequest{
		validMCQRequest(),
		{Text: "Describe your morning", Type: models.QuestionShort},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCount)
	repo.question.AssertNumberOfCalls(t, "Create", 2)

	// The cached question snapshot must go away so submissions see the new
	// questions.
	assert.Contains(t, rc.deleted, "commquest:assessment:questions:a1")
}

func TestAddQuestions_ChoiceInvariants(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateQuestionRequest)
		wantErr error
	}{
		{
			name: "no correct choice",
			mutate: func(q *CreateQuestionRequest) {
				q.Choices[0].IsCorrect = false
			},
			wantErr: ErrOneCorrectChoice,
		},
		{
			name: "two correct choices",
			mutate: func(q *CreateQuestionRequest) {
				q.Choices[1].IsCorrect = true
			},
			wantErr: ErrOneCorrectChoice,
		},
		{
			name: "single choice",
			mutate: func(q *CreateQuestionRequest) {
				q.Choices = q.Choices[:1]
			},
			wantErr: ErrChoicesRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, service := newAssessmentFixture()
			repo.assessment.On("Exists", mock.Anything, "a1").Return(true, nil)

			req := validMCQRequest()
			tt.mutate(&req)

			_, err := service.AddQuestions(context.Background(), "a1", []CreateQuestionRequest{req})

			assert.ErrorIs(t, err, tt.wantErr)
			repo.question.AssertNotCalled(t, "Create")
		})
	}
}

func TestAddQuestions_AssessmentMissing(t *testing.T) {
	repo, _, service := newAssessmentFixture()

	repo.assessment.On("Exists", mock.Anything, "ghost").Return(false, nil)

	_, err := service.AddQuestions(context.Background(), "ghost", []CreateQuestionRequest{validMCQRequest()})

	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestListQuestions_HidesCorrectness(t *testing.T) {
	repo, _, service := newAssessmentFixture()

	repo.assessment.On("GetByID", mock.Anything, "a1").Return(&models.Assessment{
		ID:      "a1",
		Section: models.Section{ID: "s1", Title: "Listening Basics"},
	}, nil)
	repo.question.On("GetByAssessment", mock.Anything, "a1", mock.Anything).Return([]*models.Question{
		{
			ID:   "q1",
			Text: "Pick the greeting",
			Type: models.QuestionMCQ,
			Choices: []models.Choice{
				{ID: "c1", Text: "Hello", IsCorrect: true},
				{ID: "c2", Text: "Goodbye", IsCorrect: false},
			},
			CreatedAt: time.Now(),
		},
	}, int64(1), nil)

	page, err := service.ListQuestions(context.Background(), "a1", 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Listening Basics", page.Section.Title)
	assert.Len(t, page.Items[0].Choices, 2)
	assert.Equal(t, models.ChoiceView{ID: "c1", Text: "Hello"}, page.Items[0].Choices[0])
}

func TestGetAssessment_NotFound(t *testing.T) {
	repo, _, service := newAssessmentFixture()

	repo.assessment.On("GetByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Get(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}
