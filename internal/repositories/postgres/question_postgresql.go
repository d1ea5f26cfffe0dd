package postgres

import (
	"context"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

// Create persists the question together with its choices (gorm cascades the
// association insert).
func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Create(question).Error
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).
		Preload("Choices").
		First(&question, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) GetByAssessment(ctx context.Context, assessmentID string, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64

	query := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("assessment_id = ?", assessmentID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
		if filters.Page > 1 {
			query = query.Offset((filters.Page - 1) * filters.Limit)
		}
	}

	if err := query.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.created_at ASC")
		}).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (q *QuestionPostgreSQL) GetIDsByAssessment(ctx context.Context, assessmentID string) ([]string, error) {
	var ids []string
	if err := q.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("assessment_id = ?", assessmentID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
