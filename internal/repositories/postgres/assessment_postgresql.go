package postgres

import (
	"context"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

func (a *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	return a.db.WithContext(ctx).Create(assessment).Error
}

func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.db.WithContext(ctx).
		Preload("Section").
		First(&assessment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) GetByIDWithQuestions(ctx context.Context, id string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.db.WithContext(ctx).
		Preload("Section").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.created_at ASC")
		}).
		First(&assessment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
