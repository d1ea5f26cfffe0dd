package postgres

import (
	"context"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

// Create inserts the result row. A concurrent duplicate for the same
// (user_id, assessment_id) surfaces as gorm.ErrDuplicatedKey through the
// driver's error translation; callers remap it to the conflict error.
func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *ResultPostgreSQL) GetByUserAndAssessment(ctx context.Context, userID, assessmentID string) (*models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).
		First(&result, "user_id = ? AND assessment_id = ?", userID, assessmentID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) ExistsByUserAndAssessment(ctx context.Context, userID, assessmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Result{}).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResultPostgreSQL) FindFirst(ctx context.Context, assessmentID string, userID *string) (*models.Result, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("assessment_id = ?", assessmentID)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var result models.Result
	if err := query.Order("submitted_at ASC").First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) ListByAssessment(ctx context.Context, assessmentID string) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("assessment_id = ?", assessmentID).
		Order("submitted_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
