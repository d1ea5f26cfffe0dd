package postgres

import (
	"context"
	"time"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// Upsert writes the single response row for (user_id, question_id).
// ON CONFLICT keeps the original row id and overwrites the answer content;
// RETURNING folds the stored row (id included) back into response.
func (r *ResponsePostgreSQL) Upsert(ctx context.Context, response *models.Response) error {
	response.RecordedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns(upsertColumns(response)),
			},
			clause.Returning{},
		).
		Create(response).Error
}

// upsertColumns picks the conflict-update set. An ungraded save must not
// overwrite is_correct: only the grading path carries a non-nil value, and a
// later re-save of the answer keeps the stored grade untouched.
func upsertColumns(response *models.Response) []string {
	cols := []string{"answer_text", "answer_media_url", "recorded_at"}
	if response.IsCorrect != nil {
		cols = append(cols, "is_correct")
	}
	return cols
}

func (r *ResponsePostgreSQL) GetByUserAndQuestion(ctx context.Context, userID, questionID string) (*models.Response, error) {
	var response models.Response
	if err := r.db.WithContext(ctx).
		First(&response, "user_id = ? AND question_id = ?", userID, questionID).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *ResponsePostgreSQL) List(ctx context.Context, userID string, questionIDs []string) ([]*models.Response, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if questionIDs != nil {
		query = query.Where("question_id IN ?", questionIDs)
	}

	var responses []*models.Response
	if err := query.Order("recorded_at DESC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}
