package repositories

import (
	"context"

	"github.com/commquest/commquest-backend/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ===== PER-ENTITY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

type CatalogRepository interface {
	ListModules(ctx context.Context) ([]*models.Module, error)
	GetModuleBySlug(ctx context.Context, slug string) (*models.Module, error)
	GetSectionsByModule(ctx context.Context, moduleID string) ([]*models.Section, error)
	GetSectionByID(ctx context.Context, id string) (*models.Section, error)
	CreateModule(ctx context.Context, module *models.Module) error
	CreateSection(ctx context.Context, section *models.Section) error
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	// GetByIDWithQuestions preloads the full question set with choices,
	// ordered by creation time. This is the snapshot grading runs against.
	GetByIDWithQuestions(ctx context.Context, id string) (*models.Assessment, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
	GetByAssessment(ctx context.Context, assessmentID string, filters QuestionFilters) ([]*models.Question, int64, error)
	GetIDsByAssessment(ctx context.Context, assessmentID string) ([]string, error)
}

type ResponseRepository interface {
	// Upsert creates or overwrites the single row keyed by
	// (user_id, question_id), refreshing recorded_at. On overwrite the stored
	// row id is kept and written back into response.
	Upsert(ctx context.Context, response *models.Response) error
	GetByUserAndQuestion(ctx context.Context, userID, questionID string) (*models.Response, error)
	// List returns the user's responses newest first. A non-nil questionIDs
	// narrows the listing to those questions; an empty non-nil slice matches
	// nothing.
	List(ctx context.Context, userID string, questionIDs []string) ([]*models.Response, error)
}

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	GetByUserAndAssessment(ctx context.Context, userID, assessmentID string) (*models.Result, error)
	ExistsByUserAndAssessment(ctx context.Context, userID, assessmentID string) (bool, error)
	// FindFirst returns the first result for the assessment, optionally
	// narrowed to one user. Arbitrary-match semantics when userID is nil.
	FindFirst(ctx context.Context, assessmentID string, userID *string) (*models.Result, error)
	ListByAssessment(ctx context.Context, assessmentID string) ([]*models.Result, error)
}
