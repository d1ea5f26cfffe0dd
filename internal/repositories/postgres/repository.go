package postgres

import (
	"context"

	"github.com/commquest/commquest-backend/internal/repositories"
	"gorm.io/gorm"
)

// Repository bundles the per-entity PostgreSQL repositories behind the shared
// repositories.Repository handle.
type Repository struct {
	db         *gorm.DB
	user       repositories.UserRepository
	catalog    repositories.CatalogRepository
	assessment repositories.AssessmentRepository
	question   repositories.QuestionRepository
	response   repositories.ResponseRepository
	result     repositories.ResultRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		user:       NewUserPostgreSQL(db),
		catalog:    NewCatalogPostgreSQL(db),
		assessment: NewAssessmentPostgreSQL(db),
		question:   NewQuestionPostgreSQL(db),
		response:   NewResponsePostgreSQL(db),
		result:     NewResultPostgreSQL(db),
	}
}

func (r *Repository) User() repositories.UserRepository             { return r.user }
func (r *Repository) Catalog() repositories.CatalogRepository       { return r.catalog }
func (r *Repository) Assessment() repositories.AssessmentRepository { return r.assessment }
func (r *Repository) Question() repositories.QuestionRepository     { return r.question }
func (r *Repository) Response() repositories.ResponseRepository     { return r.response }
func (r *Repository) Result() repositories.ResultRepository         { return r.result }

// WithTransaction runs fn against a Repository bound to a single database
// transaction. fn returning an error rolls everything back.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
