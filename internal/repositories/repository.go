package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is the storage handle injected into every service. Implementations
// wrap a database connection; WithTransaction yields a Repository bound to a
// single transaction so multi-write operations commit or roll back together.
type Repository interface {
	User() UserRepository
	Catalog() CatalogRepository
	Assessment() AssessmentRepository
	Question() QuestionRepository
	Response() ResponseRepository
	Result() ResultRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error
}

// IsNotFoundError reports whether err is the storage layer's record-not-found.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err is a unique-constraint violation.
// The submission path relies on this to turn the losing side of a concurrent
// result insert into a conflict.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
