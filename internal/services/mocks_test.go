package services

import (
	"context"
	"time"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// ===== REPOSITORY MOCKS =====

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListModules(ctx context.Context) ([]*models.Module, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Module), args.Error(1)
}

func (m *MockCatalogRepository) GetModuleBySlug(ctx context.Context, slug string) (*models.Module, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Module), args.Error(1)
}

func (m *MockCatalogRepository) GetSectionsByModule(ctx context.Context, moduleID string) ([]*models.Section, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Section), args.Error(1)
}

func (m *MockCatalogRepository) GetSectionByID(ctx context.Context, id string) (*models.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Section), args.Error(1)
}

func (m *MockCatalogRepository) CreateModule(ctx context.Context, module *models.Module) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateSection(ctx context.Context, section *models.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) GetByIDWithQuestions(ctx context.Context, id string) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByAssessment(ctx context.Context, assessmentID string, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	args := m.Called(ctx, assessmentID, filters)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) GetIDsByAssessment(ctx context.Context, assessmentID string) ([]string, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Upsert(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	if args.Error(0) == nil && response.ID == "" {
		response.ID = "resp-" + response.QuestionID
		response.RecordedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockResponseRepository) GetByUserAndQuestion(ctx context.Context, userID, questionID string) (*models.Response, error) {
	args := m.Called(ctx, userID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Response), args.Error(1)
}

func (m *MockResponseRepository) List(ctx context.Context, userID string, questionIDs []string) ([]*models.Response, error) {
	args := m.Called(ctx, userID, questionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Response), args.Error(1)
}

type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *models.Result) error {
	args := m.Called(ctx, result)
	if args.Error(0) == nil && result.ID == "" {
		result.ID = "result-1"
	}
	return args.Error(0)
}

func (m *MockResultRepository) GetByUserAndAssessment(ctx context.Context, userID, assessmentID string) (*models.Result, error) {
	args := m.Called(ctx, userID, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Result), args.Error(1)
}

func (m *MockResultRepository) ExistsByUserAndAssessment(ctx context.Context, userID, assessmentID string) (bool, error) {
	args := m.Called(ctx, userID, assessmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockResultRepository) FindFirst(ctx context.Context, assessmentID string, userID *string) (*models.Result, error) {
	args := m.Called(ctx, assessmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Result), args.Error(1)
}

func (m *MockResultRepository) ListByAssessment(ctx context.Context, assessmentID string) ([]*models.Result, error) {
	args := m.Called(ctx, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Result), args.Error(1)
}

// MockRepository bundles the per-entity mocks. WithTransaction runs the
// callback against the same mocks, so expectations set on them cover
// transactional calls too.
type MockRepository struct {
	user       *MockUserRepository
	catalog    *MockCatalogRepository
	assessment *MockAssessmentRepository
	question   *MockQuestionRepository
	response   *MockResponseRepository
	result     *MockResultRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		user:       &MockUserRepository{},
		catalog:    &MockCatalogRepository{},
		assessment: &MockAssessmentRepository{},
		question:   &MockQuestionRepository{},
		response:   &MockResponseRepository{},
		result:     &MockResultRepository{},
	}
}

func (m *MockRepository) User() repositories.UserRepository             { return m.user }
func (m *MockRepository) Catalog() repositories.CatalogRepository       { return m.catalog }
func (m *MockRepository) Assessment() repositories.AssessmentRepository { return m.assessment }
func (m *MockRepository) Question() repositories.QuestionRepository     { return m.question }
func (m *MockRepository) Response() repositories.ResponseRepository     { return m.response }
func (m *MockRepository) Result() repositories.ResultRepository         { return m.result }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
