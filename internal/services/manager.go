package services

import (
	"github.com/commquest/commquest-backend/internal/cache"
	"github.com/commquest/commquest-backend/internal/events"
	"github.com/commquest/commquest-backend/internal/repositories"
	"github.com/commquest/commquest-backend/internal/utils"
)

// ServiceManager bundles the service layer so the handler wiring takes a
// single dependency.
type ServiceManager interface {
	Auth() AuthService
	Catalog() CatalogService
	Assessment() AssessmentService
	Response() ResponseService
	Submission() SubmissionService
	Generation() GenerationService
	Export() ExportService
}

type serviceManager struct {
	auth       AuthService
	catalog    CatalogService
	assessment AssessmentService
	response   ResponseService
	submission SubmissionService
	generation GenerationService
	export     ExportService
}

type ManagerConfig struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	Publisher events.EventPublisher
	Generator QuestionGenerator
	Logger    utils.Logger
	Validator *utils.Validator
	JWTSecret string
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	assessment := NewAssessmentService(cfg.Repo, cfg.Cache, cfg.Logger, cfg.Validator)
	return &serviceManager{
		auth:       NewAuthService(cfg.Repo, cfg.Logger, cfg.Validator, cfg.JWTSecret),
		catalog:    NewCatalogService(cfg.Repo, cfg.Logger),
		assessment: assessment,
		response:   NewResponseService(cfg.Repo, cfg.Logger),
		submission: NewSubmissionService(cfg.Repo, cfg.Cache, cfg.Publisher, cfg.Logger),
		generation: NewGenerationService(cfg.Generator, assessment, cfg.Logger, cfg.Validator),
		export:     NewExportService(cfg.Repo, cfg.Logger),
	}
}

func (m *serviceManager) Auth() AuthService             { return m.auth }
func (m *serviceManager) Catalog() CatalogService       { return m.catalog }
func (m *serviceManager) Assessment() AssessmentService { return m.assessment }
func (m *serviceManager) Response() ResponseService     { return m.response }
func (m *serviceManager) Submission() SubmissionService { return m.submission }
func (m *serviceManager) Generation() GenerationService { return m.generation }
func (m *serviceManager) Export() ExportService         { return m.export }
