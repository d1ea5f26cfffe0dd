package services

import (
	"context"
	"fmt"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"github.com/commquest/commquest-backend/internal/utils"
)

type CatalogService interface {
	ListModules(ctx context.Context) ([]*models.Module, error)
	GetModuleSections(ctx context.Context, slug string) ([]*models.Section, error)
	GetSectionRules(ctx context.Context, sectionID string) (*SectionRules, error)
}

// SectionRules is the pre-test briefing shown before a candidate starts a
// section.
type SectionRules struct {
	SectionID        string   `json:"sectionId"`
	SectionTitle     string   `json:"sectionTitle"`
	QuestionCount    int      `json:"questionCount"`
	TimeLimitSeconds int      `json:"timeLimitSeconds"`
	MarksPerQuestion int      `json:"marksPerQuestion"`
	Guidelines       []string `json:"guidelines"`
	HelpNotes        []string `json:"helpNotes"`
}

var sectionGuidelines = []string{
	"Read each question carefully before answering.",
	"Once you submit the assessment, your answers cannot be changed.",
	"Each question has a time limit; unanswered questions block submission.",
	"Do not refresh or close the browser during the assessment.",
	"Your responses are saved automatically as you move between questions.",
}

var sectionHelpNotes = []string{
	"Use a stable internet connection for the best experience.",
	"Allow microphone access for speaking questions.",
	"Use headphones for listening questions.",
	"Contact support if you face technical issues during the test.",
}

type catalogService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewCatalogService(repo repositories.Repository, logger utils.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListModules(ctx context.Context) ([]*models.Module, error) {
	modules, err := s.repo.Catalog().ListModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

func (s *catalogService) GetModuleSections(ctx context.Context, slug string) ([]*models.Section, error) {
	module, err := s.repo.Catalog().GetModuleBySlug(ctx, slug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	sections, err := s.repo.Catalog().GetSectionsByModule(ctx, module.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

func (s *catalogService) GetSectionRules(ctx context.Context, sectionID string) (*SectionRules, error) {
	section, err := s.repo.Catalog().GetSectionByID(ctx, sectionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to get section: %w", err)
	}

	return &SectionRules{
		SectionID:        section.ID,
		SectionTitle:     section.Title,
		QuestionCount:    section.QuestionCount,
		TimeLimitSeconds: section.TimeLimitSeconds,
		MarksPerQuestion: 1,
		Guidelines:       sectionGuidelines,
		HelpNotes:        sectionHelpNotes,
	}, nil
}
