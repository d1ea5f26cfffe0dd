package postgres

import (
	"context"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"gorm.io/gorm"
)

type CatalogPostgreSQL struct {
	db *gorm.DB
}

func NewCatalogPostgreSQL(db *gorm.DB) repositories.CatalogRepository {
	return &CatalogPostgreSQL{db: db}
}

func (c *CatalogPostgreSQL) ListModules(ctx context.Context) ([]*models.Module, error) {
	var modules []*models.Module
	if err := c.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *CatalogPostgreSQL) GetModuleBySlug(ctx context.Context, slug string) (*models.Module, error) {
	var module models.Module
	if err := c.db.WithContext(ctx).First(&module, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (c *CatalogPostgreSQL) GetSectionsByModule(ctx context.Context, moduleID string) ([]*models.Section, error) {
	var sections []*models.Section
	if err := c.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("created_at ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *CatalogPostgreSQL) GetSectionByID(ctx context.Context, id string) (*models.Section, error) {
	var section models.Section
	if err := c.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (c *CatalogPostgreSQL) CreateModule(ctx context.Context, module *models.Module) error {
	return c.db.WithContext(ctx).Create(module).Error
}

func (c *CatalogPostgreSQL) CreateSection(ctx context.Context, section *models.Section) error {
	return c.db.WithContext(ctx).Create(section).Error
}
