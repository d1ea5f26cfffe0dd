package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module is a top-level skill area (speaking, writing, listening, nonverbal).
type Module struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	Slug        string `json:"slug" gorm:"not null;uniqueIndex;size:80" validate:"required,max=80"`
	Title       string `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon" gorm:"size:16"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:ModuleID"`
}

// Section groups the assessments of a module and carries the timing rules
// shown to the candidate before they start.
type Section struct {
	ID               string `json:"id" gorm:"primaryKey;size:36"`
	ModuleID         string `json:"moduleId" gorm:"not null;index;size:36"`
	Title            string `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description      string `json:"description" gorm:"type:text"`
	QuestionCount    int    `json:"questionCount" gorm:"default:0"`
	TimeLimitSeconds int    `json:"timeLimitSeconds" gorm:"default:600"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Module      Module       `json:"-" gorm:"foreignKey:ModuleID"`
	Assessments []Assessment `json:"assessments,omitempty" gorm:"foreignKey:SectionID"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (Module) TableName() string {
	return "modules"
}

func (Section) TableName() string {
	return "sections"
}
