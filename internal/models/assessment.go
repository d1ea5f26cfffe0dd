package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionShort     QuestionType = "short"
	QuestionSpeaking  QuestionType = "speaking"
	QuestionListening QuestionType = "listening"
	QuestionNonverbal QuestionType = "nonverbal"
)

type Assessment struct {
	ID              string          `json:"id" gorm:"primaryKey;size:36"`
	SectionID       string          `json:"sectionId" gorm:"not null;index;size:36" validate:"required"`
	Title           string          `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description     string          `json:"description" gorm:"type:text" validate:"required"`
	Difficulty      DifficultyLevel `json:"difficulty" gorm:"not null;index" validate:"required,difficulty_level"`
	DurationSeconds int             `json:"durationSeconds" gorm:"not null" validate:"required,min=1"`
	CreatedByID     string          `json:"createdById" gorm:"not null;index;size:36"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Section   Section    `json:"section" gorm:"foreignKey:SectionID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`
	CreatedBy User       `json:"-" gorm:"foreignKey:CreatedByID"`
}

type Question struct {
	ID               string         `json:"id" gorm:"primaryKey;size:36"`
	AssessmentID     string         `json:"assessmentId" gorm:"not null;index;size:36"`
	Text             string         `json:"text" gorm:"not null;type:text" validate:"required"`
	Type             QuestionType   `json:"type" gorm:"not null;index" validate:"required,question_type"`
	TimeLimitSeconds int            `json:"timeLimitSeconds" gorm:"default:60" validate:"omitempty,min=1"`
	Metadata         datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	// AnswerKey is the reference answer for manually graded types. Never
	// serialized to candidates.
	AnswerKey *string `json:"-" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Assessment Assessment `json:"-" gorm:"foreignKey:AssessmentID"`
	Choices    []Choice   `json:"choices,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

type Choice struct {
	ID         string `json:"id" gorm:"primaryKey;size:36"`
	QuestionID string `json:"questionId" gorm:"not null;index;size:36"`
	Text       string `json:"text" gorm:"not null;type:text" validate:"required"`
	// IsCorrect is only surfaced on admin paths; candidate-facing views use
	// ChoiceView.
	IsCorrect bool `json:"isCorrect"`

	CreatedAt time.Time `json:"createdAt"`

	Question Question `json:"-" gorm:"foreignKey:QuestionID"`
}

// ChoiceView is the candidate-facing projection of a Choice, with the
// correctness flag stripped.
type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CorrectChoice returns the choice marked correct, or nil when none is. Only
// meaningful for mcq questions.
func (q *Question) CorrectChoice() *Choice {
	for i := range q.Choices {
		if q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	return nil
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (c *Choice) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (Assessment) TableName() string { return "assessments" }
func (Question) TableName() string   { return "questions" }
func (Choice) TableName() string     { return "choices" }
