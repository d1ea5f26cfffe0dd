package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result is the one-time graded outcome of a submission. The composite unique
// index is what makes the at-most-once guarantee hold under concurrent
// submits: the second writer hits a duplicate-key error instead of inserting
// a twin row.
type Result struct {
	ID           string  `json:"id" gorm:"primaryKey;size:36"`
	UserID       string  `json:"userId" gorm:"not null;size:36;uniqueIndex:idx_results_user_assessment"`
	AssessmentID string  `json:"assessmentId" gorm:"not null;size:36;uniqueIndex:idx_results_user_assessment;index"`
	Score        float64 `json:"score" gorm:"not null"`
	// Total is the scale of Score, fixed at 100. It is not the question count.
	Total   int            `json:"total" gorm:"not null;default:100"`
	Details datatypes.JSON `json:"details" gorm:"type:jsonb"`

	SubmittedAt time.Time `json:"submittedAt" gorm:"not null"`

	// Relations
	User       User       `json:"-" gorm:"foreignKey:UserID"`
	Assessment Assessment `json:"-" gorm:"foreignKey:AssessmentID"`
}

// ResultDetails is the structured payload stored in Result.Details.
type ResultDetails struct {
	PerQuestion []QuestionResult `json:"perQuestion"`
}

// QuestionResult is the per-question grading record, in processing order.
type QuestionResult struct {
	QuestionID string `json:"questionId"`
	IsCorrect  bool   `json:"isCorrect"`
	Feedback   string `json:"feedback"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (Result) TableName() string {
	return "results"
}
