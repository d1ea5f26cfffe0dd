package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response is one candidate's answer to one question. Exactly one row exists
// per (user, question) pair; saving again overwrites the previous content.
type Response struct {
	ID             string  `json:"id" gorm:"primaryKey;size:36"`
	UserID         string  `json:"userId" gorm:"not null;size:36;uniqueIndex:idx_responses_user_question"`
	QuestionID     string  `json:"questionId" gorm:"not null;size:36;uniqueIndex:idx_responses_user_question;index"`
	AnswerText     *string `json:"answerText" gorm:"type:text"`
	AnswerMediaURL *string `json:"answerMediaUrl" gorm:"type:text"`
	// IsCorrect stays null until the containing assessment is submitted and
	// graded.
	IsCorrect *bool `json:"isCorrect"`

	RecordedAt time.Time `json:"recordedAt" gorm:"not null;index"`

	// Relations
	User     User     `json:"-" gorm:"foreignKey:UserID"`
	Question Question `json:"-" gorm:"foreignKey:QuestionID"`
}

// Answered reports whether the response carries any content.
func (r *Response) Answered() bool {
	if r.AnswerText != nil && *r.AnswerText != "" {
		return true
	}
	return r.AnswerMediaURL != nil && *r.AnswerMediaURL != ""
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (Response) TableName() string {
	return "responses"
}
