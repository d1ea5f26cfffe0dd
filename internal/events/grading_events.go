package events

import (
	"time"

	"github.com/google/uuid"
)

type GradingEventType string

const (
	EventAssessmentSubmitted GradingEventType = "assessment.submitted"
	EventResultCreated       GradingEventType = "result.created"
)

// GradingEvent is the message published after a submission grades
// successfully. Downstream consumers (notifications, analytics) key off Type.
type GradingEvent struct {
	ID        string           `json:"id"`
	Type      GradingEventType `json:"type"`
	Source    string           `json:"source"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`

	UserID       string  `json:"userId"`
	AssessmentID string  `json:"assessmentId"`
	ResultID     string  `json:"resultId"`
	Score        float64 `json:"score"`
	Total        int     `json:"total"`
}

// NewAssessmentSubmittedEvent marks a submission that passed all gates and
// committed. It carries no result fields; result.created follows with those.
func NewAssessmentSubmittedEvent(userID, assessmentID string) *GradingEvent {
	return &GradingEvent{
		ID:           uuid.NewString(),
		Type:         EventAssessmentSubmitted,
		Source:       "commquest-backend",
		Version:      "1.0",
		Timestamp:    time.Now(),
		UserID:       userID,
		AssessmentID: assessmentID,
	}
}

func NewResultCreatedEvent(userID, assessmentID, resultID string, score float64, total int) *GradingEvent {
	return &GradingEvent{
		ID:           uuid.NewString(),
		Type:         EventResultCreated,
		Source:       "commquest-backend",
		Version:      "1.0",
		Timestamp:    time.Now(),
		UserID:       userID,
		AssessmentID: assessmentID,
		ResultID:     resultID,
		Score:        score,
		Total:        total,
	}
}
