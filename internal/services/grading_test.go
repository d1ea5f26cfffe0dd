package services

import (
	"testing"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func mcqQuestion(id, correctChoiceID string) models.Question {
	return models.Question{
		ID:   id,
		Type: models.QuestionMCQ,
		Choices: []models.Choice{
			{ID: correctChoiceID, Text: "right", IsCorrect: true},
			{ID: correctChoiceID + "-b", Text: "wrong", IsCorrect: false},
		},
	}
}

func TestGradeSubmission(t *testing.T) {
	questions := []models.Question{
		mcqQuestion("q1", "c1"),
		mcqQuestion("q2", "c2"),
		{ID: "q3", Type: models.QuestionShort},
	}

	tests := []struct {
		name          string
		responses     []ResponseInput
		wantPoints    int
		wantDetails   int
		wantUnmatched int
	}{
		{
			name: "all mcq correct",
			responses: []ResponseInput{
				{QuestionID: "q1", AnswerText: strPtr("c1")},
				{QuestionID: "q2", AnswerText: strPtr("c2")},
			},
			wantPoints:  2,
			wantDetails: 2,
		},
		{
			name: "wrong choice earns nothing",
			responses: []ResponseInput{
				{QuestionID: "q1", AnswerText: strPtr("c1-b")},
			},
			wantPoints:  0,
			wantDetails: 1,
		},
		{
			name: "choice text does not match, only the id counts",
			responses: []ResponseInput{
				{QuestionID: "q1", AnswerText: strPtr("right")},
			},
			wantPoints:  0,
			wantDetails: 1,
		},
		{
			name: "short answer is manual and earns nothing",
			responses: []ResponseInput{
				{QuestionID: "q3", AnswerText: strPtr("a thoughtful reply")},
			},
			wantPoints:  0,
			wantDetails: 1,
		},
		{
			name: "unknown question id is skipped silently",
			responses: []ResponseInput{
				{QuestionID: "q1", AnswerText: strPtr("c1")},
				{QuestionID: "ghost", AnswerText: strPtr("c9")},
			},
			wantPoints:    1,
			wantDetails:   1,
			wantUnmatched: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := gradeSubmission(questions, tt.responses, "user-1")

			assert.Equal(t, tt.wantPoints, outcome.points)
			assert.Len(t, outcome.details, tt.wantDetails)
			assert.Len(t, outcome.unmatched, tt.wantUnmatched)
			assert.Len(t, outcome.responses, tt.wantDetails)
		})
	}
}

func TestGradeSubmission_DetailOrderAndFeedback(t *testing.T) {
	questions := []models.Question{
		mcqQuestion("q1", "c1"),
		{ID: "q2", Type: models.QuestionSpeaking},
	}
	responses := []ResponseInput{
		{QuestionID: "q2", AnswerMediaURL: strPtr("https://cdn.example.com/a.webm")},
		{QuestionID: "q1", AnswerText: strPtr("c1")},
	}

	outcome := gradeSubmission(questions, responses, "user-1")

	// Details follow input order, not question order.
	assert.Equal(t, "q2", outcome.details[0].QuestionID)
	assert.Equal(t, "Requires manual grading", outcome.details[0].Feedback)
	assert.False(t, outcome.details[0].IsCorrect)

	assert.Equal(t, "q1", outcome.details[1].QuestionID)
	assert.Equal(t, "Correct answer", outcome.details[1].Feedback)
	assert.True(t, outcome.details[1].IsCorrect)
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name           string
		points         int
		totalQuestions int
		want           float64
	}{
		{"perfect", 4, 4, 100},
		{"half", 2, 4, 50},
		{"zero points", 0, 4, 0},
		{"mixed with manual questions in denominator", 1, 3, 100.0 / 3},
		{"no questions", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, computeScore(tt.points, tt.totalQuestions), 1e-9)
		})
	}
}
