package services

import (
	"context"
	"testing"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestParseGeneratedQuestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "plain array",
			raw:  `[{"text":"Q1","choices":[{"text":"A","isCorrect":true}]}]`,
			want: 1,
		},
		{
			name: "fenced payload",
			raw:  "```json\n[{\"text\":\"Q1\",\"answer\":\"A1\"},{\"text\":\"Q2\",\"answer\":\"A2\"}]\n```",
			want: 2,
		},
		{
			name:    "not json",
			raw:     "Sure! Here are your questions:",
			wantErr: true,
		},
		{
			name:    "empty question text",
			raw:     `[{"text":"  "}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := parseGeneratedQuestions(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, questions, tt.want)
		})
	}
}

func TestGenerateQuestions_NotConfigured(t *testing.T) {
	service := NewGenerationService(nil, nil, newTestLogger(), utils.NewValidator())

	_, err := service.GenerateQuestions(context.Background(), &GenerateQuestionsRequest{
		Topic:      "greetings",
		Count:      3,
		Type:       models.QuestionMCQ,
		Difficulty: models.DifficultyEasy,
	})

	assert.ErrorIs(t, err, ErrGeneratorNotConfigured)
}
