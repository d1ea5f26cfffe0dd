package services

import (
	"github.com/commquest/commquest-backend/internal/models"
)

const (
	feedbackCorrect   = "Correct answer"
	feedbackIncorrect = "Incorrect answer"
	feedbackManual    = "Requires manual grading"
)

// gradeOutcome carries everything the submission transaction needs to
// persist: the response rows to upsert, the per-question detail records in
// processing order, the mcq points earned, and any questionIDs that did not
// match a question in the assessment.
type gradeOutcome struct {
	responses []models.Response
	details   []models.QuestionResult
	points    int
	unmatched []string
}

// gradeSubmission scores a full response set against the assessment's
// question snapshot. Responses are processed in input order. A response whose
// questionId is not in the snapshot is skipped entirely: no detail record, no
// score contribution. That matches the deployed contract, which tolerates
// such payloads rather than rejecting them.
//
// MCQ answers carry the chosen Choice's id in answerText; grading compares
// identifiers, never choice text. Every other question type is marked for
// manual review and earns nothing.
func gradeSubmission(questions []models.Question, responses []ResponseInput, userID string) gradeOutcome {
	byID := make(map[string]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	outcome := gradeOutcome{
		responses: make([]models.Response, 0, len(responses)),
		details:   make([]models.QuestionResult, 0, len(responses)),
	}

	for _, input := range responses {
		question, ok := byID[input.QuestionID]
		if !ok {
			outcome.unmatched = append(outcome.unmatched, input.QuestionID)
			continue
		}

		isCorrect := false
		feedback := feedbackManual

		if question.Type == models.QuestionMCQ {
			feedback = feedbackIncorrect
			if correct := question.CorrectChoice(); correct != nil &&
				input.AnswerText != nil && *input.AnswerText == correct.ID {
				isCorrect = true
				feedback = feedbackCorrect
				outcome.points++
			}
		}

		graded := isCorrect
		outcome.responses = append(outcome.responses, models.Response{
			UserID:         userID,
			QuestionID:     input.QuestionID,
			AnswerText:     input.AnswerText,
			AnswerMediaURL: input.AnswerMediaURL,
			IsCorrect:      &graded,
		})
		outcome.details = append(outcome.details, models.QuestionResult{
			QuestionID: input.QuestionID,
			IsCorrect:  isCorrect,
			Feedback:   feedback,
		})
	}

	return outcome
}

// computeScore converts earned mcq points into the 0-100 result score. The
// denominator is the assessment's full question count: manually graded
// questions count as zero until reviewed, which is the documented scoring
// policy rather than an accident.
func computeScore(points, totalQuestions int) float64 {
	if totalQuestions == 0 {
		return 0
	}
	return float64(points) / float64(totalQuestions) * 100
}
