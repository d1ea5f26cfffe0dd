package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// QuestionGenerator produces draft questions from a topic description.
// Implementations may call an external model; callers must treat failures as
// non-fatal for the rest of the system.
type QuestionGenerator interface {
	Generate(ctx context.Context, req *GenerateQuestionsRequest) ([]GeneratedQuestion, error)
	Close() error
}

type GenerateQuestionsRequest struct {
	Topic              string                 `json:"topic" validate:"required,min=3,max=300"`
	Count              int                    `json:"count" validate:"required,min=1,max=50"`
	Type               models.QuestionType    `json:"type" validate:"required,question_type"`
	Difficulty         models.DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	SaveToAssessmentID string                 `json:"saveToAssessmentId" validate:"omitempty"`
}

type GeneratedChoice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type GeneratedQuestion struct {
	Text    string            `json:"text"`
	Answer  string            `json:"answer,omitempty"`
	Choices []GeneratedChoice `json:"choices,omitempty"`
}

type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger utils.Logger
}

// NewGeminiGenerator returns a nil generator without error when apiKey is
// empty, so the server can run with generation disabled.
func NewGeminiGenerator(ctx context.Context, apiKey string, logger utils.Logger) (QuestionGenerator, error) {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, question generation disabled")
		return nil, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.ResponseMIMEType = "application/json"
	return &geminiGenerator{client: client, model: model, logger: logger}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, req *GenerateQuestionsRequest) ([]GeneratedQuestion, error) {
	prompt := buildGenerationPrompt(req)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		g.logger.LogError(err, "Gemini generation request failed", "topic", req.Topic)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	var raw strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw.WriteString(string(txt))
		}
	}

	questions, err := parseGeneratedQuestions(raw.String())
	if err != nil {
		g.logger.LogError(err, "Failed to parse generated questions", "topic", req.Topic)
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if len(questions) > req.Count {
		questions = questions[:req.Count]
	}
	return questions, nil
}

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}

func buildGenerationPrompt(req *GenerateQuestionsRequest) string {
	var b strings.Builder
	b.WriteString("You are an expert communication-skills examiner.\n")
	fmt.Fprintf(&b, "Generate %d %s questions at %s difficulty about the topic: %q.\n\n",
		req.Count, req.Type, req.Difficulty, req.Topic)
	b.WriteString("Respond with a JSON array only. Each element must have:\n")
	b.WriteString(`  "text": the question text` + "\n")
	if req.Type == models.QuestionMCQ {
		b.WriteString(`  "choices": an array of exactly 4 objects {"text": string, "isCorrect": bool}, with exactly one correct choice` + "\n")
	} else {
		b.WriteString(`  "answer": a model answer or grading hint` + "\n")
	}
	b.WriteString("\nDo not include markdown fences or any text outside the JSON array.")
	return b.String()
}

// parseGeneratedQuestions tolerates markdown fences the model sometimes wraps
// around the payload despite instructions.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("malformed generation payload: %w", err)
	}
	for i, question := range questions {
		if strings.TrimSpace(question.Text) == "" {
			return nil, fmt.Errorf("generated question %d has empty text", i)
		}
	}
	return questions, nil
}

type GenerationService interface {
	GenerateQuestions(ctx context.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsResult, error)
}

type GenerateQuestionsResult struct {
	Questions []GeneratedQuestion `json:"questions"`
	SavedTo   string              `json:"savedTo,omitempty"`
}

type generationService struct {
	generator   QuestionGenerator
	assessments AssessmentService
	logger      utils.Logger
	validator   *utils.Validator
}

func NewGenerationService(generator QuestionGenerator, assessments AssessmentService, logger utils.Logger, validator *utils.Validator) GenerationService {
	return &generationService{
		generator:   generator,
		assessments: assessments,
		logger:      logger,
		validator:   validator,
	}
}

func (s *generationService) GenerateQuestions(ctx context.Context, req *GenerateQuestionsRequest) (*GenerateQuestionsResult, error) {
	if s.generator == nil {
		return nil, ErrGeneratorNotConfigured
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	questions, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &GenerateQuestionsResult{Questions: questions}

	if req.SaveToAssessmentID != "" {
		create := make([]CreateQuestionRequest, len(questions))
		for i, question := range questions {
			create[i] = CreateQuestionRequest{
				Text: question.Text,
				Type: req.Type,
			}
			if question.Answer != "" {
				answer := question.Answer
				create[i].Answer = &answer
			}
			for _, choice := range question.Choices {
				create[i].Choices = append(create[i].Choices, CreateChoiceRequest{
					Text:      choice.Text,
					IsCorrect: choice.IsCorrect,
				})
			}
		}
		if _, err := s.assessments.AddQuestions(ctx, req.SaveToAssessmentID, create); err != nil {
			return nil, err
		}
		result.SavedTo = req.SaveToAssessmentID
	}

	s.logger.Info("Questions generated",
		"topic", req.Topic,
		"count", len(questions),
		"type", req.Type)

	return result, nil
}
