package utils

import (
	"reflect"
	"strings"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the project's custom rules.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate checks struct tags and returns the raw validator error for the
// handlers to translate.
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("user_role", validateUserRole)

	// Report field names by their json tag so validation errors match the
	// wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	switch models.QuestionType(fl.Field().String()) {
	case models.QuestionMCQ, models.QuestionShort, models.QuestionSpeaking,
		models.QuestionListening, models.QuestionNonverbal:
		return true
	}
	return false
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	switch models.DifficultyLevel(fl.Field().String()) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleAdmin, models.RoleCandidate:
		return true
	}
	return false
}
