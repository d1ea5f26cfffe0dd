package services

import (
	"errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Catalog errors
	ErrModuleNotFound  = errors.New("module not found")
	ErrSectionNotFound = errors.New("section not found")

	// Assessment and question errors
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrResultNotFound     = errors.New("results not found")
	ErrChoicesRequired    = errors.New("mcq questions require at least two choices")
	ErrOneCorrectChoice   = errors.New("mcq questions require exactly one correct choice")

	// Submission errors. The handler layer maps these to the fixed
	// client-facing messages, so their identity matters more than their text.
	ErrAlreadySubmitted     = errors.New("assessment already submitted")
	ErrIncompleteSubmission = errors.New("all questions must be answered before submission")
	ErrUnansweredQuestion   = errors.New("each question must have an answer before submission")

	// Auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("current password is incorrect")

	// Generation errors
	ErrGeneratorNotConfigured = errors.New("question generation is not configured")
	ErrGenerationFailed       = errors.New("failed to generate questions")
)

// ===== ERROR CLASSIFIERS =====

// IsNotFound checks if err represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errors.Is(err, ErrSectionNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflict checks if err represents a resource conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadySubmitted) ||
		errors.Is(err, ErrEmailTaken)
}

// IsValidation checks if err represents a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrIncompleteSubmission) ||
		errors.Is(err, ErrUnansweredQuestion) ||
		errors.Is(err, ErrChoicesRequired) ||
		errors.Is(err, ErrOneCorrectChoice)
}

// IsUnauthorized checks if err represents an auth failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrPasswordMismatch)
}
