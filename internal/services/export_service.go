package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService renders assessment results as downloadable spreadsheets.
type ExportService interface {
	ExportAssessmentResults(ctx context.Context, assessmentID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportAssessmentResults(ctx context.Context, assessmentID string) ([]byte, error) {
	exists, err := s.repo.Assessment().Exists(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assessment: %w", err)
	}
	if !exists {
		return nil, ErrAssessmentNotFound
	}

	results, err := s.repo.Result().ListByAssessment(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"User ID", "User Name", "User Email", "Score", "Total", "Submitted At", "Correct", "Incorrect", "Manual",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, result := range results {
		correct, incorrect, manual := summarizeDetails(result.Details)

		name := ""
		if result.User.Name != nil {
			name = *result.User.Name
		}

		row := []interface{}{
			result.UserID,
			name,
			result.User.Email,
			result.Score,
			result.Total,
			result.SubmittedAt.Format("2006-01-02 15:04:05"),
			correct,
			incorrect,
			manual,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Results exported",
		"assessment_id", assessmentID,
		"result_count", len(results))

	return buf.Bytes(), nil
}

func summarizeDetails(raw []byte) (correct, incorrect, manual int) {
	var details models.ResultDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return 0, 0, 0
	}
	for _, qr := range details.PerQuestion {
		switch {
		case qr.Feedback == feedbackManual:
			manual++
		case qr.IsCorrect:
			correct++
		default:
			incorrect++
		}
	}
	return correct, incorrect, manual
}
