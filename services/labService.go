package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"DreyCare/utils"
	"context"
	"fmt"
)

type LabService struct {
	results *repositories.LabResultRepository
	visits  *repositories.VisitRepository
}

func NewLabService(results *repositories.LabResultRepository, visits *repositories.VisitRepository) *LabService {
	return &LabService{results: results, visits: visits}
}

// Record appends a test outcome to a visit. Results are append-only.
func (s *LabService) Record(ctx context.Context, result *models.LabResult) error {
	if err := utils.ValidateLabResultData(*result); err != nil {
		return fmt.Errorf("invalid lab result: %w", err)
	}
	visit, err := s.visits.GetByID(ctx, result.VisitID)
	if err != nil {
		return &PersistenceError{Op: "load_visit", Key: result.VisitID, Err: err}
	}
	if visit == nil {
		return &RoutingError{Code: RoutingUnknownVisit, VisitID: result.VisitID}
	}
	if err := s.results.Create(ctx, result); err != nil {
		return &PersistenceError{Op: "create_lab_result", Key: result.VisitID, Err: err}
	}
	return nil
}

func (s *LabService) ResultsForVisit(ctx context.Context, visitID string) ([]models.LabResult, error) {
	return s.results.GetByVisit(ctx, visitID)
}
