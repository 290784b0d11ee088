package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"context"
)

type VisitService struct {
	repository *repositories.VisitRepository
}

func NewVisitService(repository *repositories.VisitRepository) *VisitService {
	return &VisitService{repository: repository}
}

// Queue returns the department's work queue, oldest visit first.
func (s *VisitService) Queue(ctx context.Context, location models.Location) ([]models.Visit, error) {
	return s.repository.GetByLocation(ctx, location)
}

func (s *VisitService) GetByID(ctx context.Context, id string) (*models.Visit, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *VisitService) History(ctx context.Context, patientID string) ([]models.Visit, error) {
	return s.repository.GetByPatient(ctx, patientID)
}

func (s *VisitService) Recent(ctx context.Context, limit int) ([]models.Visit, error) {
	return s.repository.GetAll(ctx, limit)
}
