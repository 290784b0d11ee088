package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"context"
)

// PrescriptionService serves the pharmacy dashboard's read side; creation
// happens through the visit router during consultation.
type PrescriptionService struct {
	repository *repositories.PrescriptionRepository
}

func NewPrescriptionService(repository *repositories.PrescriptionRepository) *PrescriptionService {
	return &PrescriptionService{repository: repository}
}

func (s *PrescriptionService) ForVisit(ctx context.Context, visitID string) ([]models.Prescription, error) {
	return s.repository.GetByVisit(ctx, visitID)
}
