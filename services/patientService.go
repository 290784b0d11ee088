package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"DreyCare/utils"
	"context"
	"fmt"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return fmt.Errorf("invalid patient data: %w", err)
	}
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return fmt.Errorf("invalid patient data: %w", err)
	}
	return s.repository.Update(ctx, patient)
}

func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) GetAll(ctx context.Context) ([]models.Patient, error) {
	return s.repository.GetAll(ctx)
}

func (s *PatientService) Search(ctx context.Context, query string) ([]models.Patient, error) {
	if query == "" {
		return s.repository.GetAll(ctx)
	}
	return s.repository.Search(ctx, query)
}
