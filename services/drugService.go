package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"DreyCare/utils"
	"context"
	"fmt"
)

// DrugService handles inventory management: catalog CRUD. Stock decrements go
// through the StockService dispense path instead.
type DrugService struct {
	repository *repositories.DrugRepository
}

func NewDrugService(repository *repositories.DrugRepository) *DrugService {
	return &DrugService{repository: repository}
}

func (s *DrugService) Create(ctx context.Context, drug *models.Drug) error {
	if err := utils.ValidateDrugData(*drug); err != nil {
		return fmt.Errorf("invalid drug data: %w", err)
	}
	return s.repository.Create(ctx, drug)
}

func (s *DrugService) Update(ctx context.Context, drug *models.Drug) error {
	if err := utils.ValidateDrugData(*drug); err != nil {
		return fmt.Errorf("invalid drug data: %w", err)
	}
	return s.repository.Update(ctx, drug)
}

func (s *DrugService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}

func (s *DrugService) GetByID(ctx context.Context, id string) (*models.Drug, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *DrugService) GetAll(ctx context.Context) ([]models.Drug, error) {
	return s.repository.GetAll(ctx)
}

func (s *DrugService) GetInventory(ctx context.Context) ([]models.Drug, error) {
	return s.repository.GetInventory(ctx)
}
