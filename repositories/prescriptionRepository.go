package repositories

import (
	"DreyCare/cache"
	"DreyCare/database"
	"DreyCare/models"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type PrescriptionRepository struct {
	cache *cache.Cache
}

func NewPrescriptionRepository(cache *cache.Cache) *PrescriptionRepository {
	return &PrescriptionRepository{cache: cache}
}

// Create inserts the prescription and resolves its drug on the returned
// value. Prescriptions are immutable once written.
func (r *PrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(prescription).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}

	var drug models.Drug
	if err := database.DB.WithContext(ctx).First(&drug, "id = ?", prescription.DrugID).Error; err == nil {
		prescription.Drug = &drug
	}

	// The parent visit's cached snapshot no longer matches.
	return r.cache.Delete(ctx, visitCacheKey(prescription.VisitID))
}

// GetByVisit returns the visit's prescriptions in creation order.
func (r *PrescriptionRepository) GetByVisit(ctx context.Context, visitID string) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := database.DB.WithContext(ctx).
		Preload("Drug").
		Where("visit_id = ?", visitID).
		Order("created_at ASC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get prescriptions: %w", err)
	}
	return prescriptions, nil
}
