package repositories

import (
	"DreyCare/cache"
	"DreyCare/database"
	"DreyCare/models"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type LabResultRepository struct {
	cache *cache.Cache
}

func NewLabResultRepository(cache *cache.Cache) *LabResultRepository {
	return &LabResultRepository{cache: cache}
}

// Create appends a lab result to a visit. Results are append-only; there is
// no update or delete path.
func (r *LabResultRepository) Create(ctx context.Context, result *models.LabResult) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create lab result: %w", err)
	}
	return r.cache.Delete(ctx, visitCacheKey(result.VisitID))
}

// GetByVisit returns the visit's lab results in creation order, the same
// order billing itemizes them.
func (r *LabResultRepository) GetByVisit(ctx context.Context, visitID string) ([]models.LabResult, error) {
	var results []models.LabResult
	err := database.DB.WithContext(ctx).
		Where("visit_id = ?", visitID).
		Order("created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get lab results: %w", err)
	}
	return results, nil
}
