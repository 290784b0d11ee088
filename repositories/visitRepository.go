package repositories

import (
	"DreyCare/cache"
	"DreyCare/database"
	"DreyCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VisitCacheExpiry = 5 * time.Minute
	QueueCacheExpiry = 30 * time.Second
)

type VisitRepository struct {
	cache *cache.Cache
}

func NewVisitRepository(cache *cache.Cache) *VisitRepository {
	return &VisitRepository{cache: cache}
}

func (r *VisitRepository) Create(ctx context.Context, visit *models.Visit) error {
	if visit.ID == "" {
		visit.ID = uuid.New().String()
	}
	if visit.VisitDate.IsZero() {
		visit.VisitDate = time.Now().UTC()
	}
	if err := database.DB.WithContext(ctx).Create(visit).Error; err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return r.invalidate(ctx, visit.ID)
}

// GetByID loads the visit with its patient, doctor, prescriptions (drug
// resolved) and lab results. Nested collections are returned in creation
// order and are never nil. Returns (nil, nil) when the visit does not exist.
func (r *VisitRepository) GetByID(ctx context.Context, id string) (*models.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := visitCacheKey(id)
	cachedVisit, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedVisit != "" {
		var visit models.Visit
		if err := json.Unmarshal([]byte(cachedVisit), &visit); err == nil {
			normalizeVisit(&visit)
			return &visit, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get visit from cache: %v", err)
	}

	var visit models.Visit
	err = database.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, role, is_online, created_at")
		}).
		Preload("Prescriptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Prescriptions.Drug").
		Preload("LabResults", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&visit, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	normalizeVisit(&visit)

	visitJSON, err := json.Marshal(visit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal visit: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, visitJSON, VisitCacheExpiry); err != nil {
		log.Printf("Failed to set visit in cache: %v", err)
	}

	return &visit, nil
}

// GetByLocation returns the department queue: every non-completed visit at
// the location, oldest visit first. The ordering is a fairness guarantee.
func (r *VisitRepository) GetByLocation(ctx context.Context, location models.Location) ([]models.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getQueueCacheKey(location)
	cachedQueue, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedQueue != "" {
		var visits []models.Visit
		if err := json.Unmarshal([]byte(cachedQueue), &visits); err == nil {
			return visits, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get queue from cache: %v", err)
	}

	var visits []models.Visit
	err = database.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, role, is_online, created_at")
		}).
		Where("current_location = ? AND status <> ?", location, models.StatusCompleted).
		Order("visit_date ASC").
		Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get visits for location %s: %w", location, err)
	}

	visitsJSON, err := json.Marshal(visits)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal queue: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, visitsJSON, QueueCacheExpiry); err != nil {
		log.Printf("Failed to set queue in cache: %v", err)
	}

	return visits, nil
}

// UpdateFields applies a partial update and returns the fresh row. Status and
// current_location always travel together through this method; the router is
// the only caller that changes them.
func (r *VisitRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*models.Visit, error) {
	result := database.DB.WithContext(ctx).
		Model(&models.Visit{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update visit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to update visit: %w", gorm.ErrRecordNotFound)
	}
	if err := r.invalidate(ctx, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByPatient returns a patient's visit history, newest first.
func (r *VisitRepository) GetByPatient(ctx context.Context, patientID string) ([]models.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var visits []models.Visit
	err := database.DB.WithContext(ctx).
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, role, is_online, created_at")
		}).
		Where("patient_id = ?", patientID).
		Order("visit_date DESC").
		Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get visits for patient: %w", err)
	}
	return visits, nil
}

// GetAll returns the most recent visits across all departments.
func (r *VisitRepository) GetAll(ctx context.Context, limit int) ([]models.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}
	var visits []models.Visit
	err := database.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email, role, is_online, created_at")
		}).
		Order("visit_date DESC").
		Limit(limit).
		Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get visits: %w", err)
	}
	return visits, nil
}

func (r *VisitRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, visitCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete visit cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "visit_queue_cache:*")
}

// visitCacheKey is shared with the repositories that append child rows to a
// visit and must drop its cached snapshot.
func visitCacheKey(id string) string {
	return fmt.Sprintf("visit_cache:%s", id)
}

func (r *VisitRepository) getQueueCacheKey(location models.Location) string {
	return fmt.Sprintf("visit_queue_cache:%s", location)
}

// normalizeVisit replaces absent child collections with empty slices so
// consumers never null-check.
func normalizeVisit(v *models.Visit) {
	if v.Prescriptions == nil {
		v.Prescriptions = []models.Prescription{}
	}
	if v.LabResults == nil {
		v.LabResults = []models.LabResult{}
	}
}
