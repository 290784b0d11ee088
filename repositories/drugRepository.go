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
	DrugCacheExpiry = 10 * time.Minute
)

// Sentinel errors for the dispense path.
var (
	ErrDrugNotFound      = errors.New("drug not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type DrugRepository struct {
	cache *cache.Cache
}

func NewDrugRepository(cache *cache.Cache) *DrugRepository {
	return &DrugRepository{cache: cache}
}

func (r *DrugRepository) Create(ctx context.Context, drug *models.Drug) error {
	if drug.ID == "" {
		drug.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(drug).Error; err != nil {
		return fmt.Errorf("failed to create drug: %w", err)
	}
	return r.invalidate(ctx, drug.ID)
}

func (r *DrugRepository) Update(ctx context.Context, drug *models.Drug) error {
	lockKey := fmt.Sprintf("drug_lock:%s", drug.ID)
	lockValue := uuid.New().String()
	locked, err := acquireLockWithRetry(ctx, lockKey, lockValue)
	if err != nil || !locked {
		return fmt.Errorf("failed to acquire drug lock: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	result := database.DB.WithContext(ctx).
		Model(&models.Drug{}).
		Where("id = ?", drug.ID).
		Updates(map[string]interface{}{
			"name":           drug.Name,
			"generic_name":   drug.GenericName,
			"description":    drug.Description,
			"category":       drug.Category,
			"purchase_price": drug.PurchasePrice,
			"sales_price":    drug.SalesPrice,
			"stock_quantity": drug.StockQuantity,
			"reorder_level":  drug.ReorderLevel,
			"unit":           drug.Unit,
			"expiry_date":    drug.ExpiryDate,
			"manufacturer":   drug.Manufacturer,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update drug: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDrugNotFound
	}
	return r.invalidate(ctx, drug.ID)
}

func (r *DrugRepository) Delete(ctx context.Context, id string) error {
	result := database.DB.WithContext(ctx).Delete(&models.Drug{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete drug: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDrugNotFound
	}
	return r.invalidate(ctx, id)
}

// GetByID returns (nil, nil) when the drug does not exist.
func (r *DrugRepository) GetByID(ctx context.Context, id string) (*models.Drug, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDrugCacheKey(id)
	cachedDrug, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDrug != "" {
		var drug models.Drug
		if err := json.Unmarshal([]byte(cachedDrug), &drug); err == nil {
			return &drug, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get drug from cache: %v", err)
	}

	var drug models.Drug
	err = database.DB.WithContext(ctx).First(&drug, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get drug: %w", err)
	}

	drugJSON, err := json.Marshal(drug)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal drug: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, drugJSON, DrugCacheExpiry); err != nil {
		log.Printf("Failed to set drug in cache: %v", err)
	}

	return &drug, nil
}

// GetAll returns the catalog ordered by name.
func (r *DrugRepository) GetAll(ctx context.Context) ([]models.Drug, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "drugs_cache"
	cachedDrugs, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedDrugs != "" {
		var drugs []models.Drug
		if err := json.Unmarshal([]byte(cachedDrugs), &drugs); err == nil {
			return drugs, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get drugs from cache: %v", err)
	}

	var drugs []models.Drug
	if err := database.DB.WithContext(ctx).Order("name ASC").Find(&drugs).Error; err != nil {
		return nil, fmt.Errorf("failed to get drugs: %w", err)
	}

	drugsJSON, err := json.Marshal(drugs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal drugs: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, drugsJSON, DrugCacheExpiry); err != nil {
		log.Printf("Failed to set drugs in cache: %v", err)
	}

	return drugs, nil
}

// GetInventory returns the catalog ordered by stock level ascending so the
// emptiest shelves list first.
func (r *DrugRepository) GetInventory(ctx context.Context) ([]models.Drug, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var drugs []models.Drug
	if err := database.DB.WithContext(ctx).Order("stock_quantity ASC").Find(&drugs).Error; err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return drugs, nil
}

// DecrementStock atomically reduces stock by qty and returns the fresh row.
// The conditional UPDATE guarantees stock never goes negative even with
// concurrent dispensers; the Redis lock keeps the decrement and the readback
// from interleaving with inventory edits.
func (r *DrugRepository) DecrementStock(ctx context.Context, id string, qty int) (*models.Drug, error) {
	lockKey := fmt.Sprintf("drug_lock:%s", id)
	lockValue := uuid.New().String()
	locked, err := acquireLockWithRetry(ctx, lockKey, lockValue)
	if err != nil || !locked {
		return nil, fmt.Errorf("failed to acquire drug lock: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	result := database.DB.WithContext(ctx).
		Model(&models.Drug{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing drug from an empty shelf.
		var count int64
		if err := database.DB.WithContext(ctx).Model(&models.Drug{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check drug existence: %w", err)
		}
		if count == 0 {
			return nil, ErrDrugNotFound
		}
		return nil, ErrInsufficientStock
	}

	if err := r.invalidate(ctx, id); err != nil {
		return nil, err
	}

	var drug models.Drug
	if err := database.DB.WithContext(ctx).First(&drug, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload drug: %w", err)
	}
	return &drug, nil
}

func (r *DrugRepository) invalidate(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, r.getDrugCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete drug cache: %w", err)
	}
	return r.cache.Delete(ctx, "drugs_cache")
}

func (r *DrugRepository) getDrugCacheKey(id string) string {
	return fmt.Sprintf("drug_cache:%s", id)
}

// acquireLockWithRetry attempts the Redis lock a few times before giving up.
func acquireLockWithRetry(ctx context.Context, key, value string) (bool, error) {
	const maxRetries = 3
	const retryDelay = 200 * time.Millisecond
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, key, value, 10*time.Second)
		if err == nil && locked {
			return true, nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return false, err
	}
	return false, errors.New("lock held by another operator")
}
