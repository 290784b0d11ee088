package repositories

import (
	"DreyCare/cache"
	"DreyCare/database"
	"DreyCare/models"
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository struct {
	cache *cache.Cache
}

func NewMessageRepository(cache *cache.Cache) *MessageRepository {
	return &MessageRepository{cache: cache}
}

func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := database.DB.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetInbox returns messages sent to or from the user, plus messages addressed
// to the user's whole department, newest first.
func (r *MessageRepository) GetInbox(ctx context.Context, userID, role string) ([]models.Message, error) {
	var messages []models.Message
	err := database.DB.WithContext(ctx).
		Preload("FromUser", selectUserColumns).
		Preload("ToUser", selectUserColumns).
		Where("to_user_id = ? OR from_user_id = ? OR to_role = ?", userID, userID, role).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get inbox: %w", err)
	}
	return messages, nil
}

// GetForRole returns messages addressed to a whole department, newest first.
func (r *MessageRepository) GetForRole(ctx context.Context, role string) ([]models.Message, error) {
	var messages []models.Message
	err := database.DB.WithContext(ctx).
		Preload("FromUser", selectUserColumns).
		Where("to_role = ?", role).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get messages for role: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id string) (*models.Message, error) {
	result := database.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to mark message read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to mark message read: %w", gorm.ErrRecordNotFound)
	}

	var message models.Message
	if err := database.DB.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload message: %w", err)
	}
	return &message, nil
}

func selectUserColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id, name, email, role, is_online, created_at")
}
