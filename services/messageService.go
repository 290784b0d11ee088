package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"context"
	"errors"
)

type MessageService struct {
	repository *repositories.MessageRepository
}

func NewMessageService(repository *repositories.MessageRepository) *MessageService {
	return &MessageService{repository: repository}
}

// Send delivers a note to a specific user or to a whole department role.
func (s *MessageService) Send(ctx context.Context, message *models.Message) error {
	if message.ToUserID == "" && message.ToRole == "" {
		return errors.New("message needs a recipient user or role")
	}
	if message.ToRole != "" && !models.ValidRole(message.ToRole) {
		return errors.New("unknown recipient role")
	}
	return s.repository.Create(ctx, message)
}

// Inbox returns the user's own correspondence merged with anything addressed
// to their department.
func (s *MessageService) Inbox(ctx context.Context, userID, role string) ([]models.Message, error) {
	return s.repository.GetInbox(ctx, userID, role)
}

// DepartmentBoard lists only the messages addressed to a whole role.
func (s *MessageService) DepartmentBoard(ctx context.Context, role string) ([]models.Message, error) {
	if !models.ValidRole(role) {
		return nil, errors.New("unknown role")
	}
	return s.repository.GetForRole(ctx, role)
}

func (s *MessageService) MarkRead(ctx context.Context, id string) (*models.Message, error) {
	return s.repository.MarkRead(ctx, id)
}
