package db

import (
	"context"
	"fmt"

	"coffee_bot/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotifyService - чаты персонала, подписанные на уведомления
type NotifyService struct {
	db *gorm.DB
}

func NewNotifyService(db *gorm.DB) *NotifyService {
	return &NotifyService{db: db}
}

// AddChat возвращает false, если чат уже подписан
func (s *NotifyService) AddChat(ctx context.Context, chatID int64, title string) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.NotificationChat{ChatID: chatID, Title: title})
	if result.Error != nil {
		return false, fmt.Errorf("failed to add notification chat %d: %w", chatID, result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (s *NotifyService) Chats(ctx context.Context) ([]models.NotificationChat, error) {
	var chats []models.NotificationChat
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("failed to load notification chats: %w", err)
	}
	return chats, nil
}
