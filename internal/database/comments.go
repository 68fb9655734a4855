package db

import (
	"context"
	"fmt"

	"coffee_bot/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) AddComment(ctx context.Context, userID int64, userName, text string) (*models.Comment, error) {
	comment := models.Comment{UserID: userID, UserName: userName, Text: text}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment of user %d: %w", userID, err)
	}
	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment %d: %w", comment.ID, err)
	}
	return &comment, nil
}
