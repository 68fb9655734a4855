package db

import (
	"context"
	"errors"
	"fmt"

	"coffee_bot/models"

	"gorm.io/gorm"
)

const DishResource = "dish"

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) Dishes(ctx context.Context) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := s.db.WithContext(ctx).Where("hidden = ?", false).Order("id ASC").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("failed to load dishes: %w", err)
	}
	return dishes, nil
}

// DishByName ищет блюдо по названию на любом из языков (текст кнопки каталога)
func (s *CatalogService) DishByName(ctx context.Context, name string) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.WithContext(ctx).
		Where("hidden = ? AND (name = ? OR name_uz = ?)", false, name, name).
		First(&dish).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: DishResource, Key: "name", Value: name}
		}
		return nil, fmt.Errorf("failed to load dish %q: %w", name, err)
	}
	return &dish, nil
}
