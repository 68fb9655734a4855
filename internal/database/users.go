package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"coffee_bot/internal/locale"
	"coffee_bot/models"

	"gorm.io/gorm"
)

const UserResource = "user"

// UserService - пользователи, язык и корзина
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserByTelegramID - поиск по telegram id, которым идентифицируется пользователь
func (s *UserService) UserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", telegramID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: UserResource, Key: "telegram_id", Value: strconv.FormatInt(telegramID, 10)}
		}
		return nil, fmt.Errorf("failed to load user %d: %w", telegramID, err)
	}
	return &user, nil
}

// UserByID - поиск по id из заказа (order.user_id)
func (s *UserService) UserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.UserByTelegramID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			notFound.Key = "id"
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Language(ctx context.Context, id int64) (locale.Language, error) {
	user, err := s.UserByTelegramID(ctx, id)
	if err != nil {
		return "", err
	}
	return locale.ParseLanguage(user.Language)
}

func (s *UserService) Register(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to register user %d: %w", user.ID, err)
	}
	return nil
}

func (s *UserService) SetLanguage(ctx context.Context, id int64, lang locale.Language) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("language", string(lang))
	if result.Error != nil {
		return fmt.Errorf("failed to set language of user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: UserResource, Key: "id", Value: strconv.FormatInt(id, 10)}
	}
	return nil
}

// ClearCart удаляет корзину и бросает черновой заказ
func (s *UserService) ClearCart(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart of user %d: %w", id, err)
		}
		err := tx.Model(&models.Order{}).
			Where("user_id = ? AND status = ?", id, models.StatusDraft).
			Update("status", models.StatusAbandoned).Error
		if err != nil {
			return fmt.Errorf("failed to abandon draft order of user %d: %w", id, err)
		}
		return nil
	})
}

// AddToCart добавляет одну единицу блюда в корзину
func (s *UserService) AddToCart(ctx context.Context, userID int64, dishID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND dish_id = ?", userID, dishID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{UserID: userID, DishID: dishID, Count: 1}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}
		item.Count++
		return tx.Model(&item).Update("count", item.Count).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add dish %d to cart of user %d: %w", dishID, userID, err)
	}
	return &item, nil
}

func (s *UserService) CartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Preload("Dish").Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cart of user %d: %w", userID, err)
	}
	return items, nil
}

// AddOrderItems увеличивает счётчик купленных позиций (программа лояльности)
func (s *UserService) AddOrderItems(ctx context.Context, id int64, count int) (*models.User, error) {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("count_orders", gorm.Expr("count_orders + ?", count))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order count of user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: UserResource, Key: "id", Value: strconv.FormatInt(id, 10)}
	}
	return s.UserByID(ctx, id)
}
