package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"coffee_bot/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const OrderResource = "order"

// OrderService - текущий (черновой) заказ пользователя и его подтверждение
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func draftOrder(tx *gorm.DB, userID int64) (*models.Order, error) {
	var order models.Order
	err := tx.Where("user_id = ? AND status = ?", userID, models.StatusDraft).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("OrderItems.Dish").
		Preload("Location").
		Order("id DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: OrderResource, Key: "user_id", Value: strconv.FormatInt(userID, 10)}
		}
		return nil, fmt.Errorf("failed to load draft order of user %d: %w", userID, err)
	}
	return &order, nil
}

// StartOrder создаёт черновой заказ (или берёт существующий) и переносит в него корзину
func (s *OrderService) StartOrder(ctx context.Context, userID int64) (*models.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&cart).Error; err != nil {
			return fmt.Errorf("failed to load cart of user %d: %w", userID, err)
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		order, err := draftOrder(tx, userID)
		if IsNotFound(err) {
			order = &models.Order{
				UserID:         userID,
				Status:         models.StatusDraft,
				ShippingMethod: models.PickUp,
				PaymentMethod:  models.Cash,
			}
			if err := tx.Create(order).Error; err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}
		} else if err != nil {
			return err
		}

		if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to reset items of order %d: %w", order.ID, err)
		}
		items := make([]models.OrderItem, 0, len(cart))
		for _, ci := range cart {
			items = append(items, models.OrderItem{OrderID: order.ID, DishID: ci.DishID, Count: ci.Count})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to fill order %d: %w", order.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.CurrentOrder(ctx, userID)
}

func (s *OrderService) updateDraft(ctx context.Context, userID int64, column string, value any) error {
	result := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.StatusDraft).
		Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s of user %d order: %w", column, userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: OrderResource, Key: "user_id", Value: strconv.FormatInt(userID, 10)}
	}
	return nil
}

// SetShippingMethod - геопозиция есть только у доставки, при самовывозе она удаляется
func (s *OrderService) SetShippingMethod(ctx context.Context, userID int64, method models.ShippingMethod) error {
	if method == models.Delivery {
		return s.updateDraft(ctx, userID, "shipping_method", method)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := draftOrder(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("shipping_method", method).Error; err != nil {
			return fmt.Errorf("failed to update shipping_method of order %d: %w", order.ID, err)
		}
		if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&models.Location{}).Error; err != nil {
			return fmt.Errorf("failed to reset location of order %d: %w", order.ID, err)
		}
		return nil
	})
}

func (s *OrderService) SetPaymentMethod(ctx context.Context, userID int64, method models.PaymentMethod) error {
	return s.updateDraft(ctx, userID, "payment_method", method)
}

// SetPhoneNumber пустая строка очищает номер в заказе; непустой номер запоминается и у пользователя
func (s *OrderService) SetPhoneNumber(ctx context.Context, userID int64, phone string) (*models.Order, error) {
	if err := s.updateDraft(ctx, userID, "phone_number", phone); err != nil {
		return nil, err
	}
	if phone != "" {
		err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("phone_number", phone).Error
		if err != nil {
			return nil, fmt.Errorf("failed to save phone of user %d: %w", userID, err)
		}
	}
	return s.CurrentOrder(ctx, userID)
}

func (s *OrderService) SetLocation(ctx context.Context, userID int64, latitude, longitude float64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := draftOrder(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&models.Location{}).Error; err != nil {
			return fmt.Errorf("failed to reset location of order %d: %w", order.ID, err)
		}
		location := models.Location{OrderID: order.ID, Latitude: latitude, Longitude: longitude}
		if err := tx.Create(&location).Error; err != nil {
			return fmt.Errorf("failed to save location of order %d: %w", order.ID, err)
		}
		return nil
	})
}

func (s *OrderService) CurrentOrder(ctx context.Context, userID int64) (*models.Order, error) {
	return draftOrder(s.db.WithContext(ctx), userID)
}

// ConfirmOrder переводит черновик в CONFIRMED и очищает корзину
func (s *OrderService) ConfirmOrder(ctx context.Context, userID int64, userName string, total decimal.Decimal) (*models.Order, error) {
	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := draftOrder(tx, userID)
		if err != nil {
			return err
		}
		if len(order.OrderItems) == 0 {
			return ErrEmptyOrder
		}

		now := time.Now()
		err = tx.Model(order).Updates(map[string]any{
			"status":       models.StatusConfirmed,
			"user_name":    userName,
			"total":        total,
			"confirmed_at": &now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to confirm order %d: %w", order.ID, err)
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart of user %d: %w", userID, err)
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.OrderByID(ctx, orderID)
}

func (s *OrderService) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("OrderItems.Dish").
		Preload("Location").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: OrderResource, Key: "id", Value: strconv.FormatUint(uint64(id), 10)}
		}
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}

// Decide записывает ответ персонала на заказ. false - на заказ уже ответили из другого чата.
func (s *OrderService) Decide(ctx context.Context, orderID uint, decision string, chatID int64) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.OrderDecision{OrderID: orderID, Decision: decision, ChatID: chatID})
	if result.Error != nil {
		return false, fmt.Errorf("failed to save decision on order %d: %w", orderID, result.Error)
	}
	return result.RowsAffected == 1, nil
}
