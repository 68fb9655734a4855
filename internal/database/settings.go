package db

import (
	"context"
	"errors"
	"fmt"

	"coffee_bot/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const currencyValueKey = "currency_value"

// SettingsService - курс доллара к суму, по которому пересчитываются цены
type SettingsService struct {
	db           *gorm.DB
	defaultValue decimal.Decimal
}

func NewSettingsService(db *gorm.DB, defaultCurrencyValue decimal.Decimal) *SettingsService {
	return &SettingsService{db: db, defaultValue: defaultCurrencyValue}
}

func (s *SettingsService) CurrencyValue(ctx context.Context) (decimal.Decimal, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where(&models.Setting{Key: currencyValueKey}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultValue, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load currency value: %w", err)
	}
	value, err := decimal.NewFromString(setting.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored currency value %q: %w", setting.Value, err)
	}
	return value, nil
}

func (s *SettingsService) SetCurrencyValue(ctx context.Context, value decimal.Decimal) error {
	if !value.IsPositive() {
		return fmt.Errorf("currency value must be positive, got %s", value)
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&models.Setting{Key: currencyValueKey, Value: value.String()}).Error
	if err != nil {
		return fmt.Errorf("failed to save currency value: %w", err)
	}
	return nil
}
