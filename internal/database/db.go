package db

import (
	"context"
	"fmt"

	"coffee_bot/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Location{},
		&models.OrderDecision{},
		&models.NotificationChat{},
		&models.Comment{},
		&models.Setting{},
	)
}

// SeedTestData заполняет меню, если оно пустое
func SeedTestData(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Dish{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count dishes: %w", err)
	}
	if count > 0 {
		return nil
	}

	dishes := []models.Dish{
		{Name: "Эспрессо", NameUz: "Espresso", Description: "Классический эспрессо", DescriptionUz: "Klassik espresso", Price: decimal.RequireFromString("1.6")},
		{Name: "Американо", NameUz: "Amerikano", Description: "Эспрессо с горячей водой", DescriptionUz: "Issiq suvli espresso", Price: decimal.RequireFromString("1.8")},
		{Name: "Капучино", NameUz: "Kapuchino", Description: "Эспрессо с молочной пенкой", DescriptionUz: "Sut ko'pikli espresso", Price: decimal.RequireFromString("2.4")},
		{Name: "Латте", NameUz: "Latte", Description: "Эспрессо с молоком", DescriptionUz: "Sutli espresso", Price: decimal.RequireFromString("2.5")},
		{Name: "Зелёный чай", NameUz: "Ko'k choy", Description: "Чайник зелёного чая", DescriptionUz: "Bir choynak ko'k choy", Price: decimal.RequireFromString("1.2")},
	}
	for i := range dishes {
		if err := db.WithContext(ctx).Create(&dishes[i]).Error; err != nil {
			return fmt.Errorf("failed to create dish: %w", err)
		}
	}
	return nil
}
