// Package dbtest - база в памяти для тестов пакетов, работающих с сервисами db.
package dbtest

import (
	"context"
	"testing"

	db "coffee_bot/internal/database"
	"coffee_bot/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open - мигрированная SQLite с тестовым меню
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.SeedTestData(context.Background(), gdb))
	return gdb
}

// CreateUser регистрирует пользователя Ivan Petrov с языком lang
func CreateUser(t *testing.T, gdb *gorm.DB, id int64, lang string) *models.User {
	t.Helper()
	user := &models.User{ID: id, FirstName: "Ivan", LastName: "Petrov", UserName: "ivan", Language: lang}
	require.NoError(t, db.NewUserService(gdb).Register(context.Background(), user))
	return user
}

// FillCart добавляет в корзину по одной единице каждого блюда из списка
func FillCart(t *testing.T, gdb *gorm.DB, userID int64, names ...string) {
	t.Helper()
	catalog := db.NewCatalogService(gdb)
	users := db.NewUserService(gdb)
	for _, name := range names {
		dish, err := catalog.DishByName(context.Background(), name)
		require.NoError(t, err)
		_, err = users.AddToCart(context.Background(), userID, dish.ID)
		require.NoError(t, err)
	}
}
