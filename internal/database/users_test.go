package db

import (
	"context"
	"testing"

	"coffee_bot/internal/locale"
	"coffee_bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Lookup(t *testing.T) {
	gdb := setupTestDB(t)
	createUser(t, gdb, 42)
	users := NewUserService(gdb)
	ctx := context.Background()

	user, err := users.UserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", user.FullUserName())

	_, err = users.UserByTelegramID(ctx, 43)
	assert.EqualError(t, err, "user with telegram_id 43 not found")

	_, err = users.UserByID(ctx, 43)
	assert.EqualError(t, err, "user with id 43 not found")
}

func TestUserService_Language(t *testing.T) {
	gdb := setupTestDB(t)
	createUser(t, gdb, 1)
	users := NewUserService(gdb)
	ctx := context.Background()

	lang, err := users.Language(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, locale.RU, lang)

	require.NoError(t, users.SetLanguage(ctx, 1, locale.UZ))
	lang, err = users.Language(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, locale.UZ, lang)

	assert.True(t, IsNotFound(users.SetLanguage(ctx, 2, locale.UZ)))

	require.NoError(t, gdb.Model(&models.User{}).Where("id = ?", 1).Update("language", "en").Error)
	_, err = users.Language(ctx, 1)
	assert.ErrorIs(t, err, locale.ErrInvalidLanguage)
}

func TestUserService_Cart(t *testing.T) {
	gdb := setupTestDB(t)
	createUser(t, gdb, 1)
	users := NewUserService(gdb)
	ctx := context.Background()

	fillCart(t, gdb, 1, "Латте", "Эспрессо", "Латте")

	items, err := users.CartItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Латте", items[0].Dish.Name)
	assert.Equal(t, 2, items[0].Count)
	assert.Equal(t, 1, items[1].Count)

	_, err = NewOrderService(gdb).StartOrder(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, users.ClearCart(ctx, 1))

	items, err = users.CartItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	var order models.Order
	require.NoError(t, gdb.Where("user_id = ?", 1).First(&order).Error)
	assert.Equal(t, models.StatusAbandoned, order.Status)
}

func TestUserService_AddOrderItems(t *testing.T) {
	gdb := setupTestDB(t)
	createUser(t, gdb, 1)
	users := NewUserService(gdb)
	ctx := context.Background()

	user, err := users.AddOrderItems(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, user.CountOrders)

	user, err = users.AddOrderItems(ctx, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 11, user.CountOrders)

	_, err = users.AddOrderItems(ctx, 5, 1)
	assert.True(t, IsNotFound(err))
}
