package menu

import (
	"testing"

	"coffee_bot/internal/locale"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(keyboard tgbotapi.ReplyKeyboardMarkup) [][]string {
	rows := make([][]string, 0, len(keyboard.Keyboard))
	for _, row := range keyboard.Keyboard {
		var line []string
		for _, b := range row {
			line = append(line, b.Text)
		}
		rows = append(rows, line)
	}
	return rows
}

func TestPaymentMethods(t *testing.T) {
	cases := map[string]struct {
		withPayme bool
		expected  []string
	}{
		"cash only":  {expected: []string{"💵 Наличными"}},
		"with payme": {withPayme: true, expected: []string{"💵 Наличными", "💳 Payme"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rows := texts(PaymentMethods(locale.RU, tc.withPayme))
			require.Len(t, rows, 2)
			assert.Equal(t, tc.expected, rows[0])
			assert.Equal(t, []string{"⬅️ Назад", "🏠 Главное меню"}, rows[1])
		})
	}
}

func TestPhoneNumber(t *testing.T) {
	keyboard := PhoneNumber(locale.RU, "+998901234567")
	require.Len(t, keyboard.Keyboard, 3)
	assert.True(t, keyboard.Keyboard[0][0].RequestContact)
	assert.Equal(t, "+998901234567", keyboard.Keyboard[1][0].Text)
	assert.True(t, keyboard.ResizeKeyboard)

	assert.Len(t, PhoneNumber(locale.UZ, "").Keyboard, 2)
}

func TestCatalog(t *testing.T) {
	rows := texts(Catalog(locale.RU, []string{"Эспрессо", "Американо", "Латте"}))

	assert.Equal(t, [][]string{
		{"Эспрессо", "Американо"},
		{"Латте"},
		{"🛒 Корзина"},
		{"🏠 Главное меню"},
	}, rows)
}

func TestNotificationActions(t *testing.T) {
	markup := NotificationActions(15)

	require.Len(t, markup.InlineKeyboard, 2)
	require.NotNil(t, markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "accept15", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "cancel15", *markup.InlineKeyboard[1][0].CallbackData)
}
