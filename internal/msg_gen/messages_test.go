package messages

import (
	"testing"

	"coffee_bot/internal/locale"
	"coffee_bot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func latte() models.Dish {
	return models.Dish{
		Name:          "Латте",
		NameUz:        "Latte",
		Description:   "Эспрессо с молоком",
		DescriptionUz: "Sutli espresso",
		Price:         decimal.RequireFromString("2.5"),
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[string]struct {
		number   decimal.Decimal
		expected string
	}{
		"small":       {number: decimal.NewFromInt(950), expected: "950"},
		"thousands":   {number: decimal.NewFromInt(31250), expected: "31 250"},
		"millions":    {number: decimal.NewFromInt(1250000), expected: "1 250 000"},
		"fraction":    {number: decimal.RequireFromString("1234.5"), expected: "1 234.5"},
		"zero":        {number: decimal.Zero, expected: "0"},
		"whole float": {number: decimal.RequireFromString("12500.00"), expected: "12 500"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatNumber(tc.number))
		})
	}
}

func TestLoyalty(t *testing.T) {
	cases := map[string]struct {
		countOrders       int
		added             int
		expectedFree      bool
		expectedRemaining int
	}{
		"first order":              {countOrders: 0, added: 1, expectedFree: false, expectedRemaining: 8},
		"reaches ten":              {countOrders: 9, added: 1, expectedFree: true},
		"crosses ten":              {countOrders: 8, added: 5, expectedFree: true},
		"stays below next ten":     {countOrders: 10, added: 2, expectedFree: false, expectedRemaining: 7},
		"one before free":          {countOrders: 17, added: 1, expectedFree: false, expectedRemaining: 1},
		"nine before free":         {countOrders: 20, added: 0, expectedFree: false, expectedRemaining: 9},
		"large order crosses many": {countOrders: 3, added: 25, expectedFree: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			free, remaining := Loyalty(tc.countOrders, tc.added)
			assert.Equal(t, tc.expectedFree, free)
			if !tc.expectedFree {
				assert.Equal(t, tc.expectedRemaining, remaining)
				assert.Equal(t, 9-((tc.countOrders+tc.added)%10), remaining)
			}
		})
	}
}

func TestFromDish(t *testing.T) {
	dish := latte()
	rate := decimal.NewFromInt(12500)

	assert.Equal(t, "Эспрессо с молоком\n\nЦена: 31 250 сум", FromDish(&dish, locale.RU, rate))
	assert.Equal(t, "Sutli espresso\n\nNarxi: 31 250 so'm", FromDish(&dish, locale.UZ, rate))

	dish.ShowUSD = true
	dish.Description = ""
	assert.Equal(t, "Цена: 2.5 $", FromDish(&dish, locale.RU, rate))
}

func TestFromCartItems(t *testing.T) {
	items := []models.CartItem{{Dish: latte(), Count: 2}}
	text := FromCartItems(items, locale.RU, decimal.NewFromInt(5), decimal.NewFromInt(12500))

	assert.Contains(t, text, "<b>Корзина</b>:")
	assert.Contains(t, text, "<b>1. Латте</b>\n2 x 31 250 = 62 500 сум")
	assert.Contains(t, text, "<b>Итого</b>: 62 500 сум")
}

func TestFromOrder(t *testing.T) {
	order := &models.Order{
		PhoneNumber:    "998901234567",
		PaymentMethod:  models.Cash,
		ShippingMethod: models.PickUp,
		OrderItems:     []models.OrderItem{{Dish: latte(), Count: 3}},
	}

	text := FromOrder(order, locale.RU, decimal.RequireFromString("7.5"), decimal.NewFromInt(10000))

	assert.Contains(t, text, "<b>Телефон:</b> 998901234567")
	assert.Contains(t, text, "<b>Способ оплаты:</b> 💵 Наличными")
	assert.Contains(t, text, "<b>Способ получения:</b> 🏃 Самовывоз")
	assert.Contains(t, text, "<b>Количество:</b> 3")
	assert.Contains(t, text, "<b>Итого:</b> 75 000 сум")
}

func TestFromOrderNotification(t *testing.T) {
	order := &models.Order{
		PhoneNumber:   "+998 90 123 45 67",
		UserName:      "Ivan <script>",
		PaymentMethod: models.Payme,
		OrderItems:    []models.OrderItem{{Dish: latte(), Count: 2}},
	}
	order.ID = 15
	rate := decimal.NewFromInt(10000)

	text := FromOrderNotification(order, decimal.NewFromInt(5), 8, rate)
	assert.Contains(t, text, "<b>Новый заказ! #15</b>")
	assert.Contains(t, text, "Ivan &lt;script&gt;")
	assert.Contains(t, text, "• Латте x 2")
	assert.Contains(t, text, "Один кофе бесплатный.")

	text = FromOrderNotification(order, decimal.NewFromInt(5), 1, rate)
	assert.Contains(t, text, "До бесплатного кофе: 6")
	assert.NotContains(t, text, "Один кофе бесплатный.")
}

func TestFromCommentNotification(t *testing.T) {
	comment := &models.Comment{
		UserName: "Анна",
		Text:     "Очень вкусно",
		Author:   models.User{UserName: "anna", PhoneNumber: "+998901112233"},
	}

	assert.Equal(t,
		"<b>У вас новый отзыв!</b>\n\n<b>От кого:</b> Анна <i>@anna</i>\n<b>Номер телефона:</b> +998901112233\nОчень вкусно",
		FromCommentNotification(comment))
}

func TestLabeledPrices(t *testing.T) {
	items := []models.OrderItem{
		{Dish: latte(), Count: 2},
		{Dish: models.Dish{Name: "Чай", NameUz: "Choy", Price: decimal.RequireFromString("0.99")}, Count: 1},
	}

	prices := LabeledPrices(items, locale.UZ, decimal.NewFromInt(12500))

	assert.Equal(t, []tgbotapi.LabeledPrice{
		{Label: "Latte x 2", Amount: 6250000},
		{Label: "Choy x 1", Amount: 1237500},
	}, prices)
}
