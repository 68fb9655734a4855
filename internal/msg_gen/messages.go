package messages

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"coffee_bot/internal/locale"
	"coffee_bot/models"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatNumber - число с пробелом между разрядами: 1250000 -> "1 250 000"
func FormatNumber(number decimal.Decimal) string {
	return strings.ReplaceAll(humanize.CommafWithDigits(number.InexactFloat64(), 2), ",", " ")
}

func ShippingMethodName(method models.ShippingMethod, lang locale.Language) string {
	return locale.Get("order."+string(method), lang)
}

func PaymentMethodName(method models.PaymentMethod, lang locale.Language) string {
	return locale.Get("order."+string(method), lang)
}

func DishName(dish *models.Dish, lang locale.Language) string {
	if lang == locale.UZ {
		return dish.NameUz
	}
	return dish.Name
}

// Loyalty - каждый 10-й кофе бесплатный.
// free - заказ пересёк границу десятка; remaining - сколько осталось до следующего бесплатного
func Loyalty(countOrders, added int) (free bool, remaining int) {
	newCount := countOrders + added
	if countOrders/10 != newCount/10 {
		return true, 0
	}
	return false, UntilFreeItem(newCount)
}

// UntilFreeItem - счётчик для профиля; 0 означает, что следующий кофе бесплатный
func UntilFreeItem(countOrders int) int {
	return 9 - countOrders%10
}

// FromDish - карточка блюда с ценой в сумах (или в долларах, если так настроено)
func FromDish(dish *models.Dish, lang locale.Language, currencyValue decimal.Decimal) string {
	var content strings.Builder
	description := dish.Description
	if lang == locale.UZ {
		description = dish.DescriptionUz
	}
	if description != "" {
		content.WriteString(description)
		content.WriteString("\n\n")
	}

	price := dish.Price.Mul(currencyValue)
	currency := "sum"
	if dish.ShowUSD {
		price = dish.Price
		currency = "usd"
	}
	content.WriteString(fmt.Sprintf("%s: %s %s",
		locale.Get("dish.price", lang),
		FormatNumber(price),
		locale.Get(currency, lang)))
	return content.String()
}

// FromCartItems - содержимое корзины с итогом
func FromCartItems(items []models.CartItem, lang locale.Language, total, currencyValue decimal.Decimal) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("<b>%s</b>:\n\n", locale.Get("catalog.cart", lang)))

	for i, item := range items {
		price := item.Dish.Price.Mul(currencyValue)
		content.WriteString(fmt.Sprintf("<b>%d. %s</b>\n%d x %s = %s %s\n\n",
			i+1,
			html.EscapeString(DishName(&item.Dish, lang)),
			item.Count,
			FormatNumber(price),
			FormatNumber(price.Mul(decimal.NewFromInt(int64(item.Count)))),
			locale.Get("sum", lang)))
	}

	content.WriteString(fmt.Sprintf("\n<b>%s</b>: %s %s",
		locale.Get("cart.summary", lang),
		FormatNumber(total.Mul(currencyValue)),
		locale.Get("sum", lang)))
	return content.String()
}

// FromOrder - итоговая информация о заказе перед подтверждением
func FromOrder(order *models.Order, lang locale.Language, total, currencyValue decimal.Decimal) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("<b>%s:</b>\n\n", locale.Get("your_order", lang)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("phone", lang), html.EscapeString(order.PhoneNumber)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("payment", lang), PaymentMethodName(order.PaymentMethod, lang)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("shipping_method", lang), ShippingMethodName(order.ShippingMethod, lang)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %d\n", locale.Get("count", lang), order.ItemsCount()))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s %s",
		locale.Get("cart.summary", lang),
		FormatNumber(total.Mul(currencyValue)),
		locale.Get("sum", lang)))
	return content.String()
}

// FromOrderNotification - уведомление персоналу о новом заказе (всегда на русском)
func FromOrderNotification(order *models.Order, total decimal.Decimal, countOrders int, currencyValue decimal.Decimal) string {
	lang := locale.RU
	var content strings.Builder
	content.WriteString(fmt.Sprintf("<b>%s #%d</b>\n\n", locale.Get("notifications.new_order", lang), order.ID))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("notifications.phone", lang), html.EscapeString(order.PhoneNumber)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("notifications.customer", lang), html.EscapeString(order.UserName)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("payment", lang), PaymentMethodName(order.PaymentMethod, lang)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("shipping_method", lang), ShippingMethodName(order.ShippingMethod, lang)))
	for _, item := range order.OrderItems {
		content.WriteString(fmt.Sprintf("• %s x %d\n", html.EscapeString(item.Dish.Name), item.Count))
	}
	content.WriteString(fmt.Sprintf("<b>%s:</b> %d\n", locale.Get("count", lang), order.ItemsCount()))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s %s\n",
		locale.Get("cart.summary", lang),
		FormatNumber(total.Mul(currencyValue)),
		locale.Get("sum", lang)))

	if free, remaining := Loyalty(countOrders, order.ItemsCount()); free {
		content.WriteString(locale.Get("loyalty.free_item", lang))
	} else {
		content.WriteString(locale.Getf("loyalty.until_free", lang, "count", strconv.Itoa(remaining)))
	}
	return content.String()
}

// FromCommentNotification - уведомление персоналу о новом отзыве
func FromCommentNotification(comment *models.Comment) string {
	lang := locale.RU
	var content strings.Builder
	content.WriteString(fmt.Sprintf("<b>%s</b>\n\n", locale.Get("notifications.new_comment", lang)))
	content.WriteString(fmt.Sprintf("<b>%s:</b> %s", locale.Get("notifications.from", lang), html.EscapeString(comment.UserName)))
	if comment.Author.UserName != "" {
		content.WriteString(fmt.Sprintf(" <i>@%s</i>", html.EscapeString(comment.Author.UserName)))
	}
	content.WriteString("\n")
	if comment.Author.PhoneNumber != "" {
		content.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", locale.Get("notifications.phone", lang), html.EscapeString(comment.Author.PhoneNumber)))
	}
	content.WriteString(html.EscapeString(comment.Text))
	return content.String()
}

// LabeledPrices - позиции счёта в тийинах (сумма x курс x 100)
func LabeledPrices(items []models.OrderItem, lang locale.Language, currencyValue decimal.Decimal) []tgbotapi.LabeledPrice {
	prices := make([]tgbotapi.LabeledPrice, 0, len(items))
	for _, item := range items {
		amount := item.Dish.Price.
			Mul(decimal.NewFromInt(int64(item.Count))).
			Mul(currencyValue).
			Mul(hundred)
		prices = append(prices, tgbotapi.LabeledPrice{
			Label:  fmt.Sprintf("%s x %d", DishName(&item.Dish, lang), item.Count),
			Amount: int(amount.IntPart()),
		})
	}
	return prices
}
