package menu

import (
	"coffee_bot/internal/bot_commands"
	"coffee_bot/internal/locale"
	"coffee_bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func button(key string, lang locale.Language) tgbotapi.KeyboardButton {
	return tgbotapi.NewKeyboardButton(locale.Get(key, lang))
}

func replyKeyboard(rows ...[]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// Languages - выбор языка при регистрации, подписи на обоих языках
func Languages() tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(tgbotapi.NewKeyboardButtonRow(
		button("language.ru", locale.RU),
		button("language.uz", locale.UZ),
	))
}

func MainMenu(lang locale.Language) tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(
		tgbotapi.NewKeyboardButtonRow(button("main_menu.catalog", lang), button("main_menu.cart", lang)),
		tgbotapi.NewKeyboardButtonRow(button("main_menu.profile", lang), button("main_menu.comment", lang)),
		tgbotapi.NewKeyboardButtonRow(button("main_menu.language", lang)),
	)
}

// Catalog - по две позиции в ряд, внизу корзина и главное меню
func Catalog(lang locale.Language, dishNames []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(dishNames)/2+2)
	for i := 0; i < len(dishNames); i += 2 {
		row := tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(dishNames[i]))
		if i+1 < len(dishNames) {
			row = append(row, tgbotapi.NewKeyboardButton(dishNames[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		tgbotapi.NewKeyboardButtonRow(button("main_menu.cart", lang)),
		tgbotapi.NewKeyboardButtonRow(button("go_to_menu", lang)),
	)
	return replyKeyboard(rows...)
}

func GoToMenu(lang locale.Language) tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(tgbotapi.NewKeyboardButtonRow(button("go_to_menu", lang)))
}

func Cart(lang locale.Language) tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(
		tgbotapi.NewKeyboardButtonRow(button("cart.make_order", lang)),
		tgbotapi.NewKeyboardButtonRow(button("cart.clear", lang)),
		tgbotapi.NewKeyboardButtonRow(button("go_back", lang)),
	)
}

func ShippingMethods(lang locale.Language) tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(
		tgbotapi.NewKeyboardButtonRow(button("order.pick_up", lang), button("order.delivery", lang)),
		tgbotapi.NewKeyboardButtonRow(button("go_to_menu", lang)),
	)
}

// PaymentMethods - Payme показывается только при настроенном платёжном провайдере
func PaymentMethods(lang locale.Language, withPayme bool) tgbotapi.ReplyKeyboardMarkup {
	methods := tgbotapi.NewKeyboardButtonRow(button("order.cash", lang))
	if withPayme {
		methods = append(methods, button("order.payme", lang))
	}
	return replyKeyboard(
		methods,
		tgbotapi.NewKeyboardButtonRow(button("go_back", lang), button("go_to_menu", lang)),
	)
}

// PhoneNumber - кнопка отправки контакта и, если есть, ранее сохранённый номер
func PhoneNumber(lang locale.Language, phone string) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(locale.Get("order.send_contact", lang))),
	}
	if phone != "" {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(phone)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(button("go_back", lang)))
	return replyKeyboard(rows...)
}

func Confirmation(lang locale.Language) tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(
		tgbotapi.NewKeyboardButtonRow(button("order.confirm", lang)),
		tgbotapi.NewKeyboardButtonRow(button("order.cancel", lang)),
	)
}

// PaymentConfirmation - при оплате через Payme подтверждение идёт кнопкой в счёте
func PaymentConfirmation(lang locale.Language) tgbotapi.ReplyKeyboardMarkup {
	return replyKeyboard(tgbotapi.NewKeyboardButtonRow(button("order.cancel", lang)))
}

// NotificationActions - кнопки персонала под уведомлением о заказе
func NotificationActions(orderID uint) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			locale.Get("notifications.accept", locale.RU), utils.EncodeCallback(bot_commands.Accept, orderID))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			locale.Get("notifications.cancel", locale.RU), utils.EncodeCallback(bot_commands.Cancel, orderID))),
	)
}
