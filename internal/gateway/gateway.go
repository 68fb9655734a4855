// Package gateway - исходящие сообщения бота.
package gateway

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Message struct {
	ChatID int64
	Text   string
	// Markup - клавиатура tgbotapi (Reply/Inline/Remove), nil - без клавиатуры
	Markup any
	HTML   bool
}

type Invoice struct {
	ChatID         int64
	Title          string
	Description    string
	Payload        string
	ProviderToken  string
	Currency       string
	Prices         []tgbotapi.LabeledPrice
	StartParameter string
}

type Gateway interface {
	// Send возвращает id отправленного сообщения
	Send(ctx context.Context, msg Message) (int, error)
	SendLocation(ctx context.Context, chatID int64, latitude, longitude float64) error
	SendInvoice(ctx context.Context, invoice Invoice) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	// EditKeyboard с nil убирает inline-кнопки у сообщения
	EditKeyboard(ctx context.Context, chatID int64, messageID int, markup *tgbotapi.InlineKeyboardMarkup) error
	AnswerPreCheckout(ctx context.Context, queryID string, ok bool, errorMessage string) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}
