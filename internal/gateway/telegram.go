package gateway

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI - часть *tgbotapi.BotAPI, которой пользуется шлюз
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Telegram - Gateway поверх Bot API
type Telegram struct {
	bot BotAPI
}

func NewTelegram(bot BotAPI) *Telegram {
	return &Telegram{bot: bot}
}

func (t *Telegram) Send(_ context.Context, msg Message) (int, error) {
	config := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	if msg.Markup != nil {
		config.ReplyMarkup = msg.Markup
	}
	if msg.HTML {
		config.ParseMode = tgbotapi.ModeHTML
	}
	sent, err := t.bot.Send(config)
	if err != nil {
		return 0, fmt.Errorf("send message to chat %d: %w", msg.ChatID, err)
	}
	return sent.MessageID, nil
}

func (t *Telegram) SendLocation(_ context.Context, chatID int64, latitude, longitude float64) error {
	if _, err := t.bot.Send(tgbotapi.NewLocation(chatID, latitude, longitude)); err != nil {
		return fmt.Errorf("send location to chat %d: %w", chatID, err)
	}
	return nil
}

func (t *Telegram) SendInvoice(_ context.Context, invoice Invoice) (int, error) {
	config := tgbotapi.NewInvoice(
		invoice.ChatID,
		invoice.Title,
		invoice.Description,
		invoice.Payload,
		invoice.ProviderToken,
		invoice.StartParameter,
		invoice.Currency,
		invoice.Prices,
	)
	// Bot API не принимает null вместо списка чаевых
	config.SuggestedTipAmounts = []int{}

	sent, err := t.bot.Send(config)
	if err != nil {
		return 0, fmt.Errorf("send invoice to chat %d: %w", invoice.ChatID, err)
	}
	return sent.MessageID, nil
}

func (t *Telegram) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := t.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

func (t *Telegram) EditKeyboard(_ context.Context, chatID int64, messageID int, markup *tgbotapi.InlineKeyboardMarkup) error {
	config := tgbotapi.EditMessageReplyMarkupConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:      chatID,
			MessageID:   messageID,
			ReplyMarkup: markup,
		},
	}
	if _, err := t.bot.Request(config); err != nil {
		return fmt.Errorf("edit keyboard of message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

func (t *Telegram) AnswerPreCheckout(_ context.Context, queryID string, ok bool, errorMessage string) error {
	config := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: queryID,
		OK:                 ok,
		ErrorMessage:       errorMessage,
	}
	if _, err := t.bot.Request(config); err != nil {
		return fmt.Errorf("answer pre-checkout query %s: %w", queryID, err)
	}
	return nil
}

func (t *Telegram) AnswerCallback(_ context.Context, callbackID, text string) error {
	if _, err := t.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("answer callback %s: %w", callbackID, err)
	}
	return nil
}
