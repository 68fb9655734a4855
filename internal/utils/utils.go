package utils

import (
	"fmt"
	"strconv"
	"strings"

	"coffee_bot/internal/bot_commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// EncodeCallback кодирует действие над заказом: accept42
func EncodeCallback(command string, orderID uint) string {
	return command + strconv.FormatUint(uint64(orderID), 10)
}

// DecodeCallback разбирает данные кнопки уведомления на команду и id заказа
func DecodeCallback(data string) (string, uint, error) {
	for _, command := range []string{bot_commands.Accept, bot_commands.Cancel} {
		rest, ok := strings.CutPrefix(data, command)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil || id == 0 {
			return command, 0, fmt.Errorf("invalid order id in callback %q", data)
		}
		return command, uint(id), nil
	}
	return "", 0, fmt.Errorf("unknown callback %q", data)
}

// CommandArgs - текст после команды: "/currency 12500" -> "12500"
func CommandArgs(text string) string {
	_, args, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(args)
}

type webhookSetter interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

func SetWebhook(bot webhookSetter, webhookURL string) error {
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := bot.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}
