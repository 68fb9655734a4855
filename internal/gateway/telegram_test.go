package gateway

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBotAPI struct {
	mock.Mock
}

func (m *mockBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return args.Get(0).(tgbotapi.Message), args.Error(1)
}

func (m *mockBotAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	resp, _ := args.Get(0).(*tgbotapi.APIResponse)
	return resp, args.Error(1)
}

func TestTelegram_Send(t *testing.T) {
	keyboard := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("ok")))

	cases := map[string]struct {
		msg           Message
		expected      tgbotapi.MessageConfig
		sendErr       error
		expectedID    int
		expectedError string
	}{
		"html with keyboard": {
			msg: Message{ChatID: 1, Text: "<b>hi</b>", Markup: keyboard, HTML: true},
			expected: func() tgbotapi.MessageConfig {
				c := tgbotapi.NewMessage(1, "<b>hi</b>")
				c.ReplyMarkup = keyboard
				c.ParseMode = tgbotapi.ModeHTML
				return c
			}(),
			expectedID: 10,
		},
		"plain text": {
			msg:        Message{ChatID: 2, Text: "hi"},
			expected:   tgbotapi.NewMessage(2, "hi"),
			expectedID: 11,
		},
		"api error": {
			msg:           Message{ChatID: 3, Text: "hi"},
			expected:      tgbotapi.NewMessage(3, "hi"),
			sendErr:       errors.New("Forbidden: bot was blocked by the user"),
			expectedError: "send message to chat 3: Forbidden: bot was blocked by the user",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			bot := new(mockBotAPI)
			bot.On("Send", tc.expected).Return(tgbotapi.Message{MessageID: tc.expectedID}, tc.sendErr)

			id, err := NewTelegram(bot).Send(context.Background(), tc.msg)

			if tc.expectedError != "" {
				assert.EqualError(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectedID, id)
			bot.AssertExpectations(t)
		})
	}
}

func TestTelegram_SendInvoice(t *testing.T) {
	bot := new(mockBotAPI)
	prices := []tgbotapi.LabeledPrice{{Label: "Latte x 2", Amount: 6250000}}

	bot.On("Send", mock.MatchedBy(func(c tgbotapi.InvoiceConfig) bool {
		return c.ChatID == 5 &&
			c.Title == "Заказ №1" &&
			c.Payload == "5" &&
			c.ProviderToken == "token" &&
			c.Currency == "UZS" &&
			c.StartParameter == "start" &&
			len(c.Prices) == 1 &&
			c.SuggestedTipAmounts != nil
	})).Return(tgbotapi.Message{MessageID: 77}, nil)

	id, err := NewTelegram(bot).SendInvoice(context.Background(), Invoice{
		ChatID:         5,
		Title:          "Заказ №1",
		Description:    "Оплата",
		Payload:        "5",
		ProviderToken:  "token",
		Currency:       "UZS",
		Prices:         prices,
		StartParameter: "start",
	})

	require.NoError(t, err)
	assert.Equal(t, 77, id)
	bot.AssertExpectations(t)
}

func TestTelegram_Requests(t *testing.T) {
	ctx := context.Background()
	ok := &tgbotapi.APIResponse{Ok: true}

	cases := map[string]struct {
		expected tgbotapi.Chattable
		call     func(g *Telegram) error
	}{
		"delete message": {
			expected: tgbotapi.NewDeleteMessage(1, 2),
			call:     func(g *Telegram) error { return g.DeleteMessage(ctx, 1, 2) },
		},
		"remove keyboard": {
			expected: tgbotapi.EditMessageReplyMarkupConfig{BaseEdit: tgbotapi.BaseEdit{ChatID: -100, MessageID: 3}},
			call:     func(g *Telegram) error { return g.EditKeyboard(ctx, -100, 3, nil) },
		},
		"answer pre-checkout": {
			expected: tgbotapi.PreCheckoutConfig{PreCheckoutQueryID: "q1", OK: true},
			call:     func(g *Telegram) error { return g.AnswerPreCheckout(ctx, "q1", true, "") },
		},
		"answer callback": {
			expected: tgbotapi.NewCallback("c1", ""),
			call:     func(g *Telegram) error { return g.AnswerCallback(ctx, "c1", "") },
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			bot := new(mockBotAPI)
			bot.On("Request", tc.expected).Return(ok, nil)

			assert.NoError(t, tc.call(NewTelegram(bot)))
			bot.AssertExpectations(t)
		})
	}
}

func TestTelegram_SendLocationError(t *testing.T) {
	bot := new(mockBotAPI)
	bot.On("Send", tgbotapi.NewLocation(1, 41.3, 69.2)).Return(tgbotapi.Message{}, errors.New("chat not found"))

	err := NewTelegram(bot).SendLocation(context.Background(), 1, 41.3, 69.2)
	assert.EqualError(t, err, "send location to chat 1: chat not found")
}
