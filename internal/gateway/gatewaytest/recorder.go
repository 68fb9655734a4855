// Package gatewaytest - записывающий Gateway для тестов.
package gatewaytest

import (
	"context"
	"sync"

	"coffee_bot/internal/gateway"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Location struct {
	ChatID    int64
	Latitude  float64
	Longitude float64
}

type Deleted struct {
	ChatID    int64
	MessageID int
}

type Edited struct {
	ChatID    int64
	MessageID int
	Markup    *tgbotapi.InlineKeyboardMarkup
}

type PreCheckoutAnswer struct {
	QueryID string
	OK      bool
}

type CallbackAnswer struct {
	CallbackID string
	Text       string
}

// Recorder запоминает всё, что бот отправил. Отправка в чаты из Fail завершается ошибкой.
type Recorder struct {
	mu sync.Mutex

	Fail map[int64]error

	Messages           []gateway.Message
	Locations          []Location
	Invoices           []gateway.Invoice
	Deleted            []Deleted
	Edited             []Edited
	PreCheckoutAnswers []PreCheckoutAnswer
	CallbackAnswers    []CallbackAnswer

	nextID int
}

func New() *Recorder {
	return &Recorder{Fail: make(map[int64]error), nextID: 100}
}

func (r *Recorder) Send(_ context.Context, msg gateway.Message) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Fail[msg.ChatID]; err != nil {
		return 0, err
	}
	r.Messages = append(r.Messages, msg)
	r.nextID++
	return r.nextID, nil
}

func (r *Recorder) SendLocation(_ context.Context, chatID int64, latitude, longitude float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Fail[chatID]; err != nil {
		return err
	}
	r.Locations = append(r.Locations, Location{ChatID: chatID, Latitude: latitude, Longitude: longitude})
	return nil
}

func (r *Recorder) SendInvoice(_ context.Context, invoice gateway.Invoice) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Fail[invoice.ChatID]; err != nil {
		return 0, err
	}
	r.Invoices = append(r.Invoices, invoice)
	r.nextID++
	return r.nextID, nil
}

func (r *Recorder) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Deleted = append(r.Deleted, Deleted{ChatID: chatID, MessageID: messageID})
	return nil
}

func (r *Recorder) EditKeyboard(_ context.Context, chatID int64, messageID int, markup *tgbotapi.InlineKeyboardMarkup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Edited = append(r.Edited, Edited{ChatID: chatID, MessageID: messageID, Markup: markup})
	return nil
}

func (r *Recorder) AnswerPreCheckout(_ context.Context, queryID string, ok bool, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PreCheckoutAnswers = append(r.PreCheckoutAnswers, PreCheckoutAnswer{QueryID: queryID, OK: ok})
	return nil
}

func (r *Recorder) AnswerCallback(_ context.Context, callbackID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CallbackAnswers = append(r.CallbackAnswers, CallbackAnswer{CallbackID: callbackID, Text: text})
	return nil
}

// MessagesTo - сообщения, отправленные в чат
func (r *Recorder) MessagesTo(chatID int64) []gateway.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []gateway.Message
	for _, msg := range r.Messages {
		if msg.ChatID == chatID {
			result = append(result, msg)
		}
	}
	return result
}

// Last - последнее сообщение в чат, пустое если сообщений не было
func (r *Recorder) Last(chatID int64) gateway.Message {
	msgs := r.MessagesTo(chatID)
	if len(msgs) == 0 {
		return gateway.Message{}
	}
	return msgs[len(msgs)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = nil
	r.Locations = nil
	r.Invoices = nil
	r.Deleted = nil
	r.Edited = nil
	r.PreCheckoutAnswers = nil
	r.CallbackAnswers = nil
}

var _ gateway.Gateway = (*Recorder)(nil)
