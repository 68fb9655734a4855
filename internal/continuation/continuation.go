// Package continuation хранит для каждого чата шаг диалога, которому достанется следующее сообщение.
package continuation

import (
	"context"

	"github.com/shopspring/decimal"
)

// State - тег обработчика следующего сообщения
type State string

// Continuation - обработчик и связанные с ним аргументы
type Continuation struct {
	State State `json:"state"`
	// Total - сумма заказа, посчитанная на шаге подтверждения
	Total decimal.Decimal `json:"total"`
	// InvoiceMessageID - сообщение со счётом Payme, 0 если счёт не выставлялся
	InvoiceMessageID int `json:"invoice_message_id,omitempty"`
}

// Store - не больше одного продолжения на чат, Register перезаписывает предыдущее
type Store interface {
	Register(ctx context.Context, chatID int64, c Continuation) error
	// Take возвращает продолжение и удаляет его
	Take(ctx context.Context, chatID int64) (Continuation, bool, error)
	Get(ctx context.Context, chatID int64) (Continuation, bool, error)
	Clear(ctx context.Context, chatID int64) error
}
