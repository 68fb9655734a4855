// Package notifications рассылает заказы и отзывы в чаты персонала и обрабатывает их ответы.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coffee_bot/internal/bot_commands"
	db "coffee_bot/internal/database"
	"coffee_bot/internal/gateway"
	menu "coffee_bot/internal/keyboards"
	"coffee_bot/internal/locale"
	messages "coffee_bot/internal/msg_gen"
	"coffee_bot/internal/utils"
	"coffee_bot/models"

	"github.com/shopspring/decimal"
)

type ChatRegistry interface {
	AddChat(ctx context.Context, chatID int64, title string) (bool, error)
	Chats(ctx context.Context) ([]models.NotificationChat, error)
}

type UserService interface {
	Language(ctx context.Context, id int64) (locale.Language, error)
	AddOrderItems(ctx context.Context, id int64, count int) (*models.User, error)
	ClearCart(ctx context.Context, id int64) error
}

type OrderService interface {
	OrderByID(ctx context.Context, id uint) (*models.Order, error)
	Decide(ctx context.Context, orderID uint, decision string, chatID int64) (bool, error)
}

type CurrencySource interface {
	CurrencyValue(ctx context.Context) (decimal.Decimal, error)
}

// Result - итог доставки в один чат, Err == nil при успехе
type Result struct {
	ChatID int64
	Err    error
}

type Notifier struct {
	gateway gateway.Gateway
	chats   ChatRegistry
	users   UserService
	orders  OrderService
	rates   CurrencySource
	logger  *slog.Logger
}

func NewNotifier(gw gateway.Gateway, chats ChatRegistry, users UserService, orders OrderService,
	rates CurrencySource, logger *slog.Logger) *Notifier {
	return &Notifier{
		gateway: gw,
		chats:   chats,
		users:   users,
		orders:  orders,
		rates:   rates,
		logger:  logger,
	}
}

// NotifyNewOrder отправляет заказ во все подписанные чаты.
// Ошибка доставки в один чат не прерывает рассылку и не возвращается вызывающему.
func (n *Notifier) NotifyNewOrder(ctx context.Context, order *models.Order, total decimal.Decimal, countOrders int) []Result {
	logger := n.logger.With(slog.Uint64("order_id", uint64(order.ID)))

	chats, err := n.chats.Chats(ctx)
	if err != nil {
		logger.Error("notification_chats_load_failed", slog.String("error", err.Error()))
		return nil
	}
	rate, err := n.rates.CurrencyValue(ctx)
	if err != nil {
		logger.Error("currency_value_load_failed", slog.String("error", err.Error()))
		return nil
	}

	text := messages.FromOrderNotification(order, total, countOrders, rate)
	markup := menu.NotificationActions(order.ID)

	location := order.Location
	if order.ShippingMethod != models.Delivery {
		location = nil
	}

	results := make([]Result, 0, len(chats))
	for _, chat := range chats {
		err := n.deliverOrder(ctx, chat.ChatID, text, markup, location)
		if err != nil {
			logger.Warn("notification_send_failed", slog.Int64("chat_id", chat.ChatID), slog.String("error", err.Error()))
		}
		results = append(results, Result{ChatID: chat.ChatID, Err: err})
	}
	return results
}

func (n *Notifier) deliverOrder(ctx context.Context, chatID int64, text string, markup any, location *models.Location) error {
	if _, err := n.gateway.Send(ctx, gateway.Message{ChatID: chatID, Text: text, Markup: markup, HTML: true}); err != nil {
		return err
	}
	if location != nil {
		return n.gateway.SendLocation(ctx, chatID, location.Latitude, location.Longitude)
	}
	return nil
}

func (n *Notifier) NotifyNewComment(ctx context.Context, comment *models.Comment) []Result {
	chats, err := n.chats.Chats(ctx)
	if err != nil {
		n.logger.Error("notification_chats_load_failed", slog.String("error", err.Error()))
		return nil
	}

	text := messages.FromCommentNotification(comment)
	results := make([]Result, 0, len(chats))
	for _, chat := range chats {
		_, err := n.gateway.Send(ctx, gateway.Message{ChatID: chat.ChatID, Text: text, HTML: true})
		if err != nil {
			n.logger.Warn("comment_notification_send_failed",
				slog.Int64("chat_id", chat.ChatID),
				slog.Uint64("comment_id", uint64(comment.ID)),
				slog.String("error", err.Error()))
		}
		results = append(results, Result{ChatID: chat.ChatID, Err: err})
	}
	return results
}

// Subscribe - /notify в группе подписывает чат на уведомления
func (n *Notifier) Subscribe(ctx context.Context, msg *models.Message) error {
	added, err := n.chats.AddChat(ctx, msg.ChatID, msg.ChatTitle)
	if err != nil {
		return err
	}
	key := "notifications.success"
	if !added {
		key = "notifications.exist"
	}
	_, err = n.gateway.Send(ctx, gateway.Message{ChatID: msg.ChatID, Text: locale.Get(key, locale.RU)})
	return err
}

// HandleCallback - ответ персонала на уведомление: accept<id> или cancel<id>
func (n *Notifier) HandleCallback(ctx context.Context, query *models.CallbackQuery) error {
	command, orderID, err := utils.DecodeCallback(query.Data)
	if err != nil {
		n.logger.Warn("notification_callback_invalid", slog.String("data", query.Data), slog.String("error", err.Error()))
		return n.gateway.AnswerCallback(ctx, query.ID, locale.Get("notifications.order_not_found", locale.RU))
	}

	order, err := n.orders.OrderByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			n.logger.Warn("notification_callback_order_not_found", slog.Uint64("order_id", uint64(orderID)))
			return n.gateway.AnswerCallback(ctx, query.ID, locale.Get("notifications.order_not_found", locale.RU))
		}
		return err
	}

	lang, err := n.users.Language(ctx, order.UserID)
	if err != nil {
		if !db.IsNotFound(err) && !errors.Is(err, locale.ErrInvalidLanguage) {
			return err
		}
		lang = locale.RU
	}

	// у каждого чата свои кнопки, учитывается только первый ответ
	first, err := n.orders.Decide(ctx, order.ID, command, query.ChatID)
	if err != nil {
		return err
	}
	if !first {
		n.logger.Info("notification_callback_already_decided",
			slog.Uint64("order_id", uint64(order.ID)), slog.Int64("chat_id", query.ChatID))
		n.removeActions(ctx, query)
		return n.gateway.AnswerCallback(ctx, query.ID, locale.Get("notifications.already_decided", locale.RU))
	}

	switch command {
	case bot_commands.Accept:
		err = n.accept(ctx, order, lang)
	case bot_commands.Cancel:
		err = n.cancel(ctx, order, lang)
	}
	if err != nil {
		return err
	}

	n.removeActions(ctx, query)
	return n.gateway.AnswerCallback(ctx, query.ID, "")
}

func (n *Notifier) removeActions(ctx context.Context, query *models.CallbackQuery) {
	if err := n.gateway.EditKeyboard(ctx, query.ChatID, query.MessageID, nil); err != nil {
		n.logger.Warn("notification_keyboard_remove_failed", slog.Int64("chat_id", query.ChatID), slog.String("error", err.Error()))
	}
}

func (n *Notifier) accept(ctx context.Context, order *models.Order, lang locale.Language) error {
	user, err := n.users.AddOrderItems(ctx, order.UserID, order.ItemsCount())
	if err != nil {
		return fmt.Errorf("accept order %d: %w", order.ID, err)
	}

	loyalty := locale.Getf("loyalty.until_free", lang, "count", fmt.Sprint(messages.UntilFreeItem(user.CountOrders)))
	if messages.UntilFreeItem(user.CountOrders) == 0 {
		loyalty = locale.Get("loyalty.next_free", lang)
	}
	n.tell(ctx, order.UserID, locale.Get("notifications.accepted", lang), false)
	n.tell(ctx, order.UserID, "<b>"+loyalty+"</b>", true)
	return nil
}

func (n *Notifier) cancel(ctx context.Context, order *models.Order, lang locale.Language) error {
	if err := n.users.ClearCart(ctx, order.UserID); err != nil {
		return fmt.Errorf("cancel order %d: %w", order.ID, err)
	}
	n.tell(ctx, order.UserID, locale.Get("notifications.canceled", lang), false)
	return nil
}

// tell - покупатель мог заблокировать бота, это не мешает обработать ответ персонала
func (n *Notifier) tell(ctx context.Context, userID int64, text string, html bool) {
	if _, err := n.gateway.Send(ctx, gateway.Message{ChatID: userID, Text: text, HTML: html}); err != nil {
		n.logger.Warn("customer_notification_failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
	}
}
