// Package checkout - пошаговое оформление заказа в чате.
//
// Каждый шаг регистрирует продолжение (continuation.State), которому достанется
// следующее сообщение пользователя. Роутер забирает продолжение из хранилища и
// передаёт сообщение в Dispatch.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"coffee_bot/internal/bot_commands"
	"coffee_bot/internal/config"
	"coffee_bot/internal/continuation"
	db "coffee_bot/internal/database"
	"coffee_bot/internal/gateway"
	menu "coffee_bot/internal/keyboards"
	"coffee_bot/internal/locale"
	messages "coffee_bot/internal/msg_gen"
	"coffee_bot/internal/notifications"
	"coffee_bot/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ShippingMethod continuation.State = "checkout.shipping_method"
	PaymentMethod  continuation.State = "checkout.payment_method"
	PhoneNumber    continuation.State = "checkout.phone_number"
	Confirmation   continuation.State = "checkout.confirmation"
)

type OrderService interface {
	StartOrder(ctx context.Context, userID int64) (*models.Order, error)
	SetShippingMethod(ctx context.Context, userID int64, method models.ShippingMethod) error
	SetPaymentMethod(ctx context.Context, userID int64, method models.PaymentMethod) error
	SetPhoneNumber(ctx context.Context, userID int64, phone string) (*models.Order, error)
	SetLocation(ctx context.Context, userID int64, latitude, longitude float64) error
	CurrentOrder(ctx context.Context, userID int64) (*models.Order, error)
	ConfirmOrder(ctx context.Context, userID int64, userName string, total decimal.Decimal) (*models.Order, error)
}

type UserService interface {
	UserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	Language(ctx context.Context, id int64) (locale.Language, error)
	ClearCart(ctx context.Context, id int64) error
}

type Notifier interface {
	NotifyNewOrder(ctx context.Context, order *models.Order, total decimal.Decimal, countOrders int) []notifications.Result
}

type CurrencySource interface {
	CurrencyValue(ctx context.Context) (decimal.Decimal, error)
}

// Navigator - переходы за пределы оформления заказа. Пустой text - сообщение по умолчанию.
type Navigator interface {
	Welcome(ctx context.Context, msg *models.Message) error
	ToMainMenu(ctx context.Context, chatID int64, lang locale.Language, text string) error
	ToCatalog(ctx context.Context, chatID int64, lang locale.Language, text string) error
}

type Deps struct {
	Gateway   gateway.Gateway
	Steps     continuation.Store
	Orders    OrderService
	Users     UserService
	Notifier  Notifier
	Rates     CurrencySource
	Navigator Navigator
	Payment   config.PaymentConfig
	Logger    *slog.Logger
}

type step func(ctx context.Context, msg *models.Message, lang locale.Language, c continuation.Continuation) error

type Controller struct {
	gateway  gateway.Gateway
	steps    continuation.Store
	orders   OrderService
	users    UserService
	notifier Notifier
	rates    CurrencySource
	nav      Navigator
	payment  config.PaymentConfig
	logger   *slog.Logger

	handlers map[continuation.State]step
}

func New(deps Deps) *Controller {
	c := &Controller{
		gateway:  deps.Gateway,
		steps:    deps.Steps,
		orders:   deps.Orders,
		users:    deps.Users,
		notifier: deps.Notifier,
		rates:    deps.Rates,
		nav:      deps.Navigator,
		payment:  deps.Payment,
		logger:   deps.Logger,
	}
	c.handlers = map[continuation.State]step{
		ShippingMethod: c.shippingMethod,
		PaymentMethod:  c.paymentMethod,
		PhoneNumber:    c.phoneNumber,
		Confirmation:   c.confirmation,
	}
	return c
}

// Handles - продолжение относится к оформлению заказа
func (c *Controller) Handles(state continuation.State) bool {
	_, ok := c.handlers[state]
	return ok
}

// Dispatch передаёт сообщение шагу, который его ожидает.
// Продолжение к этому моменту уже снято из хранилища.
func (c *Controller) Dispatch(ctx context.Context, msg *models.Message, cont continuation.Continuation) error {
	handler, ok := c.handlers[cont.State]
	if !ok {
		return errors.New("checkout: unknown state " + string(cont.State))
	}
	// /start в любом шаге - начать сначала
	if msg.Text == bot_commands.Start {
		return c.nav.Welcome(ctx, msg)
	}
	lang, err := c.users.Language(ctx, msg.UserID)
	if err != nil {
		return err
	}
	return handler(ctx, msg, lang, cont)
}

// Start - быстрый путь из корзины: самовывоз, наличные, сразу подтверждение
func (c *Controller) Start(ctx context.Context, msg *models.Message) error {
	lang, err := c.users.Language(ctx, msg.UserID)
	if err != nil {
		return err
	}
	if _, err := c.orders.StartOrder(ctx, msg.UserID); err != nil {
		if errors.Is(err, db.ErrEmptyCart) {
			return c.nav.ToCatalog(ctx, msg.ChatID, lang, locale.Get("cart.empty", lang))
		}
		return err
	}
	if err := c.orders.SetShippingMethod(ctx, msg.UserID, models.PickUp); err != nil {
		return err
	}
	if err := c.orders.SetPaymentMethod(ctx, msg.UserID, models.Cash); err != nil {
		return err
	}
	order, err := c.orders.SetPhoneNumber(ctx, msg.UserID, "")
	if err != nil {
		return err
	}
	return c.toConfirmation(ctx, msg.ChatID, lang, order)
}

// ToShippingMethod - полный путь: выбор способа получения
func (c *Controller) ToShippingMethod(ctx context.Context, chatID int64, lang locale.Language) error {
	return c.ask(ctx, chatID, gateway.Message{
		Text:   locale.Get("order.shipping_method", lang),
		Markup: menu.ShippingMethods(lang),
		HTML:   true,
	}, continuation.Continuation{State: ShippingMethod})
}

func (c *Controller) shippingMethod(ctx context.Context, msg *models.Message, lang locale.Language, cont continuation.Continuation) error {
	if msg.Text == "" {
		return c.retry(ctx, msg.ChatID, lang, "order.shipping_method_error", cont)
	}
	if _, err := c.orders.StartOrder(ctx, msg.UserID); err != nil {
		return c.fail(ctx, msg.ChatID, lang, cont, err)
	}

	switch {
	case strings.Contains(msg.Text, locale.Get("go_to_menu", lang)):
		return c.nav.ToCatalog(ctx, msg.ChatID, lang, "")
	case strings.Contains(msg.Text, messages.ShippingMethodName(models.PickUp, lang)):
		if err := c.orders.SetShippingMethod(ctx, msg.UserID, models.PickUp); err != nil {
			return c.fail(ctx, msg.ChatID, lang, cont, err)
		}
		return c.toPaymentMethod(ctx, msg.ChatID, msg.UserID, lang)
	case strings.Contains(msg.Text, messages.ShippingMethodName(models.Delivery, lang)):
		// адрес приходит отдельным сообщением с геопозицией
		if err := c.orders.SetShippingMethod(ctx, msg.UserID, models.Delivery); err != nil {
			return c.fail(ctx, msg.ChatID, lang, cont, err)
		}
		return c.nav.ToCatalog(ctx, msg.ChatID, lang, "")
	}
	return c.retry(ctx, msg.ChatID, lang, "order.shipping_method_error", cont)
}

// toPaymentMethod - способ получения уже выбран, при возврате с шага телефона он сохраняется
func (c *Controller) toPaymentMethod(ctx context.Context, chatID, userID int64, lang locale.Language) error {
	order, err := c.orders.StartOrder(ctx, userID)
	if err != nil {
		return err
	}
	return c.askPaymentMethod(ctx, chatID, lang, order.ShippingMethod)
}

func (c *Controller) askPaymentMethod(ctx context.Context, chatID int64, lang locale.Language, shipping models.ShippingMethod) error {
	key := "order.payment_pickup"
	if shipping == models.Delivery {
		key = "order.payment_delivery"
	}
	return c.ask(ctx, chatID, gateway.Message{
		Text:   locale.Get(key, lang),
		Markup: menu.PaymentMethods(lang, c.paymeEnabled()),
		HTML:   true,
	}, continuation.Continuation{State: PaymentMethod})
}

// DeliveryLocation - геопозиция для заказа с доставкой, после неё выбор оплаты.
// false - черновика с доставкой нет, сообщение не относится к оформлению.
func (c *Controller) DeliveryLocation(ctx context.Context, msg *models.Message) (bool, error) {
	if msg.Location == nil {
		return false, nil
	}
	order, err := c.orders.CurrentOrder(ctx, msg.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if order.ShippingMethod != models.Delivery {
		return false, nil
	}

	lang, err := c.users.Language(ctx, msg.UserID)
	if err != nil {
		return false, err
	}
	if err := c.orders.SetLocation(ctx, msg.UserID, msg.Location.Latitude, msg.Location.Longitude); err != nil {
		return false, err
	}
	return true, c.askPaymentMethod(ctx, msg.ChatID, lang, models.Delivery)
}

func (c *Controller) paymeEnabled() bool {
	return c.payment.ProviderToken != ""
}

func (c *Controller) paymentMethod(ctx context.Context, msg *models.Message, lang locale.Language, cont continuation.Continuation) error {
	if msg.Text == "" {
		return c.retry(ctx, msg.ChatID, lang, "order.payment_error", cont)
	}

	switch {
	case strings.Contains(msg.Text, locale.Get("go_to_menu", lang)):
		return c.nav.ToMainMenu(ctx, msg.ChatID, lang, "")
	case strings.Contains(msg.Text, locale.Get("go_back", lang)):
		// при любом способе получения "назад" ведёт в каталог, а не к выбору способа
		return c.nav.ToCatalog(ctx, msg.ChatID, lang, "")
	case strings.Contains(msg.Text, messages.PaymentMethodName(models.Cash, lang)):
		return c.choosePayment(ctx, msg, lang, cont, models.Cash)
	case c.paymeEnabled() && strings.Contains(msg.Text, messages.PaymentMethodName(models.Payme, lang)):
		return c.choosePayment(ctx, msg, lang, cont, models.Payme)
	}
	return c.retry(ctx, msg.ChatID, lang, "order.payment_error", cont)
}

func (c *Controller) choosePayment(ctx context.Context, msg *models.Message, lang locale.Language,
	cont continuation.Continuation, method models.PaymentMethod) error {
	if err := c.orders.SetPaymentMethod(ctx, msg.UserID, method); err != nil {
		return c.fail(ctx, msg.ChatID, lang, cont, err)
	}
	return c.toPhoneNumber(ctx, msg.ChatID, msg.UserID, lang)
}

func (c *Controller) toPhoneNumber(ctx context.Context, chatID, userID int64, lang locale.Language) error {
	user, err := c.users.UserByTelegramID(ctx, userID)
	if err != nil {
		return err
	}
	return c.ask(ctx, chatID, gateway.Message{
		Text:   locale.Get("order.phone_number", lang),
		Markup: menu.PhoneNumber(lang, user.PhoneNumber),
		HTML:   true,
	}, continuation.Continuation{State: PhoneNumber})
}

func (c *Controller) phoneNumber(ctx context.Context, msg *models.Message, lang locale.Language, cont continuation.Continuation) error {
	var phone string
	switch {
	case msg.Contact != nil:
		phone = msg.Contact.PhoneNumber
	case msg.Text == "":
		return c.retryHTML(ctx, msg.ChatID, lang, "order.phone_number", cont)
	case strings.Contains(msg.Text, locale.Get("go_back", lang)):
		return c.toPaymentMethod(ctx, msg.ChatID, msg.UserID, lang)
	default:
		var ok bool
		if phone, ok = ParsePhoneNumber(msg.Text); !ok {
			return c.retryHTML(ctx, msg.ChatID, lang, "order.phone_number", cont)
		}
	}

	order, err := c.orders.SetPhoneNumber(ctx, msg.UserID, phone)
	if err != nil {
		return c.fail(ctx, msg.ChatID, lang, cont, err)
	}
	return c.toConfirmation(ctx, msg.ChatID, lang, order)
}

// OrderTotal - сумма заказа в долларах, перевод в сумы по курсу при выводе
func OrderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Dish.Price.Mul(decimal.NewFromInt(int64(item.Count))))
	}
	return total
}

func (c *Controller) toConfirmation(ctx context.Context, chatID int64, lang locale.Language, order *models.Order) error {
	rate, err := c.rates.CurrencyValue(ctx)
	if err != nil {
		return err
	}
	total := OrderTotal(order.OrderItems)
	summary := gateway.Message{
		ChatID: chatID,
		Text:   messages.FromOrder(order, lang, total, rate),
		Markup: menu.Confirmation(lang),
		HTML:   true,
	}
	next := continuation.Continuation{State: Confirmation, Total: total}

	if order.PaymentMethod == models.Payme {
		summary.Markup = menu.PaymentConfirmation(lang)
		if _, err := c.gateway.Send(ctx, summary); err != nil {
			return err
		}
		invoiceID, err := c.gateway.SendInvoice(ctx, gateway.Invoice{
			ChatID:         chatID,
			Title:          locale.Getf("order.payment.title", lang, "id", strconv.FormatUint(uint64(order.ID), 10)),
			Description:    locale.Get("order.payment.description", lang),
			Payload:        total.String(),
			ProviderToken:  c.payment.ProviderToken,
			Currency:       c.payment.Currency,
			Prices:         messages.LabeledPrices(order.OrderItems, lang, rate),
			StartParameter: strings.ReplaceAll(uuid.NewString(), "-", ""),
		})
		if err != nil {
			return err
		}
		next.InvoiceMessageID = invoiceID
		return c.steps.Register(ctx, chatID, next)
	}

	if _, err := c.gateway.Send(ctx, summary); err != nil {
		return err
	}
	return c.steps.Register(ctx, chatID, next)
}

func (c *Controller) confirmation(ctx context.Context, msg *models.Message, lang locale.Language, cont continuation.Continuation) error {
	if msg.Text == "" {
		return c.retry(ctx, msg.ChatID, lang, "order.confirmation_error", cont)
	}

	switch {
	// при оплате через Payme заказ подтверждает платёж по счёту, а не кнопка
	case cont.InvoiceMessageID == 0 && strings.Contains(msg.Text, locale.Get("order.confirm", lang)):
		if err := c.finalize(ctx, msg.ChatID, msg.UserID, lang, cont.Total); err != nil {
			return c.fail(ctx, msg.ChatID, lang, cont, err)
		}
		return nil
	case strings.Contains(msg.Text, locale.Get("order.cancel", lang)):
		if err := c.users.ClearCart(ctx, msg.UserID); err != nil {
			return c.fail(ctx, msg.ChatID, lang, cont, err)
		}
		if cont.InvoiceMessageID != 0 {
			if err := c.gateway.DeleteMessage(ctx, msg.ChatID, cont.InvoiceMessageID); err != nil {
				c.logger.Warn("invoice_delete_failed", slog.Int64("chat_id", msg.ChatID), slog.String("error", err.Error()))
			}
		}
		return c.nav.ToMainMenu(ctx, msg.ChatID, lang, locale.Get("order.canceled", lang))
	}
	return c.retry(ctx, msg.ChatID, lang, "order.confirmation_error", cont)
}

// PreCheckout - платёжный провайдер спрашивает, можно ли списать деньги.
// Ответ всегда положительный, сумма берётся из payload счёта.
func (c *Controller) PreCheckout(ctx context.Context, query *models.PreCheckoutQuery) error {
	if err := c.gateway.AnswerPreCheckout(ctx, query.ID, true, ""); err != nil {
		return err
	}
	chatID := query.FromUserID
	if err := c.steps.Clear(ctx, chatID); err != nil {
		return err
	}

	lang, err := c.users.Language(ctx, query.FromUserID)
	if err != nil {
		return err
	}
	total, err := decimal.NewFromString(query.InvoicePayload)
	if err != nil {
		return errors.New("checkout: invalid invoice payload " + strconv.Quote(query.InvoicePayload))
	}
	return c.finalize(ctx, chatID, query.FromUserID, lang, total)
}

// finalize - общий конец для "подтвердить" и оплаты через провайдера
func (c *Controller) finalize(ctx context.Context, chatID, userID int64, lang locale.Language, total decimal.Decimal) error {
	user, err := c.users.UserByTelegramID(ctx, userID)
	if err != nil {
		return err
	}
	order, err := c.orders.ConfirmOrder(ctx, userID, user.FullUserName(), total)
	if err != nil {
		return err
	}
	c.logger.Info("order_confirmed",
		slog.Uint64("order_id", uint64(order.ID)),
		slog.Int64("user_id", userID),
		slog.String("payment_method", string(order.PaymentMethod)),
		slog.String("total", total.String()))

	if err := c.nav.ToMainMenu(ctx, chatID, lang, locale.Get("notifications.wait", lang)); err != nil {
		c.logger.Warn("customer_notification_failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
	}

	current, err := c.users.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	c.notifier.NotifyNewOrder(ctx, order, total, current.CountOrders)
	return nil
}

func (c *Controller) ask(ctx context.Context, chatID int64, msg gateway.Message, next continuation.Continuation) error {
	msg.ChatID = chatID
	if _, err := c.gateway.Send(ctx, msg); err != nil {
		return err
	}
	return c.steps.Register(ctx, chatID, next)
}

// retry - ввод не распознан: сообщение об ошибке и тот же шаг с теми же аргументами
func (c *Controller) retry(ctx context.Context, chatID int64, lang locale.Language, key string, cont continuation.Continuation) error {
	return c.ask(ctx, chatID, gateway.Message{Text: locale.Get(key, lang)}, cont)
}

func (c *Controller) retryHTML(ctx context.Context, chatID int64, lang locale.Language, key string, cont continuation.Continuation) error {
	return c.ask(ctx, chatID, gateway.Message{Text: locale.Get(key, lang), HTML: true}, cont)
}

// fail - ошибка сервиса внутри шага: пишем в лог, пользователю общее сообщение, шаг повторяется
func (c *Controller) fail(ctx context.Context, chatID int64, lang locale.Language, cont continuation.Continuation, err error) error {
	if errors.Is(err, db.ErrEmptyCart) {
		return c.nav.ToCatalog(ctx, chatID, lang, locale.Get("cart.empty", lang))
	}
	c.logger.Error("checkout_step_failed",
		slog.Int64("chat_id", chatID),
		slog.String("state", string(cont.State)),
		slog.String("error", err.Error()))
	return c.ask(ctx, chatID, gateway.Message{Text: locale.Get("error", lang)}, cont)
}
