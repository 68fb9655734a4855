package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"coffee_bot/auth"
	"coffee_bot/internal/bot_commands"
	"coffee_bot/internal/checkout"
	"coffee_bot/internal/config"
	"coffee_bot/internal/continuation"
	db "coffee_bot/internal/database"
	"coffee_bot/internal/gateway"
	"coffee_bot/internal/locale"
	"coffee_bot/internal/notifications"
	"coffee_bot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Шаги диалога вне оформления заказа
const (
	ChooseLanguage continuation.State = "registration.language"
	LeaveComment   continuation.State = "comment"
)

type Deps struct {
	Gateway       gateway.Gateway
	Steps         continuation.Store
	Users         *db.UserService
	Orders        *db.OrderService
	Catalog       *db.CatalogService
	Comments      *db.CommentService
	Chats         *db.NotifyService
	Settings      *db.SettingsService
	Auth          *auth.BotAuth
	Payment       config.PaymentConfig
	QuickCheckout bool
	Logger        *slog.Logger
}

// Router разбирает входящие обновления: продолжение диалога, команды, кнопки меню
type Router struct {
	gateway       gateway.Gateway
	steps         continuation.Store
	users         *db.UserService
	orders        *db.OrderService
	catalog       *db.CatalogService
	comments      *db.CommentService
	settings      *db.SettingsService
	auth          *auth.BotAuth
	quickCheckout bool
	logger        *slog.Logger

	notifier *notifications.Notifier
	checkout *checkout.Controller
}

func NewRouter(deps Deps) *Router {
	r := &Router{
		gateway:       deps.Gateway,
		steps:         deps.Steps,
		users:         deps.Users,
		orders:        deps.Orders,
		catalog:       deps.Catalog,
		comments:      deps.Comments,
		settings:      deps.Settings,
		auth:          deps.Auth,
		quickCheckout: deps.QuickCheckout,
		logger:        deps.Logger,
	}
	r.notifier = notifications.NewNotifier(deps.Gateway, deps.Chats, deps.Users, deps.Orders, deps.Settings, deps.Logger)
	r.checkout = checkout.New(checkout.Deps{
		Gateway:   deps.Gateway,
		Steps:     deps.Steps,
		Orders:    deps.Orders,
		Users:     deps.Users,
		Notifier:  r.notifier,
		Rates:     deps.Settings,
		Navigator: r,
		Payment:   deps.Payment,
		Logger:    deps.Logger,
	})
	return r
}

// HandleUpdate - точка входа и для long polling, и для webhook
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.Message != nil && update.Message.SuccessfulPayment != nil:
		return r.successfulPayment(ctx, update.Message.Chat.ID, update.Message.From)
	case update.Message != nil:
		return r.HandleMessage(ctx, FromMessage(update.Message))
	case update.CallbackQuery != nil:
		return r.notifier.HandleCallback(ctx, FromCallbackQuery(update.CallbackQuery))
	case update.PreCheckoutQuery != nil:
		return r.checkout.PreCheckout(ctx, FromPreCheckoutQuery(update.PreCheckoutQuery))
	}
	return nil
}

func (r *Router) HandleMessage(ctx context.Context, msg *models.Message) error {
	if msg.IsGroup() {
		if msg.Command == bot_commands.Notify {
			return r.notifier.Subscribe(ctx, msg)
		}
		return nil
	}

	cont, ok, err := r.steps.Take(ctx, msg.ChatID)
	if err != nil {
		return err
	}
	if ok {
		switch {
		case r.checkout.Handles(cont.State):
			return r.checkout.Dispatch(ctx, msg, cont)
		case cont.State == ChooseLanguage:
			return r.chooseLanguage(ctx, msg, cont)
		case cont.State == LeaveComment:
			return r.leaveComment(ctx, msg, cont)
		}
		r.logger.Warn("unknown_continuation", slog.Int64("chat_id", msg.ChatID), slog.String("state", string(cont.State)))
	}

	if msg.Text == bot_commands.Start {
		return r.Welcome(ctx, msg)
	}

	lang, err := r.users.Language(ctx, msg.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return r.Welcome(ctx, msg)
		}
		return err
	}

	switch msg.Command {
	case bot_commands.Currency:
		if r.auth.IsAdmin(msg.UserID) {
			return r.setCurrency(ctx, msg)
		}
	case bot_commands.Profile:
		return r.profile(ctx, msg.ChatID, msg.UserID, lang)
	}

	if msg.Location != nil {
		handled, err := r.checkout.DeliveryLocation(ctx, msg)
		if err != nil || handled {
			return err
		}
		return r.ToMainMenu(ctx, msg.ChatID, lang, "")
	}

	return r.menuButton(ctx, msg, lang)
}

func (r *Router) menuButton(ctx context.Context, msg *models.Message, lang locale.Language) error {
	is := func(key string) bool {
		return msg.Text != "" && strings.Contains(msg.Text, locale.Get(key, lang))
	}

	switch {
	case is("main_menu.catalog"):
		return r.ToCatalog(ctx, msg.ChatID, lang, "")
	case is("main_menu.cart"):
		return r.cart(ctx, msg.ChatID, msg.UserID, lang)
	case is("main_menu.profile"):
		return r.profile(ctx, msg.ChatID, msg.UserID, lang)
	case is("main_menu.comment"):
		return r.askComment(ctx, msg.ChatID, lang)
	case is("main_menu.language"):
		return r.askLanguage(ctx, msg.ChatID, "")
	case is("cart.make_order"):
		return r.makeOrder(ctx, msg, lang)
	case is("cart.clear"):
		if err := r.users.ClearCart(ctx, msg.UserID); err != nil {
			return err
		}
		return r.ToCatalog(ctx, msg.ChatID, lang, locale.Get("cart.cleared", lang))
	case is("go_to_menu"):
		return r.ToMainMenu(ctx, msg.ChatID, lang, "")
	case is("go_back"):
		return r.ToCatalog(ctx, msg.ChatID, lang, "")
	}

	if msg.Text != "" {
		dish, err := r.catalog.DishByName(ctx, msg.Text)
		if err == nil {
			return r.addDish(ctx, msg, lang, dish)
		}
		if !db.IsNotFound(err) {
			return err
		}
	}
	return r.ToMainMenu(ctx, msg.ChatID, lang, "")
}

func (r *Router) makeOrder(ctx context.Context, msg *models.Message, lang locale.Language) error {
	if r.quickCheckout {
		return r.checkout.Start(ctx, msg)
	}
	items, err := r.users.CartItems(ctx, msg.UserID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return r.ToCatalog(ctx, msg.ChatID, lang, locale.Get("cart.empty", lang))
	}
	return r.checkout.ToShippingMethod(ctx, msg.ChatID, lang)
}

func (r *Router) successfulPayment(ctx context.Context, chatID int64, from *tgbotapi.User) error {
	lang := locale.RU
	if from != nil {
		if userLang, err := r.users.Language(ctx, from.ID); err == nil {
			lang = userLang
		}
	}
	_, err := r.gateway.Send(ctx, gateway.Message{ChatID: chatID, Text: locale.Get("order.success", lang)})
	return err
}

// ServeHTTP - webhook. Telegram повторяет доставку при ответе не 2xx,
// поэтому ошибки обработки только логируются.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Can't read body", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		r.logger.Warn("webhook_invalid_json", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	r.Process(req.Context(), update)
	w.WriteHeader(http.StatusOK)
}

// Process обрабатывает обновление и пишет ошибку в лог
func (r *Router) Process(ctx context.Context, update tgbotapi.Update) {
	if err := r.HandleUpdate(ctx, update); err != nil {
		r.logger.Error("update_failed",
			slog.Int("update_id", update.UpdateID),
			slog.Int64("chat_id", chatOf(update)),
			slog.String("error", err.Error()))
	}
}

func chatOf(update tgbotapi.Update) int64 {
	if chat := update.FromChat(); chat != nil {
		return chat.ID
	}
	if update.PreCheckoutQuery != nil && update.PreCheckoutQuery.From != nil {
		return update.PreCheckoutQuery.From.ID
	}
	return 0
}
