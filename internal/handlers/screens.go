package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"coffee_bot/internal/bot_commands"
	"coffee_bot/internal/checkout"
	"coffee_bot/internal/continuation"
	db "coffee_bot/internal/database"
	"coffee_bot/internal/gateway"
	menu "coffee_bot/internal/keyboards"
	"coffee_bot/internal/locale"
	messages "coffee_bot/internal/msg_gen"
	"coffee_bot/internal/utils"
	"coffee_bot/models"

	"github.com/shopspring/decimal"
)

// Welcome - /start: зарегистрированный пользователь попадает в главное меню, новый выбирает язык.
// Незавершённое оформление бросается вместе с корзиной.
func (r *Router) Welcome(ctx context.Context, msg *models.Message) error {
	if err := r.steps.Clear(ctx, msg.ChatID); err != nil {
		return err
	}
	if err := r.discardDraft(ctx, msg.UserID); err != nil {
		return err
	}
	user, err := r.users.UserByTelegramID(ctx, msg.UserID)
	if err != nil {
		if db.IsNotFound(err) {
			return r.askLanguage(ctx, msg.ChatID,
				locale.Get("welcome", locale.RU)+"\n\n"+locale.Get("welcome.choose_language", locale.RU))
		}
		return err
	}
	lang, err := locale.ParseLanguage(user.Language)
	if err != nil {
		return err
	}
	return r.ToMainMenu(ctx, msg.ChatID, lang, locale.Get("welcome", lang))
}

func (r *Router) discardDraft(ctx context.Context, userID int64) error {
	if _, err := r.orders.CurrentOrder(ctx, userID); err != nil {
		if db.IsNotFound(err) {
			return nil
		}
		return err
	}
	r.logger.Info("draft_order_discarded", slog.Int64("user_id", userID))
	return r.users.ClearCart(ctx, userID)
}

func (r *Router) ToMainMenu(ctx context.Context, chatID int64, lang locale.Language, text string) error {
	if text == "" {
		text = locale.Get("main_menu", lang)
	}
	_, err := r.gateway.Send(ctx, gateway.Message{ChatID: chatID, Text: text, Markup: menu.MainMenu(lang)})
	return err
}

func (r *Router) ToCatalog(ctx context.Context, chatID int64, lang locale.Language, text string) error {
	dishes, err := r.catalog.Dishes(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(dishes))
	for i := range dishes {
		names = append(names, messages.DishName(&dishes[i], lang))
	}
	if text == "" {
		text = locale.Get("catalog.start", lang)
	}
	_, err = r.gateway.Send(ctx, gateway.Message{ChatID: chatID, Text: text, Markup: menu.Catalog(lang, names)})
	return err
}

func (r *Router) askLanguage(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		text = locale.Get("welcome.choose_language", locale.RU)
	}
	if _, err := r.gateway.Send(ctx, gateway.Message{ChatID: chatID, Text: text, Markup: menu.Languages()}); err != nil {
		return err
	}
	return r.steps.Register(ctx, chatID, continuation.Continuation{State: ChooseLanguage})
}

func (r *Router) chooseLanguage(ctx context.Context, msg *models.Message, cont continuation.Continuation) error {
	if msg.Text == bot_commands.Start {
		return r.Welcome(ctx, msg)
	}

	var lang locale.Language
	switch {
	case msg.Text != "" && strings.Contains(msg.Text, locale.Get("language.ru", locale.RU)):
		lang = locale.RU
	case msg.Text != "" && strings.Contains(msg.Text, locale.Get("language.uz", locale.UZ)):
		lang = locale.UZ
	default:
		if _, err := r.gateway.Send(ctx, gateway.Message{
			ChatID: msg.ChatID,
			Text:   locale.Get("welcome.language_error", locale.RU),
			Markup: menu.Languages(),
		}); err != nil {
			return err
		}
		return r.steps.Register(ctx, msg.ChatID, cont)
	}

	_, err := r.users.UserByTelegramID(ctx, msg.UserID)
	switch {
	case db.IsNotFound(err):
		user := &models.User{
			ID:        msg.UserID,
			UserName:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			Language:  string(lang),
		}
		if err := r.users.Register(ctx, user); err != nil {
			return err
		}
		return r.ToMainMenu(ctx, msg.ChatID, lang, "")
	case err != nil:
		return err
	}

	if err := r.users.SetLanguage(ctx, msg.UserID, lang); err != nil {
		return err
	}
	return r.ToMainMenu(ctx, msg.ChatID, lang, locale.Get("language.changed", lang))
}

func (r *Router) cart(ctx context.Context, chatID, userID int64, lang locale.Language) error {
	items, err := r.users.CartItems(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return r.ToCatalog(ctx, chatID, lang, locale.Get("cart.empty", lang))
	}
	rate, err := r.settings.CurrencyValue(ctx)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Dish.Price.Mul(decimal.NewFromInt(int64(item.Count))))
	}
	_, err = r.gateway.Send(ctx, gateway.Message{
		ChatID: chatID,
		Text:   messages.FromCartItems(items, lang, total, rate),
		Markup: menu.Cart(lang),
		HTML:   true,
	})
	return err
}

func (r *Router) addDish(ctx context.Context, msg *models.Message, lang locale.Language, dish *models.Dish) error {
	if _, err := r.users.AddToCart(ctx, msg.UserID, dish.ID); err != nil {
		return err
	}
	rate, err := r.settings.CurrencyValue(ctx)
	if err != nil {
		return err
	}
	text := messages.DishName(dish, lang) + "\n\n" + messages.FromDish(dish, lang, rate) + "\n\n" + locale.Get("catalog.added", lang)
	_, err = r.gateway.Send(ctx, gateway.Message{ChatID: msg.ChatID, Text: text})
	return err
}

func (r *Router) profile(ctx context.Context, chatID, userID int64, lang locale.Language) error {
	user, err := r.users.UserByTelegramID(ctx, userID)
	if err != nil {
		return err
	}
	remaining := messages.UntilFreeItem(user.CountOrders)
	text := locale.Getf("loyalty.until_free", lang, "count", strconv.Itoa(remaining))
	if remaining == 0 {
		text = locale.Get("loyalty.next_free", lang)
	}
	_, err = r.gateway.Send(ctx, gateway.Message{ChatID: chatID, Text: "<b>" + text + "</b>", Markup: menu.MainMenu(lang), HTML: true})
	return err
}

func (r *Router) askComment(ctx context.Context, chatID int64, lang locale.Language) error {
	_, err := r.gateway.Send(ctx, gateway.Message{ChatID: chatID, Text: locale.Get("comment.prompt", lang), Markup: menu.GoToMenu(lang)})
	if err != nil {
		return err
	}
	return r.steps.Register(ctx, chatID, continuation.Continuation{State: LeaveComment})
}

func (r *Router) leaveComment(ctx context.Context, msg *models.Message, cont continuation.Continuation) error {
	if msg.Text == bot_commands.Start {
		return r.Welcome(ctx, msg)
	}
	lang, err := r.users.Language(ctx, msg.UserID)
	if err != nil {
		return err
	}
	if msg.Text == "" {
		return r.askComment(ctx, msg.ChatID, lang)
	}
	if strings.Contains(msg.Text, locale.Get("go_to_menu", lang)) {
		return r.ToMainMenu(ctx, msg.ChatID, lang, "")
	}

	user, err := r.users.UserByTelegramID(ctx, msg.UserID)
	if err != nil {
		return err
	}
	comment, err := r.comments.AddComment(ctx, msg.UserID, user.FullUserName(), msg.Text)
	if err != nil {
		return err
	}
	r.notifier.NotifyNewComment(ctx, comment)
	return r.ToMainMenu(ctx, msg.ChatID, lang, locale.Get("comment.thanks", lang))
}

// setCurrency - /currency 12500, только для администраторов
func (r *Router) setCurrency(ctx context.Context, msg *models.Message) error {
	args := strings.ReplaceAll(utils.CommandArgs(msg.Text), " ", "")
	value, err := decimal.NewFromString(args)
	if err != nil || !value.IsPositive() {
		_, err := r.gateway.Send(ctx, gateway.Message{ChatID: msg.ChatID, Text: locale.Get("currency.usage", locale.RU)})
		return err
	}
	if err := r.settings.SetCurrencyValue(ctx, value); err != nil {
		return err
	}
	r.logger.Info("currency_value_updated", slog.Int64("user_id", msg.UserID), slog.String("value", value.String()))
	_, err = r.gateway.Send(ctx, gateway.Message{
		ChatID: msg.ChatID,
		Text:   locale.Getf("currency.updated", locale.RU, "value", messages.FormatNumber(value)),
	})
	return err
}

var _ checkout.Navigator = (*Router)(nil)
