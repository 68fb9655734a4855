package handlers

import (
	"coffee_bot/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func FromMessage(m *tgbotapi.Message) *models.Message {
	msg := &models.Message{
		MessageID: m.MessageID,
		Text:      m.Text,
		Command:   m.Command(),
	}
	if m.Chat != nil {
		msg.ChatID = m.Chat.ID
		msg.ChatType = m.Chat.Type
		msg.ChatTitle = m.Chat.Title
	}
	if m.From != nil {
		msg.UserID = m.From.ID
		msg.From = models.Sender{
			UserName:  m.From.UserName,
			FirstName: m.From.FirstName,
			LastName:  m.From.LastName,
		}
	}
	if m.Contact != nil {
		msg.Contact = &models.Contact{PhoneNumber: m.Contact.PhoneNumber}
	}
	if m.Location != nil {
		msg.Location = &models.GeoPoint{Latitude: m.Location.Latitude, Longitude: m.Location.Longitude}
	}
	return msg
}

func FromCallbackQuery(q *tgbotapi.CallbackQuery) *models.CallbackQuery {
	query := &models.CallbackQuery{ID: q.ID, Data: q.Data}
	if q.Message != nil {
		query.MessageID = q.Message.MessageID
		if q.Message.Chat != nil {
			query.ChatID = q.Message.Chat.ID
		}
	}
	return query
}

func FromPreCheckoutQuery(q *tgbotapi.PreCheckoutQuery) *models.PreCheckoutQuery {
	query := &models.PreCheckoutQuery{ID: q.ID, InvoicePayload: q.InvoicePayload}
	if q.From != nil {
		query.FromUserID = q.From.ID
	}
	return query
}
