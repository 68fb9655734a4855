package models

// Входящие события, не зависящие от клиента Bot API

type Message struct {
	ChatID    int64
	ChatType  string
	ChatTitle string
	UserID    int64
	MessageID int
	Text      string
	Command   string // без "/" и имени бота, пусто для обычного текста
	Contact   *Contact
	Location  *GeoPoint
	From      Sender
}

// Sender - отправитель сообщения
type Sender struct {
	UserName  string
	FirstName string
	LastName  string
}

// IsGroup - сообщение пришло из группового чата
func (m *Message) IsGroup() bool {
	return m.ChatType == "group" || m.ChatType == "supergroup"
}

type Contact struct {
	PhoneNumber string
}

type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

type CallbackQuery struct {
	ID        string
	ChatID    int64
	MessageID int
	Data      string
}

type PreCheckoutQuery struct {
	ID             string
	FromUserID     int64
	InvoicePayload string
}
