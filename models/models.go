package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShippingMethod string

const (
	PickUp   ShippingMethod = "pick_up"
	Delivery ShippingMethod = "delivery"
)

type PaymentMethod string

const (
	Cash  PaymentMethod = "cash"
	Payme PaymentMethod = "payme"
)

// OrderStatus - DRAFT -> CONFIRMED | ABANDONED
type OrderStatus string

const (
	StatusDraft     OrderStatus = "draft"
	StatusConfirmed OrderStatus = "confirmed"
	StatusAbandoned OrderStatus = "abandoned"
)

// User - покупатель. ID совпадает с telegram id пользователя
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	UserName    string `gorm:"size:64"`
	FirstName   string `gorm:"size:128"`
	LastName    string `gorm:"size:128"`
	Language    string `gorm:"size:2;not null;default:ru"`
	PhoneNumber string `gorm:"size:32"`
	CountOrders int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	CartItems []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// FullUserName - имя для уведомлений персонала
func (u *User) FullUserName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.UserName
	}
	return name
}

type Dish struct {
	gorm.Model
	Name          string          `gorm:"not null;size:100"`
	NameUz        string          `gorm:"not null;size:100"`
	Description   string          `gorm:"type:text"`
	DescriptionUz string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ShowUSD       bool            `gorm:"not null;default:false"`
	Hidden        bool            `gorm:"not null;default:false;index"`
}

type CartItem struct {
	gorm.Model
	UserID int64 `gorm:"not null;index"`
	DishID uint  `gorm:"not null"`
	Dish   Dish
	Count  int `gorm:"not null;default:1"`
}

type Order struct {
	gorm.Model
	UserID         int64           `gorm:"not null;index"`
	UserName       string          `gorm:"size:256"`
	PhoneNumber    string          `gorm:"size:32"`
	ShippingMethod ShippingMethod  `gorm:"type:varchar(16);not null;default:pick_up"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(16);not null;default:cash"`
	Status         OrderStatus     `gorm:"type:varchar(16);not null;index"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2)"`
	ConfirmedAt    *time.Time

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Location   *Location   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// ItemsCount - сумма количеств по всем позициям заказа
func (o *Order) ItemsCount() int {
	count := 0
	for _, item := range o.OrderItems {
		count += item.Count
	}
	return count
}

type OrderItem struct {
	gorm.Model
	OrderID uint `gorm:"not null;index"`
	DishID  uint `gorm:"not null"`
	Dish    Dish
	Count   int `gorm:"not null"`
}

// Location - точка доставки, есть только у заказов с доставкой
type Location struct {
	gorm.Model
	OrderID   uint `gorm:"not null;uniqueIndex"`
	Latitude  float64
	Longitude float64
}

// OrderDecision - ответ персонала на заказ (принят/отклонён), не больше одного на заказ
type OrderDecision struct {
	OrderID   uint   `gorm:"primaryKey;autoIncrement:false"`
	Decision  string `gorm:"size:16;not null"`
	ChatID    int64
	CreatedAt time.Time
}

// NotificationChat - групповой чат персонала, подписанный на заказы
type NotificationChat struct {
	ChatID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Title     string `gorm:"size:256"`
	CreatedAt time.Time
}

type Comment struct {
	gorm.Model
	UserID   int64  `gorm:"not null;index"`
	Author   User   `gorm:"foreignKey:UserID"`
	UserName string `gorm:"size:256"`
	Text     string `gorm:"type:text;not null"`
}

// Setting - настройки магазина (курс валюты и т.п.)
type Setting struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
