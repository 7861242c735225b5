// Package models содержит доменные структуры сервиса: пользователя,
// подписку и события для очередей. Структуры размечены bson-тегами для
// хранения в MongoDB и json-тегами для отдачи наружу.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Способы входа пользователя.
const (
	LoginTypeEmail     = "email"
	LoginTypeFederated = "google"
)

// DefaultMaxTries — квота попыток для нового пользователя без подписки.
const DefaultMaxTries = 10

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID             bson.ObjectID    `bson:"_id,omitempty" json:"_id"`
	Name           string           `bson:"name" json:"name"`
	Email          string           `bson:"email" json:"email"`
	Username       string           `bson:"username" json:"username"`
	PasswordHash   *string          `bson:"password,omitempty" json:"-"` // отсутствует при федеративном входе
	GoogleID       *string          `bson:"google_id,omitempty" json:"google_id,omitempty"`
	LoginType      string           `bson:"login_type" json:"login_type"`
	SubscriptionID *string          `bson:"subscription_id,omitempty" json:"subscription_id,omitempty"` // hex-ссылка на SubscriptionPlan
	Usage          Usage            `bson:"usage" json:"usage"`
	ActivityLog    []ActivityLog    `bson:"activity_log" json:"activity_log"`
	BillingHistory []BillingHistory `bson:"billing_history" json:"billing_history"`
	UserAddress    UserAddress      `bson:"user_address" json:"user_address"`
	ProfileImg     *string          `bson:"profileImg,omitempty" json:"profileImg,omitempty"`
	AccDeleted     bool             `bson:"AccDeleted" json:"AccDeleted"`
	CreatedAt      time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `bson:"updated_at" json:"updated_at"`
}

// Usage хранит счётчики использования сервиса.
type Usage struct {
	TriesUsed int `bson:"tries_used" json:"tries_used"`
	MaxTries  int `bson:"max_tries" json:"max_tries"`
}

// ActivityLog — одна запись журнала действий пользователя.
// Новые записи добавляются в начало списка.
type ActivityLog struct {
	Event     string `bson:"event" json:"event"`
	Timestamp string `bson:"timestamp" json:"timestamp"`
}

// BillingHistory — запись истории платежей пользователя.
type BillingHistory struct {
	InvoiceID string    `bson:"invoice_id" json:"invoice_id"`
	PaidAt    time.Time `bson:"paid_at" json:"paid_at"`
}

// UserAddress — контактные данные пользователя.
type UserAddress struct {
	Address *Address `bson:"address,omitempty" json:"address,omitempty"`
	Email   *string  `bson:"email,omitempty" json:"email,omitempty"`
	Name    *string  `bson:"name,omitempty" json:"name,omitempty"`
	Phone   *string  `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Address — почтовый адрес.
type Address struct {
	City       *string `bson:"city,omitempty" json:"city,omitempty"`
	Country    *string `bson:"country,omitempty" json:"country,omitempty"`
	Line1      *string `bson:"line1,omitempty" json:"line1,omitempty"`
	Line2      *string `bson:"line2,omitempty" json:"line2,omitempty"`
	PostalCode *string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
	State      *string `bson:"state,omitempty" json:"state,omitempty"`
}

// Коды событий для журнала действий.
const (
	ActivityLoggedIn  = 1
	ActivityLoggedOut = 2
)

// activityTimezone — часовой пояс журнала действий (UTC+5:30).
var activityTimezone = time.FixedZone("IST", 5*3600+30*60)

// CurrentLogTime возвращает отметку времени журнала в формате
// "2006-01-02 03:04:05 PM" в поясе журнала.
func CurrentLogTime(now time.Time) string {
	return now.In(activityTimezone).Format("2006-01-02 03:04:05 PM")
}

// NewActivityLog создаёт запись журнала по коду события.
func NewActivityLog(eventType int, now time.Time) ActivityLog {
	var event string
	switch eventType {
	case ActivityLoggedIn:
		event = "Logged In"
	case ActivityLoggedOut:
		event = "Logged Out"
	default:
		event = "Unknown Event"
	}
	return ActivityLog{
		Event:     event,
		Timestamp: CurrentLogTime(now),
	}
}
