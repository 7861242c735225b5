package models

import "time"

// ProvisionEvent — событие повторного применения шага привязки подписки
// к пользователю. Публикуется, если обновление документа пользователя
// после сохранения подписки не удалось; воркер применяет его повторно.
// Ключ идемпотентности — SessionID.
type ProvisionEvent struct {
	EventID        string    `json:"event_id"`
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	SubscriptionID string    `json:"subscription_id"`
	MaxTries       int       `json:"max_tries"`
	CreatedAt      time.Time `json:"created_at"`
}

// ActivatedEvent — уведомление об успешно активированной подписке,
// по нему воркер отправляет письмо-подтверждение.
type ActivatedEvent struct {
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PlanName  string    `json:"plan_name"`
	MaxTries  int       `json:"max_tries"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}
