package paymentprovider

import "time"

// Статусы checkout-сессии, значимые для верификации.
const (
	SessionStatusComplete = "complete"
	PaymentStatusPaid     = "paid"
)

// Категории способа оплаты, выводимые из данных сессии.
const (
	PaymentMethodCard  = "card"
	PaymentMethodOther = "other"
)

// CheckoutSession — провайдеро-независимое представление checkout-сессии.
// Необязательные поля провайдера приходят указателями: решение о
// подстановке значений по умолчанию принимает бизнес-логика.
type CheckoutSession struct {
	ID             string
	Status         string
	PaymentStatus  string
	CustomerID     string
	SubscriptionID string // пустая строка, если сессия не ссылается на подписку
	PaymentMethod  string // card | other
	Currency       string
	CreatedAt      time.Time
}

// Subscription — провайдеро-независимое представление подписки
// с раскрытыми данными тарифа из первой позиции.
type Subscription struct {
	ID              string
	Status          string
	CustomerID      string
	Currency        string
	PlanID          *string
	ProductID       *string
	ProductName     *string
	BillingInterval *string // year | month | week | day
	UnitAmount      *int64  // в минорных единицах валюты
	LatestInvoiceID *string
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

// Price — позиция из списка активных тарифов провайдера.
type Price struct {
	ID string
}

// CreateSessionParams — параметры создания hosted checkout-сессии.
type CreateSessionParams struct {
	PriceID       string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}
