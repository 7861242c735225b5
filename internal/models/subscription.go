package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SubscriptionPlan — сохранённая запись об оплаченной подписке.
// Запись создаётся один раз при успешной верификации checkout-сессии
// и дальше не изменяется.
type SubscriptionPlan struct {
	ID                   bson.ObjectID    `bson:"_id,omitempty" json:"_id"`
	StripeSubscriptionID string           `bson:"stripe_subscription_id" json:"stripe_subscription_id"`
	UserID               bson.ObjectID    `bson:"user_id" json:"user_id"`
	StripeCustomerID     string           `bson:"stripe_customer_id" json:"stripe_customer_id"`
	CheckoutSessionID    string           `bson:"checkout_session_id" json:"checkout_session_id"` // ключ идемпотентности верификации
	PlanDetails          PlanDetails      `bson:"plan_details" json:"plan_details"`
	AutoRenew            bool             `bson:"auto_renew" json:"auto_renew"`
	Refundable           bool             `bson:"refundable" json:"refundable"`
	Status               string           `bson:"status" json:"status"` // зеркалирует статус провайдера
	CancellationDate     *time.Time       `bson:"cancellation_date,omitempty" json:"cancellation_date,omitempty"`
	PaymentHistory       []PaymentDetails `bson:"payment_history" json:"payment_history"`
}

// PlanDetails — параметры тарифа, извлечённые из данных провайдера.
type PlanDetails struct {
	PlanID       string    `bson:"plan_id" json:"plan_id"`
	ProductID    string    `bson:"product_id" json:"product_id"`
	PlanName     string    `bson:"plan_name" json:"plan_name"`
	BillingCycle string    `bson:"billing_cycle" json:"billing_cycle"`
	StartDate    time.Time `bson:"start_date" json:"start_date"`
	EndDate      time.Time `bson:"end_date" json:"end_date"`
}

// PaymentDetails — один платёж в истории подписки.
type PaymentDetails struct {
	InvoiceID     string    `bson:"invoice_id" json:"invoice_id"`
	PaymentMethod string    `bson:"payment_method" json:"payment_method"`
	Currency      string    `bson:"currency" json:"currency"`
	Amount        float64   `bson:"amount" json:"amount"`
	PaymentDate   time.Time `bson:"payment_date" json:"payment_date"`
}
