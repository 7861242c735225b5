// Package paymentprovider оборачивает биллинговый API Stripe.
//
// Клиент скрывает типы SDK за собственными структурами, чтобы
// бизнес-логика не зависела от провайдера и легко мокалась в тестах.
// Каждый вызов ограничен по времени: таймаут провайдера — это
// ошибка верхнего уровня, а не зависший запрос.
package paymentprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// callTimeout — предел на один вызов API провайдера.
const callTimeout = 10 * time.Second

// Client — клиент биллингового API.
type Client struct {
	sc *client.API
}

// NewClient создаёт новый клиент Stripe с заданным секретным ключом.
func NewClient(secretKey string) *Client {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Client{sc: sc}
}

// GetCheckoutSession возвращает checkout-сессию по её идентификатору.
// Связанная подписка не раскрывается целиком — берётся только её id.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	const op = "paymentprovider.GetCheckoutSession"

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	sess, err := c.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &CheckoutSession{
		ID:            sess.ID,
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		Currency:      string(sess.Currency),
		CreatedAt:     time.Unix(sess.Created, 0).UTC(),
		PaymentMethod: PaymentMethodOther,
	}
	if sess.Customer != nil {
		result.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		result.SubscriptionID = sess.Subscription.ID
	}
	if sess.PaymentMethodOptions != nil && sess.PaymentMethodOptions.Card != nil {
		result.PaymentMethod = PaymentMethodCard
	}
	return result, nil
}

// GetSubscription возвращает подписку провайдера с раскрытыми данными
// тарифа (price и product первой позиции) и последним инвойсом.
func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	const op = "paymentprovider.GetSubscription"

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.SubscriptionParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("items.data.price.product")
	params.AddExpand("latest_invoice")
	sub, err := c.sc.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Subscription{
		ID:          sub.ID,
		Status:      string(sub.Status),
		Currency:    string(sub.Currency),
		PeriodStart: time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		PeriodEnd:   time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
	}
	if sub.Customer != nil {
		result.CustomerID = sub.Customer.ID
	}
	if sub.LatestInvoice != nil {
		result.LatestInvoiceID = stringPtr(sub.LatestInvoice.ID)
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		price := sub.Items.Data[0].Price
		if price != nil {
			result.PlanID = stringPtr(price.ID)
			if price.UnitAmount != 0 {
				amount := price.UnitAmount
				result.UnitAmount = &amount
			}
			if price.Recurring != nil {
				result.BillingInterval = stringPtr(string(price.Recurring.Interval))
			}
			if price.Product != nil {
				result.ProductID = stringPtr(price.Product.ID)
				if price.Product.Name != "" {
					result.ProductName = stringPtr(price.Product.Name)
				}
			}
		}
	}
	return result, nil
}

// ListActivePrices возвращает первую страницу активных тарифов.
// Размер страницы задаётся конфигом, а не зашит в вызов.
func (c *Client) ListActivePrices(ctx context.Context, pageSize int64) ([]Price, error) {
	const op = "paymentprovider.ListActivePrices"

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.PriceListParams{
		ListParams: stripe.ListParams{Context: ctx, Limit: stripe.Int64(pageSize)},
		Active:     stripe.Bool(true),
	}
	iter := c.sc.Prices.List(params)

	var prices []Price
	for iter.Next() {
		prices = append(prices, Price{ID: iter.Price().ID})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return prices, nil
}

// CreateCheckoutSession создаёт hosted checkout-сессию в режиме подписки
// с оплатой картой или PayPal и возвращает URL страницы оплаты.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CreateSessionParams) (string, error) {
	const op = "paymentprovider.CreateCheckoutSession"

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
			"paypal",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(p.CustomerEmail),
	}
	sess, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sess.URL, nil
}

func stringPtr(s string) *string {
	return &s
}
