// Package services содержит логику бизнес-уровня покупки и верификации подписок.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/translatio/internal/lib/plans"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	"github.com/magabrotheeeer/translatio/internal/models"
	"github.com/magabrotheeeer/translatio/internal/paymentprovider"
	"github.com/magabrotheeeer/translatio/internal/rabbitmq"
	"github.com/magabrotheeeer/translatio/internal/storage/repository"
)

// Ошибки бизнес-уровня подписок.
var (
	// ErrUserNotFound — пользователь сессии отсутствует в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrVerificationFailed — сессия не завершена или не оплачена.
	// Ожидаемый исход, а не сбой: наружу уходит success:false.
	ErrVerificationFailed = errors.New("payment has not been completed")
	// ErrVerificationInProgress — ту же сессию уже верифицирует другой запрос.
	ErrVerificationInProgress = errors.New("verification already in progress")
	// ErrPlanNotFound — запрошенный тариф отсутствует среди активных цен.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrUnknownPlanType — имя тарифа не входит в статическую таблицу квот.
	ErrUnknownPlanType = errors.New("unknown plan type")
	// ErrUpstream — сбой платёжного провайдера. Детали остаются в логах.
	ErrUpstream = errors.New("payment provider error")
	// ErrStorage — сбой хранилища при записи результата верификации.
	ErrStorage = errors.New("storage error")
)

// Сентинелы для отсутствующих полей в данных провайдера. Платёж уже
// прошёл, поэтому запись сохраняется с заглушками, а не отвергается.
const (
	unknownPlanName     = "Unknown Plan"
	unknownBillingCycle = "Unknown Billing Cycle"
	unknownPlanID       = "Unknown Plan ID"
	unknownProductID    = "Unknown Product ID"
	unknownInvoiceID    = "Unknown invoice id"
)

// fallbackEmail подставляется в checkout-сессию, если у пользователя
// не сохранён email.
const fallbackEmail = "abc@gmail.com"

// verifyLockTTL — время жизни блокировки верификации одной сессии.
const verifyLockTTL = 30 * time.Second

// PaymentProvider описывает вызовы платёжного провайдера, нужные сервису.
type PaymentProvider interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*paymentprovider.Subscription, error)
	ListActivePrices(ctx context.Context, pageSize int64) ([]paymentprovider.Price, error)
	CreateCheckoutSession(ctx context.Context, p paymentprovider.CreateSessionParams) (string, error)
}

// SubscriptionRepository описывает хранилище записей о подписках.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, plan models.SubscriptionPlan) (string, error)
	FindSubscriptionBySessionID(ctx context.Context, sessionID string) (*models.SubscriptionPlan, error)
}

// UserRepository описывает операции над пользователями, нужные сервису.
type UserRepository interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	ApplySubscription(ctx context.Context, userID, subscriptionID string, maxTries int) error
}

// Locker описывает короткоживущие блокировки по ключу.
type Locker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// EventPublisher публикует события подписок в брокер.
type EventPublisher interface {
	Publish(exchange, routingKey string, message any) error
}

// SubscriptionService реализует покупку тарифа и верификацию оплаты.
type SubscriptionService struct {
	users         UserRepository
	subscriptions SubscriptionRepository
	provider      PaymentProvider
	locker        Locker
	publisher     EventPublisher
	log           *slog.Logger
	frontendURL   string
	pricePageSize int64
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(
	users UserRepository,
	subscriptions SubscriptionRepository,
	provider PaymentProvider,
	locker Locker,
	publisher EventPublisher,
	log *slog.Logger,
	frontendURL string,
	pricePageSize int64,
) *SubscriptionService {
	return &SubscriptionService{
		users:         users,
		subscriptions: subscriptions,
		provider:      provider,
		locker:        locker,
		publisher:     publisher,
		log:           log,
		frontendURL:   frontendURL,
		pricePageSize: pricePageSize,
	}
}

// BuyPlan проверяет, что запрошенный тариф есть среди активных цен
// провайдера, и создаёт hosted checkout-сессию. Возвращает URL сессии.
func (s *SubscriptionService) BuyPlan(ctx context.Context, userID, priceID string) (string, error) {
	const op = "services.subscription.BuyPlan"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	prices, err := s.provider.ListActivePrices(ctx, s.pricePageSize)
	if err != nil {
		s.log.Error("failed to list prices", sl.Err(err))
		return "", ErrUpstream
	}
	found := false
	for _, p := range prices {
		if p.ID == priceID {
			found = true
			break
		}
	}
	if !found {
		return "", ErrPlanNotFound
	}

	email := user.Email
	if email == "" {
		email = fallbackEmail
	}
	sessionURL, err := s.provider.CreateCheckoutSession(ctx, paymentprovider.CreateSessionParams{
		PriceID:       priceID,
		CustomerEmail: email,
		SuccessURL:    s.frontendURL + "/verify?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.frontendURL + "/verify?success=false&session_id={CHECKOUT_SESSION_ID}",
	})
	if err != nil {
		s.log.Error("failed to create checkout session", sl.Err(err))
		return "", ErrUpstream
	}
	return sessionURL, nil
}

// VerifyPlan сверяет checkout-сессию с провайдером, сохраняет запись о
// подписке и обновляет квоту пользователя. Операция идемпотентна по
// идентификатору сессии: повторный вызов не создаёт вторую запись, а
// повторно применяет привязку к пользователю.
func (s *SubscriptionService) VerifyPlan(ctx context.Context, userID, sessionID string) error {
	const op = "services.subscription.VerifyPlan"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	// Сессия уже верифицирована раньше: только повторяем привязку.
	existing, err := s.subscriptions.FindSubscriptionBySessionID(ctx, sessionID)
	if err != nil {
		s.log.Error("failed to look up session", sl.Err(err))
		return ErrStorage
	}
	if existing != nil {
		if existing.UserID != user.ID {
			return ErrVerificationFailed
		}
		return s.applyQuota(ctx, userID, existing, sessionID)
	}

	ok, err := s.locker.AcquireLock(ctx, "verify:"+sessionID, verifyLockTTL)
	if err != nil {
		s.log.Error("failed to acquire verification lock", sl.Err(err))
		return ErrStorage
	}
	if !ok {
		return ErrVerificationInProgress
	}
	defer func() {
		if err := s.locker.ReleaseLock(ctx, "verify:"+sessionID); err != nil {
			s.log.Warn("failed to release verification lock", sl.Err(err))
		}
	}()

	session, err := s.provider.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.log.Error("failed to retrieve checkout session",
			slog.String("session_id", sessionID), sl.Err(err))
		return ErrUpstream
	}
	if session.Status != paymentprovider.SessionStatusComplete ||
		session.PaymentStatus != paymentprovider.PaymentStatusPaid {
		return ErrVerificationFailed
	}
	if session.SubscriptionID == "" {
		s.log.Error("paid session has no subscription reference",
			slog.String("session_id", sessionID))
		return ErrUpstream
	}

	sub, err := s.provider.GetSubscription(ctx, session.SubscriptionID)
	if err != nil {
		s.log.Error("failed to retrieve subscription",
			slog.String("subscription_id", session.SubscriptionID), sl.Err(err))
		return ErrUpstream
	}

	plan := buildSubscriptionPlan(user, session, sub)
	subscriptionID, err := s.subscriptions.CreateSubscription(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Параллельный запрос успел вставить запись первым.
			return s.reapplyExisting(ctx, userID, user, sessionID)
		}
		s.log.Error("failed to store subscription", sl.Err(err))
		return ErrStorage
	}

	quota, known := plans.Quota(plan.PlanDetails.PlanName)
	if !known {
		return ErrUnknownPlanType
	}

	if err := s.users.ApplySubscription(ctx, userID, subscriptionID, quota); err != nil {
		// Запись о подписке уже сохранена. Отдаём привязку воркеру,
		// чтобы оплата не потерялась.
		s.log.Error("failed to apply subscription to user", sl.Err(err))
		event := models.ProvisionEvent{
			EventID:        uuid.NewString(),
			SessionID:      sessionID,
			UserID:         userID,
			SubscriptionID: subscriptionID,
			MaxTries:       quota,
			CreatedAt:      time.Now().UTC(),
		}
		if pubErr := s.publisher.Publish(rabbitmq.Exchange, rabbitmq.RoutingKeyProvision, event); pubErr != nil {
			s.log.Error("failed to publish provision event", sl.Err(pubErr))
			return ErrStorage
		}
		return nil
	}

	s.publishActivated(user, plan, quota)
	return nil
}

// applyQuota повторно применяет привязку уже сохранённой подписки.
func (s *SubscriptionService) applyQuota(ctx context.Context, userID string, plan *models.SubscriptionPlan, sessionID string) error {
	quota, known := plans.Quota(plan.PlanDetails.PlanName)
	if !known {
		return ErrUnknownPlanType
	}
	if err := s.users.ApplySubscription(ctx, userID, plan.ID.Hex(), quota); err != nil {
		s.log.Error("failed to re-apply subscription",
			slog.String("session_id", sessionID), sl.Err(err))
		return ErrStorage
	}
	return nil
}

// reapplyExisting обрабатывает проигрыш гонки за вставку записи.
func (s *SubscriptionService) reapplyExisting(ctx context.Context, userID string, user *models.User, sessionID string) error {
	existing, err := s.subscriptions.FindSubscriptionBySessionID(ctx, sessionID)
	if err != nil || existing == nil {
		s.log.Error("failed to load concurrently inserted subscription", sl.Err(err))
		return ErrStorage
	}
	if existing.UserID != user.ID {
		return ErrVerificationFailed
	}
	return s.applyQuota(ctx, userID, existing, sessionID)
}

// publishActivated отправляет событие для письма-подтверждения. Сбой
// публикации не отменяет успешную верификацию.
func (s *SubscriptionService) publishActivated(user *models.User, plan models.SubscriptionPlan, quota int) {
	event := models.ActivatedEvent{
		EventID:   uuid.NewString(),
		Email:     user.Email,
		Name:      user.Name,
		PlanName:  plan.PlanDetails.PlanName,
		MaxTries:  quota,
		EndDate:   plan.PlanDetails.EndDate,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(rabbitmq.Exchange, rabbitmq.RoutingKeyActivated, event); err != nil {
		s.log.Warn("failed to publish activation event", sl.Err(err))
	}
}

// buildSubscriptionPlan собирает запись о подписке из данных провайдера.
// Отсутствующие поля деградируют до сентинелов: платёж уже прошёл,
// поэтому запись сохраняется в любом случае.
func buildSubscriptionPlan(user *models.User, session *paymentprovider.CheckoutSession, sub *paymentprovider.Subscription) models.SubscriptionPlan {
	planName := unknownPlanName
	if sub.ProductName != nil {
		planName = *sub.ProductName
	}
	planID := unknownPlanID
	if sub.PlanID != nil {
		planID = *sub.PlanID
	}
	productID := unknownProductID
	if sub.ProductID != nil {
		productID = *sub.ProductID
	}
	billingCycle := unknownBillingCycle
	if sub.BillingInterval != nil {
		switch *sub.BillingInterval {
		case "year":
			billingCycle = "yearly"
		case "month":
			billingCycle = "monthly"
		case "week":
			billingCycle = "weekly"
		case "day":
			billingCycle = "daily"
		}
	}
	var amount float64
	if sub.UnitAmount != nil {
		amount = float64(*sub.UnitAmount) / 100
	}
	invoiceID := unknownInvoiceID
	if sub.LatestInvoiceID != nil {
		invoiceID = *sub.LatestInvoiceID
	}

	return models.SubscriptionPlan{
		StripeSubscriptionID: sub.ID,
		UserID:               user.ID,
		StripeCustomerID:     session.CustomerID,
		CheckoutSessionID:    session.ID,
		PlanDetails: models.PlanDetails{
			PlanID:       planID,
			ProductID:    productID,
			PlanName:     planName,
			BillingCycle: billingCycle,
			StartDate:    sub.PeriodStart,
			EndDate:      sub.PeriodEnd,
		},
		AutoRenew:  true,
		Refundable: false,
		Status:     sub.Status,
		PaymentHistory: []models.PaymentDetails{{
			InvoiceID:     invoiceID,
			PaymentMethod: session.PaymentMethod,
			Currency:      sub.Currency,
			Amount:        amount,
			PaymentDate:   session.CreatedAt,
		}},
	}
}
