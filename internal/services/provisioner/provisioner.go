// Package services содержит логику воркера provisioner: повторное
// применение привязки подписки и отправку писем-подтверждений.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/translatio/internal/lib/sl"
	"github.com/magabrotheeeer/translatio/internal/lib/smtp"
	"github.com/magabrotheeeer/translatio/internal/models"
)

// UserRepository описывает операцию привязки подписки к пользователю.
type UserRepository interface {
	ApplySubscription(ctx context.Context, userID, subscriptionID string, maxTries int) error
}

// ProvisionerService обрабатывает события подписок из очередей.
type ProvisionerService struct {
	users     UserRepository
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewProvisionerService создает новый экземпляр ProvisionerService.
func NewProvisionerService(users UserRepository, transport smtp.TransportInterface, log *slog.Logger) *ProvisionerService {
	return &ProvisionerService{
		users:     users,
		transport: transport,
		log:       log,
	}
}

// HandleProvision повторно применяет привязку подписки к пользователю.
// Операция идемпотентна, при ошибке сообщение уходит в повторную доставку.
func (s *ProvisionerService) HandleProvision(body []byte) error {
	var event models.ProvisionEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal provision event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	ctx := context.Background()
	if err := s.users.ApplySubscription(ctx, event.UserID, event.SubscriptionID, event.MaxTries); err != nil {
		s.log.Error("failed to apply subscription",
			slog.String("session_id", event.SessionID),
			slog.String("user_id", event.UserID), sl.Err(err))
		return err
	}
	s.log.Info("subscription applied",
		slog.String("session_id", event.SessionID),
		slog.String("user_id", event.UserID))
	return nil
}

// HandleActivated отправляет письмо-подтверждение активации подписки.
func (s *ProvisionerService) HandleActivated(body []byte) error {
	var event models.ActivatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal activation event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}
	if event.Email == "" {
		s.log.Warn("activation event without email, skipping",
			slog.String("event_id", event.EventID))
		return nil
	}

	to := []string{event.Email}
	subject := "Ваша подписка активирована"
	bodyText := fmt.Sprintf(`Здравствуйте, %s!
			Ваш тариф %s активирован, доступно %d попыток.
			Подписка действует до %s.
		`, event.Name, event.PlanName, event.MaxTries, event.EndDate.Format("02.01.2006"))

	return s.sendEmail(to, subject, bodyText)
}

func (s *ProvisionerService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
