package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/translatio/internal/lib/smtp"
	"github.com/magabrotheeeer/translatio/internal/models"
	services "github.com/magabrotheeeer/translatio/internal/services/provisioner"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) ApplySubscription(ctx context.Context, userID, subscriptionID string, maxTries int) error {
	args := m.Called(ctx, userID, subscriptionID, maxTries)
	return args.Error(0)
}

// smtpClientStub пишет письмо в буфер вместо сети.
type smtpClientStub struct {
	buf bytes.Buffer
}

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

func (c *smtpClientStub) Mail(string) error             { return nil }
func (c *smtpClientStub) Rcpt(string) error             { return nil }
func (c *smtpClientStub) Data() (io.WriteCloser, error) { return nopWriteCloser{&c.buf}, nil }
func (c *smtpClientStub) Quit() error                   { return nil }
func (c *smtpClientStub) Close() error                  { return nil }

type transportStub struct {
	client *smtpClientStub
	err    error
}

func (t *transportStub) Connect() (smtp.Client, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.client, nil
}

func (t *transportStub) GetSMTPUser() string { return "noreply@translatio.dev" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleProvision(t *testing.T) {
	event := models.ProvisionEvent{
		EventID:        "evt-1",
		SessionID:      "cs_test_123",
		UserID:         "6650f0a1b2c3d4e5f6a7b8c9",
		SubscriptionID: "775af0a1b2c3d4e5f6a7b8c9",
		MaxTries:       500,
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	t.Run("applies subscription", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("ApplySubscription", mock.Anything, event.UserID, event.SubscriptionID, 500).Return(nil)

		svc := services.NewProvisionerService(users, &transportStub{}, discardLogger())
		require.NoError(t, svc.HandleProvision(body))
		users.AssertExpectations(t)
	})

	t.Run("storage failure requeues", func(t *testing.T) {
		users := new(UserRepoMock)
		users.On("ApplySubscription", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("storage down"))

		svc := services.NewProvisionerService(users, &transportStub{}, discardLogger())
		assert.Error(t, svc.HandleProvision(body))
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := services.NewProvisionerService(new(UserRepoMock), &transportStub{}, discardLogger())
		assert.Error(t, svc.HandleProvision([]byte("not json")))
	})
}

func TestHandleActivated(t *testing.T) {
	event := models.ActivatedEvent{
		EventID:  "evt-2",
		Email:    "test@example.com",
		Name:     "Test User",
		PlanName: "Saas Pro Yearly",
		MaxTries: 500,
		EndDate:  time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	t.Run("sends confirmation email", func(t *testing.T) {
		client := &smtpClientStub{}
		svc := services.NewProvisionerService(new(UserRepoMock), &transportStub{client: client}, discardLogger())

		require.NoError(t, svc.HandleActivated(body))
		sent := client.buf.String()
		assert.Contains(t, sent, "To: test@example.com")
		assert.Contains(t, sent, "Saas Pro Yearly")
		assert.Contains(t, sent, "500")
	})

	t.Run("missing email is skipped without error", func(t *testing.T) {
		empty := event
		empty.Email = ""
		body, err := json.Marshal(empty)
		require.NoError(t, err)

		svc := services.NewProvisionerService(new(UserRepoMock), &transportStub{}, discardLogger())
		require.NoError(t, svc.HandleActivated(body))
	})

	t.Run("smtp failure propagates", func(t *testing.T) {
		svc := services.NewProvisionerService(new(UserRepoMock),
			&transportStub{err: errors.New("dial failed")}, discardLogger())
		assert.Error(t, svc.HandleActivated(body))
	})
}
