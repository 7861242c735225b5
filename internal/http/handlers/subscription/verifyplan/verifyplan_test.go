package verifyplan

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/translatio/internal/http/middlewarectx"
	services "github.com/magabrotheeeer/translatio/internal/services/subscription"
)

// Мок сервиса верификации
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) VerifyPlan(ctx context.Context, userID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func doRequest(t *testing.T, handler *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/api/subscription/verifyplan", &buf)
	ctx := context.WithValue(req.Context(), middlewarectx.UserID, "6650f0a1b2c3d4e5f6a7b8c9")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestVerifyPlanHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		wantStatusCode int
		wantSuccess    bool
		wantMessage    string
	}{
		{
			name:           "successful verification",
			wantStatusCode: http.StatusOK,
			wantSuccess:    true,
			wantMessage:    "subscription verified successfully",
		},
		{
			name:           "unpaid session returns 200 with success false",
			serviceErr:     services.ErrVerificationFailed,
			wantStatusCode: http.StatusOK,
			wantSuccess:    false,
			wantMessage:    "payment has not been completed",
		},
		{
			name:           "unknown user",
			serviceErr:     services.ErrUserNotFound,
			wantStatusCode: http.StatusNotFound,
			wantMessage:    "user not found",
		},
		{
			name:           "verification already in progress",
			serviceErr:     services.ErrVerificationInProgress,
			wantStatusCode: http.StatusConflict,
		},
		{
			name:           "provider failure",
			serviceErr:     services.ErrUpstream,
			wantStatusCode: http.StatusBadGateway,
			wantMessage:    "payment provider error",
		},
		{
			name:           "unknown plan type",
			serviceErr:     services.ErrUnknownPlanType,
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(ServiceMock)
			svcMock.On("VerifyPlan", mock.Anything, "6650f0a1b2c3d4e5f6a7b8c9", "cs_test_123").
				Return(tt.serviceErr)

			handler := New(newNoopLogger(), svcMock)
			rec := doRequest(t, handler, Request{SessionID: "cs_test_123"})

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantSuccess, resp.Success)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, resp.Message)
			}
		})
	}

	t.Run("missing session id", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := doRequest(t, handler, Request{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
