package buyplan

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

// Мок сервиса покупки
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) BuyPlan(ctx context.Context, userID, priceID string) (string, error) {
	args := m.Called(ctx, userID, priceID)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func doRequest(t *testing.T, handler *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/api/subscription/buyplan", &buf)
	ctx := context.WithValue(req.Context(), middlewarectx.UserID, "6650f0a1b2c3d4e5f6a7b8c9")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestBuyPlanHandler_ServeHTTP(t *testing.T) {
	t.Run("returns session url", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("BuyPlan", mock.Anything, "6650f0a1b2c3d4e5f6a7b8c9", "price_123").
			Return("https://checkout.stripe.com/c/pay/cs_test_123", nil)

		handler := New(newNoopLogger(), svcMock)
		rec := doRequest(t, handler, Request{PriceID: "price_123"})

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Success bool              `json:"success"`
			Data    map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", resp.Data["session_url"])
	})

	t.Run("unknown price id", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("BuyPlan", mock.Anything, mock.Anything, "price_999").
			Return("", services.ErrPlanNotFound)

		handler := New(newNoopLogger(), svcMock)
		rec := doRequest(t, handler, Request{PriceID: "price_999"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("BuyPlan", mock.Anything, mock.Anything, mock.Anything).
			Return("", services.ErrUpstream)

		handler := New(newNoopLogger(), svcMock)
		rec := doRequest(t, handler, Request{PriceID: "price_123"})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("missing price id", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		rec := doRequest(t, handler, Request{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
