package doc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Мок сервиса перевода
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Translate(ctx context.Context, text, language string) (string, error) {
	args := m.Called(ctx, text, language)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func multipartBody(t *testing.T, fileName, content, language string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if language != "" {
		require.NoError(t, writer.WriteField("language", language))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestDocHandler_ServeHTTP(t *testing.T) {
	t.Run("translated file returned as attachment", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Translate", mock.Anything, "Hello world", "French").
			Return("Bonjour le monde", nil)

		handler := New(newNoopLogger(), svcMock)
		body, contentType := multipartBody(t, "notes.txt", "Hello world", "French")
		req := httptest.NewRequest(http.MethodPost, "/api/genai/doc", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="notes_translated_French.txt"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "Bonjour le monde", rec.Body.String())
		svcMock.AssertExpectations(t)
	})

	t.Run("missing language", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		body, contentType := multipartBody(t, "notes.txt", "Hello", "")
		req := httptest.NewRequest(http.MethodPost, "/api/genai/doc", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Target language not specified", resp.Message)
	})

	t.Run("missing file", func(t *testing.T) {
		handler := New(newNoopLogger(), new(ServiceMock))
		body, contentType := multipartBody(t, "", "", "French")
		req := httptest.NewRequest(http.MethodPost, "/api/genai/doc", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unsupported file type", func(t *testing.T) {
		svcMock := new(ServiceMock)
		handler := New(newNoopLogger(), svcMock)
		body, contentType := multipartBody(t, "notes.pdf", "Hello", "French")
		req := httptest.NewRequest(http.MethodPost, "/api/genai/doc", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Unsupported file type", resp.Message)
		svcMock.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider failure", func(t *testing.T) {
		svcMock := new(ServiceMock)
		svcMock.On("Translate", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("language model is unavailable"))

		handler := New(newNoopLogger(), svcMock)
		body, contentType := multipartBody(t, "notes.txt", "Hello", "French")
		req := httptest.NewRequest(http.MethodPost, "/api/genai/doc", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
