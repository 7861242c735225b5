// Package imagestore реализует клиента Cloudinary для загрузки и
// удаления изображений профиля. Изображение приходит data-URL строкой,
// наружу отдаётся только secure_url.
package imagestore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// publicIDRe извлекает public_id из secure_url:
// часть между /v<цифры>/ и расширением файла.
var publicIDRe = regexp.MustCompile(`/v\d+/(.+)\.[a-zA-Z]+$`)

// ErrNoPublicID возвращается, когда из URL не удаётся извлечь public_id.
var ErrNoPublicID = errors.New("failed to extract public_id from url")

// Client — клиент Cloudinary.
type Client struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт нового клиента Cloudinary.
func NewClient(cloudName, apiKey, apiSecret string) *Client {
	return &Client{
		cloudName:  cloudName,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		apiURL:     "https://api.cloudinary.com/v1_1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Upload загружает изображение (data-URL) и возвращает его secure_url.
func (c *Client) Upload(ctx context.Context, dataURL string) (string, error) {
	const op = "imagestore.Upload"

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	form := url.Values{}
	form.Set("file", dataURL)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", c.sign("timestamp="+timestamp))

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.apiURL, c.cloudName)
	var result uploadResponse
	if err := c.postForm(ctx, endpoint, form, &result); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if result.SecureURL == "" {
		if result.Error.Message != "" {
			return "", fmt.Errorf("%s: %s", op, result.Error.Message)
		}
		return "", fmt.Errorf("%s: empty secure_url in response", op)
	}
	return result.SecureURL, nil
}

// Destroy удаляет изображение по его secure_url.
func (c *Client) Destroy(ctx context.Context, imageURL string) error {
	const op = "imagestore.Destroy"

	publicID, err := ExtractPublicID(imageURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", c.apiKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", c.sign("public_id="+publicID+"&timestamp="+timestamp))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.apiURL, c.cloudName)
	var result destroyResponse
	if err := c.postForm(ctx, endpoint, form, &result); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("%s: unexpected result %q", op, result.Result)
	}
	return nil
}

// ExtractPublicID извлекает public_id изображения из его secure_url.
func ExtractPublicID(imageURL string) (string, error) {
	m := publicIDRe.FindStringSubmatch(imageURL)
	if m == nil {
		return "", ErrNoPublicID
	}
	return m[1], nil
}

// sign подписывает строку параметров секретом аккаунта (SHA-1).
func (c *Client) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
