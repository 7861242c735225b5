// Package jwt реализует генерацию и парсинг JWT токенов сессии.
//
// В claims хранится только идентификатор пользователя (hex ObjectID) и
// стандартные поля срока действия. Токен кладётся в http-only cookie.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с заданным TTL.
	GenerateToken(userID string) (string, error)
	// GenerateExpiredToken выпускает уже истёкший токен (для logout-cookie).
	GenerateExpiredToken(userID string) (string, error)
	// ParseToken возвращает *SessionClaims, если токен корректен.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
