// Package authcookie собирает http-only cookie с токеном сессии.
//
// Cookie ставится на весь домен (Path=/), с SameSite=Strict против CSRF и
// HttpOnly против XSS. Флаг Secure включается вне локальной среды.
package authcookie

import (
	"net/http"
	"time"
)

// Name — имя cookie с токеном сессии.
const Name = "token"

// New возвращает cookie с токеном сессии и заданным временем жизни.
func New(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Expired возвращает немедленно истекающую cookie с тем же именем.
// Браузер сбрасывает сессию независимо от того, была ли она установлена.
func Expired(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     Name,
		Value:    token,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
