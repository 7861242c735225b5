package smtp

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/magabrotheeeer/translatio/internal/config"
	"github.com/magabrotheeeer/translatio/internal/lib/sl"
)

// Transport открывает аутентифицированные STARTTLS-сессии к SMTP-серверу.
type Transport struct {
	host string
	port string
	user string
	pass string
	log  *slog.Logger
}

// NewTransport создает Transport по настройкам SMTP из конфигурации.
func NewTransport(cfg *config.Config, log *slog.Logger) *Transport {
	return &Transport{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		log:  log,
	}
}

// Connect устанавливает соединение, требует STARTTLS и проходит
// PLAIN-аутентификацию. *smtp.Client сам реализует интерфейс Client.
func (t *Transport) Connect() (Client, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(t.host, t.port))
	if err != nil {
		t.log.Error("failed to dial SMTP server", sl.Err(err))
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		t.log.Error("failed to create SMTP client", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		t.closeClient(client)
		return nil, fmt.Errorf("smtp server does not support STARTTLS")
	}
	tlsConfig := &tls.Config{
		ServerName: t.host,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		t.log.Error("failed to start TLS", sl.Err(err))
		t.closeClient(client)
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", t.user, t.pass, t.host)
	if err = client.Auth(auth); err != nil {
		t.log.Error("smtp auth failed", sl.Err(err))
		t.closeClient(client)
		return nil, fmt.Errorf("smtp auth failed: %w", err)
	}

	return client, nil
}

// GetSMTPUser возвращает адрес отправителя писем.
func (t *Transport) GetSMTPUser() string {
	return t.user
}

func (t *Transport) closeClient(client *smtp.Client) {
	if err := client.Close(); err != nil {
		t.log.Error("failed to close SMTP client", sl.Err(err))
	}
}
