// Package smtp предоставляет транспорт для отправки писем пользователям.
package smtp

import "io"

// Client описывает протокольную сессию SMTP, достаточную для отправки письма.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает SMTP-сессии и сообщает адрес отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
