// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек процесса.
// Читается один раз при старте и дальше передаётся компонентам явно.
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"development"`
	FrontendURL     string `yaml:"frontend_url" env:"LOCAL_FRONTEND_URL"`
	HTTPServer      `yaml:"http_server"`
	MongoConnection `yaml:"mongo_connection"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	JWTToken        `yaml:"jwttoken"`
	Stripe          `yaml:"stripe"`
	Cloudinary      `yaml:"cloudinary"`
	Gemini          `yaml:"gemini"`
	SMTP            `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"PORT_ADDRESS" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// MongoConnection структура для настройки подключения к MongoDB.
type MongoConnection struct {
	MongoURL      string        `yaml:"mongodb_url" env:"MONGODB_URL"`
	Database      string        `yaml:"database" env-default:"saas-data"`
	MongoTimeout  time.Duration `yaml:"timeout" env-default:"10s"`
	RetryAttempts int           `yaml:"retry_attempts" env-default:"3"`
	RetryInterval time.Duration `yaml:"retry_interval" env-default:"5s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ структура для настройки подключения к брокеру очередей.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном сессии.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Stripe структура для настройки платёжного провайдера.
type Stripe struct {
	StripeSecretKey string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	PricePageSize   int64  `yaml:"price_page_size" env-default:"10"`
}

// Cloudinary структура для настройки хранилища изображений.
type Cloudinary struct {
	CloudName        string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
	CloudinarySecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
}

// Gemini структура для настройки LLM-провайдера.
type Gemini struct {
	GeminiAPIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"model" env-default:"gemini-1.5-flash-latest"`
}

// SMTP структура для настройки почтового транспорта.
type SMTP struct {
	SMTPHost string `yaml:"host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"port" env-default:"587"`
	SMTPUser string `yaml:"user" env:"SMTP_USER"`
	SMTPPass string `yaml:"pass" env:"SMTP_PASS"`
}

// MustLoad функция для загрузки конфига из файла по пути CONFIG_PATH
// с наложением переменных окружения. Завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// IsProduction сообщает, запущен ли процесс вне локальной среды.
// От этого зависит флаг Secure у cookie сессии.
func (c *Config) IsProduction() bool {
	return c.Env != "development" && c.Env != "local"
}
