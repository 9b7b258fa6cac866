// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек всех сервисов.
type Config struct {
	Env              string `yaml:"env" env:"ENV" env-default:"local"`
	RedisConnection  `yaml:"redis_connection"`
	HTTPServer       `yaml:"http_server"`
	IdentityProvider `yaml:"identity_provider"`
	NewsAPI          `yaml:"news_api"`
	RabbitMQ         `yaml:"rabbitmq"`
	Reader           `yaml:"reader"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis —
// хранилищу данных о доставке и подписках.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// IdentityProvider структура для настройки подключения к провайдеру учётных записей.
//
// BaseURL — адрес провайдера. ServiceKey — сервисный ключ для административных
// операций (создание аккаунта). JWTSecret — общий секрет провайдера; если задан,
// токены проверяются локально без сетевого вызова.
type IdentityProvider struct {
	BaseURL     string        `yaml:"base_url" env:"IDENTITY_PROVIDER_URL"`
	StubAddress string        `yaml:"stub_address" env-default:"localhost:9999"`
	ServiceKey  string        `yaml:"service_key" env:"IDENTITY_SERVICE_KEY"`
	JWTSecret   string        `yaml:"jwt_secret" env:"IDENTITY_JWT_SECRET"`
	TokenTTL    time.Duration `yaml:"token_ttl" env-default:"24h"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
}

// NewsAPI структура для настройки внешнего новостного API.
// Пустой APIKey переводит агрегатор новостей в режим статической заглушки.
type NewsAPI struct {
	APIKey  string        `yaml:"api_key" env:"NEWS_API_KEY"`
	BaseURL string        `yaml:"base_url" env-default:"https://newsapi.org"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

// RabbitMQ структура для настройки брокера событий.
// Пустой URL отключает публикацию событий о подписках.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"dailypaper.events"`
	Queue    string `yaml:"queue" env-default:"subscription.events"`
}

// Reader структура для настройки клиентского приложения.
type Reader struct {
	ServerURL       string        `yaml:"server_url" env:"DAILY_PAPER_URL" env-default:"http://localhost:8080"`
	ProviderURL     string        `yaml:"provider_url" env:"IDENTITY_PROVIDER_URL" env-default:"http://localhost:9999"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env-default:"60s"`
	TokenPath       string        `yaml:"token_path"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
// Завершает процесс, если файл отсутствует или не читается.
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
