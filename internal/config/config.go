// Package config загрузка конфигурации: TOML файл, затем переменные окружения VENUE_*
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "VENUE"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Storage  StorageConfig  `toml:"storage"`
	Booking  BookingConfig  `toml:"booking"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"` // пусто - только stdout
	Level string `toml:"level"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// AuthConfig проверка токенов провайдера авторизации
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// StorageConfig хранилище чеков
type StorageConfig struct {
	URL              string `toml:"url"`
	ServiceKey       string `toml:"service_key"`
	Bucket           string `toml:"bucket"`
	Timeout          int    `toml:"timeout"` // секунды
	FailureThreshold int64  `toml:"failure_threshold"`
}

// TimeoutDuration таймаут запроса к хранилищу
func (s StorageConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// BookingConfig политика бронирований
type BookingConfig struct {
	RequireReceiptForPaid        bool   `toml:"require_receipt_for_paid"`
	AwaitingVerificationStatusID int64  `toml:"awaiting_verification_status_id"`
	VerifiedStatusID             int64  `toml:"verified_status_id"`
	CurrencyCode                 string `toml:"currency_code"`
}

// EventsConfig шина событий в памяти процесса
type EventsConfig struct {
	BufferSize int64 `toml:"buffer_size"`
}

// envOverrides секреты и адреса, которые удобнее задавать окружением
type envOverrides struct {
	HTTPPort          int    `envconfig:"HTTP_PORT"`
	DBHost            string `envconfig:"DB_HOST"`
	DBPort            int    `envconfig:"DB_PORT"`
	DBUser            string `envconfig:"DB_USER"`
	DBPassword        string `envconfig:"DB_PASSWORD"`
	DBName            string `envconfig:"DB_NAME"`
	LogLevel          string `envconfig:"LOG_LEVEL"`
	JWTSecret         string `envconfig:"JWT_SECRET"`
	StorageURL        string `envconfig:"STORAGE_URL"`
	StorageServiceKey string `envconfig:"STORAGE_SERVICE_KEY"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "venue",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "jhcsc-venue",
			Path:        "/metrics",
		},
		Storage: StorageConfig{
			Bucket:           "receipts",
			Timeout:          10,
			FailureThreshold: 5,
		},
		Booking: BookingConfig{
			RequireReceiptForPaid:        false,
			AwaitingVerificationStatusID: 6,
			VerifiedStatusID:             2,
			CurrencyCode:                 "PHP",
		},
		Events: EventsConfig{
			BufferSize: 64,
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию и применяет переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return nil, fmt.Errorf("config: read environment: %w", err)
	}
	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(env envOverrides) {
	setInt(&c.Server.HTTPPort, env.HTTPPort)
	setString(&c.Database.Host, env.DBHost)
	setInt(&c.Database.Port, env.DBPort)
	setString(&c.Database.User, env.DBUser)
	setString(&c.Database.Password, env.DBPassword)
	setString(&c.Database.DBName, env.DBName)
	setString(&c.Logs.Level, env.LogLevel)
	setString(&c.Auth.JWTSecret, env.JWTSecret)
	setString(&c.Storage.URL, env.StorageURL)
	setString(&c.Storage.ServiceKey, env.StorageServiceKey)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Storage.URL == "" || c.Storage.ServiceKey == "" {
		problems = append(problems, "storage.url and storage.service_key are required")
	}
	if c.Storage.Bucket == "" {
		problems = append(problems, "storage.bucket is required")
	}
	if c.Booking.AwaitingVerificationStatusID <= 0 || c.Booking.VerifiedStatusID <= 0 {
		problems = append(problems, "booking payment status ids must be positive")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "logs.level must be one of debug, info, warn, error")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
