package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config корневая конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	SalonAPI SalonAPIConfig `toml:"salon_api"`
	Auth     AuthConfig     `toml:"auth"`
	Sessions SessionsConfig `toml:"sessions"`
	Redis    RedisConfig    `toml:"redis"`
	Database DatabaseConfig `toml:"database"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SalonAPIConfig внешний Booking/Review API
type SalonAPIConfig struct {
	URL            string `toml:"url"`
	Timeout        int    `toml:"timeout"` // секунды
	NearestSalonID int64  `toml:"nearest_salon_id"`
}

type AuthConfig struct {
	JWTSecret    string   `toml:"jwt_secret"`
	AllowedRoles []string `toml:"allowed_roles"`
}

// SessionsConfig хранилище сессий бронирования и черновиков отзывов
type SessionsConfig struct {
	Backend           string `toml:"backend"`             // memory | redis
	TTL               int    `toml:"ttl"`                 // секунды
	SubmitLockTimeout int    `toml:"submit_lock_timeout"` // секунды, блокировка черновика и сессии
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DatabaseConfig Postgres для журнала отправок отзывов
type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
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

// maxWritesUnderLock число запросов к API, которые может выполнить одна отправка отзыва
const maxWritesUnderLock = 3

const (
	SessionsBackendMemory = "memory"
	SessionsBackendRedis  = "redis"
)

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_salon_client",
		},
		SalonAPI: SalonAPIConfig{
			Timeout:        10,
			NearestSalonID: 1,
		},
		Auth: AuthConfig{
			AllowedRoles: []string{"customer"},
		},
		Sessions: SessionsConfig{
			Backend:           SessionsBackendMemory,
			TTL:               3600,
			SubmitLockTimeout: 60,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.SalonAPI.URL == "" {
		problems = append(problems, "salon_api.url is required")
	}
	if c.SalonAPI.Timeout <= 0 {
		problems = append(problems, "salon_api.timeout must be positive")
	}
	if c.SalonAPI.NearestSalonID <= 0 {
		problems = append(problems, "salon_api.nearest_salon_id must be positive")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if len(c.Auth.AllowedRoles) == 0 {
		problems = append(problems, "auth.allowed_roles must not be empty")
	}
	if c.Sessions.TTL <= 0 {
		problems = append(problems, "sessions.ttl must be positive")
	}
	if c.Sessions.SubmitLockTimeout <= 0 {
		problems = append(problems, "sessions.submit_lock_timeout must be positive")
	}
	// Под блокировкой выполняется до трех записей отзыва, каждая ограничена таймаутом API
	if c.SalonAPI.Timeout > 0 && c.Sessions.SubmitLockTimeout <= maxWritesUnderLock*c.SalonAPI.Timeout {
		problems = append(problems, fmt.Sprintf("sessions.submit_lock_timeout must exceed %d x salon_api.timeout", maxWritesUnderLock))
	}

	switch c.Sessions.Backend {
	case SessionsBackendMemory:
	case SessionsBackendRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, "redis.addr is required for redis sessions backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("sessions.backend %q is not supported", c.Sessions.Backend))
	}

	if c.Database.Enabled && (c.Database.Host == "" || c.Database.DBName == "") {
		problems = append(problems, "database.host and database.dbname are required when database is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
