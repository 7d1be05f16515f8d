// config реализует конфигурацию сервиса комментариев: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load (--config);
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
//
// Перед чтением подхватывается ./.env (если есть); уже выставленные переменные он не перекрывает.
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Limits    LimitsConfig    `yaml:"limits"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Notify    NotifyConfig    `yaml:"notify"`
	CORS      CORSConfig      `yaml:"cors"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — публичный REST-сервер (API + /livez, /healthz, /metrics).
type HTTPConfig struct {
	Host              string        `yaml:"host"                env:"HTTP_HOST"                env-default:"0.0.0.0"`
	Port              string        `yaml:"port"                env:"HTTP_PORT"                env-default:"50095"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"HTTP_SHUTDOWN_TIMEOUT"    env-default:"10s"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — хранилище комментариев: PostgreSQL (по умолчанию) или MongoDB.
type DBConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER"    env-default:"postgres"`
	URL    string `yaml:"url"    env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — кэш статистики. Пустой URL отключает кэш.
type RedisConfig struct {
	URL      string        `yaml:"url"       env:"REDIS_URL"`
	Prefix   string        `yaml:"prefix"    env:"REDIS_PREFIX" env-default:"revcomments"`
	StatsTTL time.Duration `yaml:"stats_ttl" env:"STATS_TTL"    env-default:"30s"`
}

// AuthConfig — проверка bearer-токенов, выпущенных auth-сервисом (HS256).
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"   env-required:"true"`
	Issuer    string `yaml:"issuer"     env:"JWT_ISSUER"   env-default:"editorial-auth"`
	Audience  string `yaml:"audience"   env:"JWT_AUDIENCE" env-default:"review-comments"`
}

// LimitsConfig — лимиты выдачи и размера комментария.
type LimitsConfig struct {
	// Пагинация веток: page_size=0 -> все ветки (с page_token -> Default); иначе не больше Max.
	Default int32 `yaml:"default"     env:"DEFAULT_LIMIT" env-default:"20"`
	Max     int32 `yaml:"max"         env:"MAX_LIMIT"     env-default:"200"`
	// Максимальная длина contenido в рунах.
	MaxContent int `yaml:"max_content" env:"MAX_CONTENT"   env-default:"10000"`
}

// RateLimitConfig — лимит мутирующих запросов на одного вызывающего.
// RPS <= 0 отключает лимитер.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"5"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

// NotifyConfig — доставка уведомлений о новых комментариях во внешний webhook.
// Пустой WebhookURL отключает уведомления.
type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" env:"NOTIFY_WEBHOOK_URL"`
	MaxWorkers int           `yaml:"max_workers" env:"NOTIFY_MAX_WORKERS" env-default:"4"`
	Timeout    time.Duration `yaml:"timeout"     env:"NOTIFY_TIMEOUT"     env-default:"5s"`
}

// CORSConfig — разрешённые origin'ы SPA.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config

	validated := func() (*Config, error) {
		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) Явный путь; 2) CONFIG_PATH.
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}

		if err := readFile(path, &cfg); err != nil {
			return nil, err
		}

		return validated()
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := readFile("local.yaml", &cfg); err != nil {
			return nil, err
		}

		return validated()
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validated()
}

// readFile читает YAML и накладывает поверх ENV.
func readFile(path string, cfg *Config) error {
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("failed to overlay env: %w", err)
	}

	return nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if !slices.Contains([]string{"local", "dev", "prod"}, c.Env) {
		return fmt.Errorf("env must be one of local, dev, prod")
	}

	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverMongo {
		return fmt.Errorf("db.driver must be %q or %q", DriverPostgres, DriverMongo)
	}

	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("auth.jwt_secret must be at least 16 bytes")
	}

	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}

	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}

	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}

	if c.Limits.MaxContent <= 0 {
		return fmt.Errorf("limits.max_content must be > 0")
	}

	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be > 0 when rate_limit.rps is set")
	}

	if c.Notify.WebhookURL != "" && c.Notify.MaxWorkers <= 0 {
		return fmt.Errorf("notify.max_workers must be > 0")
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	return nil
}
