package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Admin     AdminConfig     `toml:"admin"`
	Bookings  BookingsConfig  `toml:"bookings"`
	Cashfree  CashfreeConfig  `toml:"cashfree"`
	Payments  PaymentsConfig  `toml:"payments"`
	Reconcile ReconcileConfig `toml:"reconcile"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AdminConfig пароль админки передается только через окружение (ADMIN_PASSWORD)
type AdminConfig struct {
	Password string `toml:"-"`
}

type BookingsConfig struct {
	DefaultListLimit      int `toml:"default_list_limit"`
	AdminDefaultListLimit int `toml:"admin_default_list_limit"`
	MaxListLimit          int `toml:"max_list_limit"`
	CancelWindowHours     int `toml:"cancel_window_hours"`
}

// CashfreeConfig ключи Cashfree читаются из окружения (CASHFREE_APP_ID, CASHFREE_SECRET_KEY)
type CashfreeConfig struct {
	Environment    string `toml:"environment"` // sandbox | prod
	APIVersion     string `toml:"api_version"`
	Timeout        int    `toml:"timeout"`          // секунды на один запрос
	MaxRetries     int    `toml:"max_retries"`      // повторы при сетевых ошибках и 5xx
	MaxElapsedTime int    `toml:"max_elapsed_time"` // секунды на все попытки
	AppID          string `toml:"-"`
	SecretKey      string `toml:"-"`
}

// BaseURL адрес Payment Links API для выбранного окружения
func (c CashfreeConfig) BaseURL() string {
	if c.Environment == "prod" {
		return "https://api.cashfree.com/pg"
	}
	return "https://sandbox.cashfree.com/pg"
}

type PaymentsConfig struct {
	SiteURL          string `toml:"site_url"`
	LinkPrefix       string `toml:"link_prefix"`
	Currency         string `toml:"currency"`
	PlaceholderPhone string `toml:"placeholder_phone"`
	PlaceholderName  string `toml:"placeholder_name"`
	PlaceholderEmail string `toml:"placeholder_email"`
	PurposePrefix    string `toml:"purpose_prefix"`
}

type ReconcileConfig struct {
	Enabled       bool   `toml:"enabled"`
	Schedule      string `toml:"schedule"`       // cron-выражение
	LookbackHours int    `toml:"lookback_hours"` // какие брони считать "свежими"
	BatchSize     int    `toml:"batch_size"`
}

// Load читает TOML-файл, затем переменные окружения (в том числе из .env)
// Секреты берутся только из окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// .env опционален
	_ = godotenv.Load()

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")
	cfg.Cashfree.AppID = os.Getenv("CASHFREE_APP_ID")
	cfg.Cashfree.SecretKey = os.Getenv("CASHFREE_SECRET_KEY")

	if v := os.Getenv("CASHFREE_ENV"); v != "" {
		cfg.Cashfree.Environment = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.Payments.SiteURL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}

func applyDefaults(cfg *Config) {
	setDefault(&cfg.Server.HTTPPort, 8080)
	setDefault(&cfg.Server.ReadTimeout, 10)
	setDefault(&cfg.Server.WriteTimeout, 30)
	setDefault(&cfg.Server.IdleTimeout, 60)
	setDefault(&cfg.Server.ShutdownTimeout, 10)

	setDefault(&cfg.Database.Port, 5432)
	setDefault(&cfg.Database.MaxOpenConns, 10)
	setDefault(&cfg.Database.MaxIdleConns, 5)
	setDefault(&cfg.Database.ConnMaxLifetime, 300)
	setDefaultString(&cfg.Database.SSLMode, "disable")

	setDefaultString(&cfg.Logs.Level, "info")
	setDefaultString(&cfg.Metrics.Path, "/metrics")
	setDefaultString(&cfg.Metrics.ServiceName, "airofix_booking")

	setDefault(&cfg.Bookings.DefaultListLimit, 100)
	setDefault(&cfg.Bookings.AdminDefaultListLimit, 200)
	setDefault(&cfg.Bookings.MaxListLimit, 500)
	setDefault(&cfg.Bookings.CancelWindowHours, 12)

	setDefaultString(&cfg.Cashfree.Environment, "sandbox")
	setDefaultString(&cfg.Cashfree.APIVersion, "2023-08-01")
	setDefault(&cfg.Cashfree.Timeout, 10)
	setDefault(&cfg.Cashfree.MaxRetries, 2)
	setDefault(&cfg.Cashfree.MaxElapsedTime, 20)

	setDefaultString(&cfg.Payments.SiteURL, "http://localhost:3000")
	setDefaultString(&cfg.Payments.LinkPrefix, "AFIX_LINK")
	setDefaultString(&cfg.Payments.Currency, "INR")
	setDefaultString(&cfg.Payments.PlaceholderPhone, "9999999999")
	setDefaultString(&cfg.Payments.PlaceholderName, "AiroFix Customer")
	setDefaultString(&cfg.Payments.PlaceholderEmail, "noemail+airofix@localplaceholder.com")
	setDefaultString(&cfg.Payments.PurposePrefix, "AiroFix booking")

	setDefaultString(&cfg.Reconcile.Schedule, "*/10 * * * *")
	setDefault(&cfg.Reconcile.LookbackHours, 48)
	setDefault(&cfg.Reconcile.BatchSize, 50)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Cashfree.Environment != "sandbox" && c.Cashfree.Environment != "prod" {
		return fmt.Errorf("%w: cashfree.environment must be sandbox or prod, got %q", ErrInvalidConfig, c.Cashfree.Environment)
	}
	if c.Bookings.DefaultListLimit > c.Bookings.MaxListLimit || c.Bookings.AdminDefaultListLimit > c.Bookings.MaxListLimit {
		return fmt.Errorf("%w: bookings default list limits exceed max_list_limit", ErrInvalidConfig)
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
