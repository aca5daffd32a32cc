package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Finanzas"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Port         int    `envconfig:"DB_PORT" default:"5432"`
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:""`
		Name         string `envconfig:"DB_NAME" default:"finanzas"`
		SSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Rates struct {
		URL          string          `envconfig:"RATES_URL" default:"https://api.apis.net.pe/v1/tipo-cambio-sunat"`
		Token        string          `envconfig:"RATES_TOKEN"`
		Timeout      time.Duration   `envconfig:"RATES_TIMEOUT" default:"10s"`
		Fallback     decimal.Decimal `envconfig:"RATES_FALLBACK" default:"3.75"`
		LookbackDays int             `envconfig:"RATES_LOOKBACK_DAYS" default:"7"`
	}

	Auth struct {
		Enabled   bool     `envconfig:"AUTH_ENABLED" default:"false"`
		JWTSecret string   `envconfig:"AUTH_JWT_SECRET"`
		Whitelist []string `envconfig:"AUTH_WHITELIST"`
	}

	Budget struct {
		DailyFloor decimal.Decimal `envconfig:"BUDGET_DAILY_FLOOR" default:"50"`
	}

	Import struct {
		MaxUploadMB int64 `envconfig:"IMPORT_MAX_UPLOAD_MB" default:"10"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.DB.SSLMode),
	}

	return u.String()
}

// Validate rejects settings that would only fail later at request time.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.App.Port))
	}

	if c.DB.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_OPEN_CONNS must be at least 1"))
	}

	if !c.Rates.Fallback.IsPositive() {
		errs = append(errs, fmt.Errorf("RATES_FALLBACK must be positive"))
	}

	if c.Rates.LookbackDays < 0 {
		errs = append(errs, fmt.Errorf("RATES_LOOKBACK_DAYS must not be negative"))
	}

	if c.Budget.DailyFloor.IsNegative() {
		errs = append(errs, fmt.Errorf("BUDGET_DAILY_FLOOR must not be negative"))
	}

	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_ENABLED is set"))
	}

	if c.Auth.Enabled && len(c.Auth.Whitelist) == 0 {
		errs = append(errs, fmt.Errorf("AUTH_WHITELIST is required when AUTH_ENABLED is set"))
	}

	if c.Import.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("IMPORT_MAX_UPLOAD_MB must be positive"))
	}

	return errors.Join(errs...)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
