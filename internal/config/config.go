// Package config loads the service configuration from the environment,
// reading a .env file first when one is present.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	RedisURL      string `env:"REDIS_URL"`
	AMQPURL       string `env:"AMQP_URL"`

	Email EmailConfig

	OpenDelay      time.Duration `env:"OPEN_DELAY" envDefault:"30s"`
	AutoCloseDelay time.Duration `env:"AUTO_CLOSE_DELAY" envDefault:"3s"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	SubmitRateLimit  int           `env:"SUBMIT_RATE_LIMIT" envDefault:"10"`
	SubmitRateWindow time.Duration `env:"SUBMIT_RATE_WINDOW" envDefault:"1m"`
}

// EmailConfig selects the delivery provider. ServiceID "smtp" or "resend";
// an empty or YOUR_* service/template id runs the gateway in demo mode.
type EmailConfig struct {
	ServiceID  string `env:"EMAIL_SERVICE_ID"`
	TemplateID string `env:"EMAIL_TEMPLATE_ID"`
	GuideLink  string `env:"GUIDE_LINK" envDefault:"https://example.com/downloads/relocation-guide.pdf"`
	From       string `env:"MAIL_FROM" envDefault:"no-reply@example.com"`

	SMTPHost     string `env:"MAIL_HOST"`
	SMTPPort     int    `env:"MAIL_PORT" envDefault:"587"`
	SMTPUser     string `env:"MAIL_USER"`
	SMTPPassword string `env:"MAIL_PASS"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
}

// Load reads .env (if any) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for storage driver %q", c.StorageDriver)
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	if c.OpenDelay <= 0 || c.AutoCloseDelay <= 0 || c.SessionTTL <= 0 {
		return fmt.Errorf("OPEN_DELAY, AUTO_CLOSE_DELAY and SESSION_TTL must be positive")
	}
	if c.SubmitRateLimit <= 0 {
		return fmt.Errorf("SUBMIT_RATE_LIMIT must be positive")
	}
	return nil
}
