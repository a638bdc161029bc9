package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the process configuration.
type Config struct {
	AppEnv          string
	AppPort         string
	ShutdownTimeout time.Duration

	DatabaseDriver    string
	DatabaseDSN       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	LogLevel  string
	LogFormat string

	MetricsEnabled bool

	RabbitMQURL      string
	RabbitMQExchange string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper resolves the configuration from v, applying defaults for any
// key left unset.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")

	env := strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV")))
	switch env {
	case "development", "testing", "production":
	default:
		return nil, fmt.Errorf("unsupported APP_ENV %q", env)
	}

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "products")

	switch env {
	case "production":
		v.SetDefault("DATABASE_DRIVER", DriverPostgres)
		v.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=produto_db port=5432 sslmode=disable")
		v.SetDefault("LOG_LEVEL", "info")
	case "testing":
		v.SetDefault("DATABASE_DRIVER", DriverSQLite)
		v.SetDefault("DATABASE_DSN", "file:products_test.db")
		v.SetDefault("LOG_LEVEL", "debug")
	default:
		v.SetDefault("DATABASE_DRIVER", DriverSQLite)
		v.SetDefault("DATABASE_DSN", "file:products_dev.db")
		v.SetDefault("LOG_LEVEL", "debug")
	}

	cfg := &Config{
		AppEnv:           env,
		AppPort:          v.GetString("APP_PORT"),
		DatabaseDriver:   strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		DBMaxOpenConns:   v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:   v.GetInt("DB_MAX_IDLE_CONNS"),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:        strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		MetricsEnabled:   v.GetBool("METRICS_ENABLED"),
		RabbitMQURL:      strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
	}

	var err error
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = parseDuration(v, "DB_CONN_MAX_LIFETIME"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDriver != DriverMemory && strings.TrimSpace(c.DatabaseDSN) == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DatabaseDriver)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if c.RabbitMQURL != "" && strings.TrimSpace(c.RabbitMQExchange) == "" {
		return fmt.Errorf("RABBITMQ_EXCHANGE is required when RABBITMQ_URL is set")
	}
	return nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
	}
	return d, nil
}
