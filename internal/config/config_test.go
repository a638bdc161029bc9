package config_test

import (
	"testing"
	"time"

	"catalog/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, config.DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "file:products_dev.db", cfg.DatabaseDSN)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, "products", cfg.RabbitMQExchange)
}

func TestFromViper_ProductionDefaults(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, config.DriverPostgres, cfg.DatabaseDriver)
	assert.Contains(t, cfg.DatabaseDSN, "dbname=produto_db")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromViper_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, config.DriverMemory, cfg.DatabaseDriver)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromViper_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown env":      {"APP_ENV": "staging"},
		"unknown driver":   {"DATABASE_DRIVER": "oracle"},
		"unknown format":   {"LOG_FORMAT": "xml"},
		"bad duration":     {"SHUTDOWN_TIMEOUT": "soon"},
		"negative timeout": {"DB_CONN_MAX_LIFETIME": "-1m"},
		"empty dsn":        {"DATABASE_DRIVER": "postgres", "DATABASE_DSN": " "},
	}

	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range values {
				v.Set(k, val)
			}
			_, err := config.FromViper(v)
			assert.Error(t, err)
		})
	}
}
