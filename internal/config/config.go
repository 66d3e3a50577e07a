package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const envPrefix = "CHECKOUT_"

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Operator OperatorConfig `koanf:"operator"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Storage  StorageConfig  `koanf:"storage"`
	Database DatabaseConfig `koanf:"database"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// IsProduction reports whether invariant violations should be swallowed.
func (p Primary) IsProduction() bool {
	return p.Env == "production"
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type OperatorConfig struct {
	BaseURL      string        `koanf:"base_url" validate:"required,url"`
	Timeout      time.Duration `koanf:"timeout" validate:"required"`
	DefaultCode  string        `koanf:"default_code" validate:"required"`
	DefaultStore string        `koanf:"default_store" validate:"required"`
}

type CatalogConfig struct {
	Variant string `koanf:"variant" validate:"required,oneof=compact full"`
}

type StorageConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=memory postgres"`
}

func (s StorageConfig) UsesPostgres() bool {
	return s.Driver == "postgres"
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

type WorkerConfig struct {
	Interval        time.Duration `koanf:"interval" validate:"required"`
	NotificationTTL time.Duration `koanf:"notification_ttl" validate:"required"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         "10s",
		"server.write_timeout":        "30s",
		"server.idle_timeout":         "60s",
		"operator.timeout":            "15s",
		"operator.default_code":       "op-01",
		"operator.default_store":      "loja-01",
		"catalog.variant":             "full",
		"storage.driver":              "memory",
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"logger.level":                "info",
		"logger.format":               "text",
		"worker.interval":             "1s",
		"worker.notification_ttl":     "6s",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks the struct tags. The database section is only checked when
// postgres storage is selected.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.StructExcept(c, "Database"); err != nil {
		return err
	}
	if c.Storage.UsesPostgres() {
		return validate.Struct(c.Database)
	}
	return nil
}
