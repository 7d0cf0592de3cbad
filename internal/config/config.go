package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required"`

	API      API      `envPrefix:"API_"`
	Database Database `envPrefix:"DB_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Admin    Admin    `envPrefix:"ADMIN_"`
	Webhook  Webhook  `envPrefix:"WEBHOOK_"`
}

// API points at the booking backend.
type API struct {
	BaseURL        string        `env:"BASE_URL,required"`
	Key            string        `env:"KEY,required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

type Database struct {
	Host            string        `env:"HOST,required"`
	Port            int           `env:"PORT,required"`
	User            string        `env:"USER,required"`
	Password        string        `env:"PASSWORD,required"`
	Name            string        `env:"NAME,required"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

type Redis struct {
	Addr     string        `env:"ADDR,required"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

type Admin struct {
	IDs       []int64 `env:"IDS" envSeparator:","`
	ChatID    int64   `env:"CHAT_ID"`
	ChannelID int64   `env:"CHANNEL_ID"`
}

// Webhook is the inbound status-update listener.
type Webhook struct {
	Addr   string `env:"ADDR" envDefault:":8085"`
	Secret string `env:"SECRET"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Admin.IDs) == 0 && cfg.Admin.ChatID == 0 {
		return nil, fmt.Errorf("at least one admin ID is required")
	}

	return &cfg, nil
}
