package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	Environment    string
	HTTPAddr       string
	TelegramToken  string // пустой токен отключает бота
	MigrationsPath string

	// Доставка уведомлений в Telegram
	DeliveryInterval time.Duration
	DeliveryBatch    int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getenv("ENV", "development"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "migrations"),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	interval, err := time.ParseDuration(getenv("DELIVERY_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("parse DELIVERY_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("DELIVERY_INTERVAL must be positive, got %s", interval)
	}
	cfg.DeliveryInterval = interval

	batch, err := strconv.Atoi(getenv("DELIVERY_BATCH", "50"))
	if err != nil {
		return nil, fmt.Errorf("parse DELIVERY_BATCH: %w", err)
	}
	if batch <= 0 {
		return nil, fmt.Errorf("DELIVERY_BATCH must be positive, got %d", batch)
	}
	cfg.DeliveryBatch = batch

	return cfg, nil
}

// BotEnabled сообщает, настроен ли Telegram бот
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
