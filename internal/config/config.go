package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Default notification window (local hours, inclusive)
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env           string // dev or prod
	DBType        string // sqlite, postgres, redis or memory
	DatabaseURL   string
	RedisAddr     string
	RedisPrefix   string
	TelegramToken string
	TelegramChat  int64
	// Notification window, hours 0-23
	NotificationStartHour int
	NotificationEndHour   int
	// IANA zone name; empty means the machine's local zone
	TimeZone string
}

// Load reads an optional .env file and then the environment.
// Invalid values fall back to defaults.
func Load(envFiles ...string) Config {
	// A missing .env is fine
	_ = godotenv.Load(envFiles...)

	cfg := Config{
		Env:                   strings.ToLower(getEnv("WORTSTREAK_ENV", "dev")),
		DBType:                strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DatabaseURL:           getEnv("DATABASE_URL", "data/wortstreak.db"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPrefix:           getEnv("REDIS_PREFIX", "wortstreak:"),
		TelegramToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChat:          getEnvInt64("TELEGRAM_CHAT_ID", 0),
		NotificationStartHour: getEnvHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour),
		NotificationEndHour:   getEnvHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour),
		TimeZone:              os.Getenv("TZ_NAME"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvHour(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
