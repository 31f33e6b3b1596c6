package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	BotToken    string
	DatabaseURL string
	LogLevel    string
}

// MustLoad читает настройки из окружения (.env подхватывается, если есть).
// Без токена и DSN запускаться бессмысленно, поэтому сразу fatal.
func MustLoad() Config {
	_ = godotenv.Load()

	bt := os.Getenv("BOT_TOKEN")
	if bt == "" {
		log.Fatal().Msg("BOT_TOKEN is required")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	lvl := os.Getenv("LOG_LEVEL")
	if lvl == "" {
		lvl = "info"
	}

	return Config{
		BotToken:    bt,
		DatabaseURL: dsn,
		LogLevel:    lvl,
	}
}
