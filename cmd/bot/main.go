package main

import (
	"context"
	"log"

	"github.com/ivanoskov/daily_balance_bot/internal/bot"
	"github.com/ivanoskov/daily_balance_bot/internal/config"
	"github.com/ivanoskov/daily_balance_bot/internal/logger"
	"github.com/ivanoskov/daily_balance_bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Конфиг нужен раньше логгера
		log.Fatal(err)
	}

	logg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	tz, err := cfg.Location()
	if err != nil {
		logg.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("unknown timezone")
	}

	store, err := storage.FromConfig(context.Background(), cfg)
	if err != nil {
		logg.Fatal().Err(err).Str("storage", cfg.Storage).Msg("storage init failed")
	}

	b, err := bot.NewBot(cfg.TelegramToken, store, tz, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("bot init failed")
	}

	logg.Info().Str("storage", cfg.Storage).Str("timezone", cfg.Timezone).Msg("starting bot")
	if err := b.Start(); err != nil {
		logg.Fatal().Err(err).Msg("bot stopped")
	}
}
