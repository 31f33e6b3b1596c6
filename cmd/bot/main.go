package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/StpaPSBB/TBotFinancial/internal/bot"
	"github.com/StpaPSBB/TBotFinancial/internal/config"
	"github.com/StpaPSBB/TBotFinancial/internal/db"
	"github.com/StpaPSBB/TBotFinancial/internal/repo"
	"github.com/StpaPSBB/TBotFinancial/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.MustLoad()
	setLogLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool := db.MustConnect(ctx, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.ApplyMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("bot init")
	}
	botAPI.Debug = false

	rUsers := repo.NewUsers(pool)
	rTxs := repo.NewTransactions(pool)

	users := service.NewUsers(rUsers, nil, log.Logger)
	txs := service.NewTransactions(rUsers, rTxs, log.Logger)
	reports := service.NewReports(rUsers, rTxs, nil, log.Logger)

	h := bot.NewHandler(botAPI, users, txs, reports, log.Logger)
	d := bot.NewDispatcher(ctx, h.HandleUpdate)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	log.Info().Str("username", botAPI.Self.UserName).Msg("бот запущен")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case upd := <-updates:
				d.Dispatch(upd)
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("polling loop")
	}
	if err := d.Close(); err != nil {
		log.Error().Err(err).Msg("dispatcher shutdown")
	}
	log.Info().Msg("бот остановлен")
}

func setLogLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
