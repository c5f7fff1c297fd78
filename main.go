package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"commbot/config"
	"commbot/handler"
	"commbot/repo"
)

func main() {
	configPath := flag.String("config", "commbot.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := repo.NewFirebaseStore(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error initializing Firebase")
	}

	avatars := repo.NewAvatarService(cfg.BotToken)
	h := handler.New(store, nil, nil, avatars, logger)

	opts := []bot.Option{
		bot.WithDefaultHandler(h.Handle),
	}
	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error creating bot")
	}

	logger.Info().Msg("Bot started")
	b.Start(ctx)
	logger.Info().Msg("Bot stopped")
}
