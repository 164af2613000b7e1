// Command thumbbot runs the Telegram thumbnail bot together with its admin
// web dashboard. Both share one SQLite database; the bot long-polls Telegram
// while Gin serves the dashboard and the Prometheus scrape endpoint.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/grabthumb/thumbbot/internal/bot"
	"github.com/grabthumb/thumbbot/internal/config"
	httpapi "github.com/grabthumb/thumbbot/internal/http"
	"github.com/grabthumb/thumbbot/internal/observability"
	"github.com/grabthumb/thumbbot/internal/repo"
	"github.com/grabthumb/thumbbot/internal/sysutil"
)

var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	logger := log.With().Str("service", "thumbbot").Logger()

	gin.SetMode(cfg.GinMode)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}
	if err := repo.SeedDefaultSettings(db); err != nil {
		logger.Fatal().Err(err).Msg("seed settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		logger.Fatal().Err(err).Msg("setup otel")
	}

	tgBot, err := bot.New(cfg, db, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create bot")
	}
	botDone := make(chan error, 1)
	go func() { botDone <- tgBot.Run(ctx) }()
	logger.Info().Str("username", cfg.Bot.Username).Msg("bot polling started")

	r := gin.New()
	httpapi.RegisterRoutes(r, db, tgBot, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("dashboard listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if err := <-botDone; err != nil {
		logger.Error().Err(err).Msg("bot stopped with error")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("otel shutdown")
	}
	logger.Info().Msg("bye")
}
