package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sbedoyat/carhub/internal/config"
	"github.com/sbedoyat/carhub/internal/events"
	"github.com/sbedoyat/carhub/internal/httpapi"
	"github.com/sbedoyat/carhub/internal/reserve"
	"github.com/sbedoyat/carhub/internal/store"
)

func main() {
	// Logger
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("db", cfg.DBPath).
		Str("rabbit", cfg.RabbitURL).
		Str("env", cfg.ServiceEnv).
		Msg("starting carhub back office")

	// Store
	st, err := store.Open(cfg.DBPath)
	must(err)
	defer st.Close()

	if cfg.SeedOnStart {
		must(st.Seed(context.Background()))
		log.Info().Msg("seeded sample locations and parts")
	}

	// Rabbit (opcional)
	pub, err := events.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ not available, continuing without events")
		pub = nil
	}
	defer pub.Close()

	// Reservation engine
	eng := reserve.New(st, cfg.LockWait)

	app := httpapi.NewApp(cfg, st, eng, pub)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Señales para apagado limpio
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Warn().Msg("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info().Msg("http listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
