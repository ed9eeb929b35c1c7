package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/config"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/infra"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/repository"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/router"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/service"
	"github.com/AgusGomezDAddario/proyecto-cristales-sub001/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.Env != "production")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Lookup tables must exist before the first request.
	if err := repository.NewEstadoRepository(db).Sembrar(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed estados")
	}
	if err := repository.NewUsuarioRepository(db).SembrarRoles(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// ── Async jobs ───────────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	if !mailer.Habilitado() {
		log.Warn().Msg("SMTP_HOST not set: emails will be dropped")
	}
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
	dispatcher := worker.NewDispatcher(rdb)

	svcs := router.NewServices(cfg, db, rdb, dispatcher, service.NewReloj(loc))

	pool := worker.NewPool(rdb, cfg.WorkerPoolSize)
	pool.Handle(worker.QueueEmail, worker.JobEmail, worker.NewEmailWorker(mailer, mailCB).Process)
	pool.Handle(worker.QueueOrdenEstado, worker.JobOrdenEstado,
		worker.NewOrdenEstadoWorker(svcs.OrdenRepo, dispatcher, cfg.NombreComercio).Process)
	pool.Start(ctx)

	worker.StartRetryCron(ctx, worker.RetryCronConfig{RDB: rdb, MailCB: mailCB})

	r := router.New(cfg, svcs, db, rdb, mailCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("tz", loc.String()).Msgf("cristales backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	_ = rdb.Close()
	log.Info().Msg("server exited")
}
