package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/armbdevelop/reportBot/internal/config"
	"github.com/armbdevelop/reportBot/internal/infra"
	"github.com/armbdevelop/reportBot/internal/repository"
	"github.com/armbdevelop/reportBot/internal/router"
	"github.com/armbdevelop/reportBot/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	files, err := infra.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init upload storage")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async notification delivery. Worker handlers are wired here (composition
	// root) so the pool has full access to all infrastructure dependencies.
	shiftRepo := repository.NewShiftReportRepository(db)
	writeoffRepo := repository.NewWriteoffTransferRepository(db)
	tg := infra.NewTelegramClient(cfg.TelegramAPIURL, cfg.TelegramBotToken)

	workerHandlers := &worker.WorkerHandlers{
		Notify: worker.NewNotifyWorker(shiftRepo, writeoffRepo, tg, cfg.TelegramChatID, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Nightly retention sweep; the Redis lock keeps multi-instance deploys
	// from running it twice.
	worker.StartRetentionSweep(ctx, worker.SweepConfig{
		ShiftRepo:     shiftRepo,
		WriteoffRepo:  writeoffRepo,
		Locker:        redislock.New(rdb),
		UploadDir:     cfg.UploadDir,
		RetentionDays: cfg.RetentionDays,
	})

	r := router.New(cfg, db, rdb, files)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("reportBot backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
