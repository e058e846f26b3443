package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/config"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/service"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/store"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/store/memory"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/store/postgres"
	serverhttp "github.com/wendrick1998/outlet-vault-tracker-sub001/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	var st store.DeviceStore
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect postgres")
		}
		defer pg.Close()
		st = pg
		logger.Info().Msg("using postgres store")
	} else {
		st = memory.New()
		logger.Warn().Msg("DATABASE_URL not set, using in-memory store")
	}

	cat := catalog.Default()
	orch := service.NewOrchestrator(st, cfg.PreviewRows, logger)

	r := serverhttp.NewRouter(cfg, logger, cat, orch)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Int("catalog_models", cat.Len()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
