package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "net/http/pprof"

	"tablemap-service/internal/config"
	"tablemap-service/internal/mapping/catalog"
	mapSvc "tablemap-service/internal/mapping/service"
	"tablemap-service/internal/store"
	serverhttp "tablemap-service/server/http"
)

func main() {
	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	cat, err := catalog.Load(cfg.MappingConfig)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.MappingConfig).Msg("load mapping config")
	}
	mapper := mapSvc.New(cat)

	var st *store.Store
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		st, err = store.New(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("connect warehouse")
		}
		defer st.Close()
	}

	r := serverhttp.NewRouter(cfg, logger, mapper, st)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().
		Str("addr", cfg.Addr()).
		Int("fields", len(cat.FieldNames())).
		Bool("warehouse", st != nil).
		Msg("server starting")

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
