package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"tablemap-service/internal/config"
	mapHnd "tablemap-service/internal/mapping/handler"
	mapSvc "tablemap-service/internal/mapping/service"
	"tablemap-service/internal/middleware"
	"tablemap-service/internal/store"
	"tablemap-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, mapper *mapSvc.Mapper, st *store.Store) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health)

	// main endpoint
	r.Post("/map", mapHnd.MapColumns(cfg, logger, mapper, st))

	return r
}
