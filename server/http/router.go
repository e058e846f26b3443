package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/config"
	impHnd "github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/handler"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/service"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/middleware"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, cat *catalog.Catalog, orch *service.Orchestrator) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/import/preview", impHnd.Preview(cfg, logger, orch))
	r.Post("/import/commit", impHnd.Commit(logger, orch))
	r.Get("/import/template", impHnd.Template(logger))

	r.Post("/supplier/parse", impHnd.SupplierParse(cfg, logger, cat))

	return r
}
