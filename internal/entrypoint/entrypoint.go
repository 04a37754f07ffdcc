package entrypoint

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/hodzhakhov/archiver/internal/api"
	"github.com/hodzhakhov/archiver/internal/config"
	"github.com/hodzhakhov/archiver/internal/infra/codec"
	"github.com/hodzhakhov/archiver/internal/infra/inmem"
	"github.com/hodzhakhov/archiver/internal/middleware"
	"github.com/hodzhakhov/archiver/internal/server"
	"github.com/hodzhakhov/archiver/internal/services/archive_service"
)

func Run(cfg *config.Config, log *zap.Logger) error {
	if err := os.MkdirAll(cfg.ExtractRoot, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию для распаковки: %w", err)
	}
	log.Info("директория для распаковки готова", zap.String("path", cfg.ExtractRoot))

	srv := server.New(cfg, NewHandler(cfg, log), log)
	return srv.Start()
}

// NewHandler собирает сервис, API и цепочку middleware.
func NewHandler(cfg *config.Config, log *zap.Logger) http.Handler {
	svc := archive_service.New(log, cfg, codec.New())
	controller := api.New(svc, log, cfg)

	router := http.Handler(api.NewRouter(controller))
	router = middleware.WorkerPool(cfg.WorkerCount, log)(router)
	if cfg.MemoEnabled {
		router = middleware.Memoize(inmem.New(log), log, api.MemoScope)(router)
	}
	router = middleware.ContentTypeValidator(api.ContentTypeRules())(router)
	router = middleware.BodyLimit(cfg.MaxBodyBytes)(router)
	router = middleware.ReqLogger(log)(router)
	router = middleware.Recovery(log)(router)

	return router
}
