package main

import (
	"go-column-rules/config"
	"go-column-rules/internal/api"
	"go-column-rules/internal/api/handler"
	"go-column-rules/internal/store"
	"go-column-rules/pkg/logger"
	"go-column-rules/pkg/router"
	"go-column-rules/pkg/utils"
)

// @title Column Rules API
// @version 1.0
// @description Collects per-column filtering rules and applies them to an uploaded dataset.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.NewLogger(cfg.ServiceName, cfg.LogLevel())
	defer func() {
		if err := logger.Cleanup(log); err != nil {
			log.Error("failed to cleanup logger", logger.Error(err))
		}
	}()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Panic("failed to open store", logger.String("path", cfg.DBPath), logger.Error(err))
	}
	defer st.Close()

	h := handler.New(st, log,
		utils.NewOutputManager(cfg.UploadDir),
		utils.NewOutputManager(cfg.OutputDir),
		cfg.ProfileWorkers,
	)

	r := router.New(log)
	api.RegisterRoutes(r, h)

	log.Info("server is running",
		logger.String("addr", cfg.HTTPPort),
		logger.String("environment", cfg.Environment),
		logger.String("version", cfg.Version),
	)
	if err := r.Start(cfg.HTTPPort); err != nil {
		log.Error("server stopped", logger.Error(err))
	}
}
