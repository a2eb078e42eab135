package main

import (
	"flag"
	"log"

	_ "go-export-service/docs"
	"go-export-service/internal/api"
	"go-export-service/internal/api/handler"
	"go-export-service/internal/config"
	"go-export-service/internal/export"
	"go-export-service/internal/logging"
	"go-export-service/internal/store"
	"go-export-service/pkg/router"
)

// @title Export Service API
// @version 1.0
// @description Database-direct export coordinator: count, preview, chunked export and download
// @BasePath /
func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Init DB
	if err := store.InitDB(cfg.DBPath); err != nil {
		log.Fatalf("database: %v", err)
	}
	defer store.CloseDB()

	if cfg.SeedRecords > 0 {
		if err := store.SeedParticipants(cfg.SeedRecords); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	recorder := logging.NewRecorder(logger)

	estimator := export.Estimator{
		RecordsPerSecond: cfg.RecordsPerSecond,
		KBPerRecord:      cfg.KBPerRecord,
	}
	engine := export.New(cfg.ExportDir, cfg.DefaultChunkSize, estimator, recorder)
	handler.Init(engine, recorder, cfg.PreviewLimit)

	// Create router and register API routes
	r := router.New()
	api.RegisterRoutes(r)

	// Start server
	r.Start(cfg.ListenAddr)
}
