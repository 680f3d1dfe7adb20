package main

import (
	"log"
	"time"

	"github.com/Seohyeoksu/lunchlens/internal/analysis"
	"github.com/Seohyeoksu/lunchlens/internal/config"
	"github.com/Seohyeoksu/lunchlens/internal/db"
	"github.com/Seohyeoksu/lunchlens/internal/llm"
	"github.com/Seohyeoksu/lunchlens/internal/logging"
	"github.com/Seohyeoksu/lunchlens/internal/service"
	"github.com/Seohyeoksu/lunchlens/internal/store"
	"github.com/Seohyeoksu/lunchlens/internal/web"
	"github.com/Seohyeoksu/lunchlens/internal/web/templates"
)

func main() {
	cfg := config.Load()

	// Refuse to start without a credential rather than failing on the first
	// model call.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	retry := llm.RetryPolicy{MaxRetries: cfg.MaxRetries, BaseDelay: time.Second}
	client, err := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIBase, cfg.Model, retry, logger)
	if err != nil {
		logger.Error("failed to initialize model client", "error", err)
		return
	}

	svc := service.NewAnalysisService(
		analysis.NewAnalyzer(client, cfg.Temperature, logger),
		analysis.NewSynthesizer(client, logger),
		store.NewReportStore(database),
		logger,
	)
	server := web.NewServer(svc, templates.FS, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
