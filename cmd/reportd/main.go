package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/app"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/config"
	idb "github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/database"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/email"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/logger"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/providers"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/scheduler"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/infra/sharelink"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Database connection and repositories.
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	scheduleRepo := idb.NewPostgresScheduleRepository(db)
	reportRepo := idb.NewPostgresReportRepository(db)

	// External collaborators.
	analytics := providers.NewAnalyticsClient(cfg.AnalyticsAPIURL, cfg.AnalyticsAPIKey)
	keywords := providers.NewKeywordRankClient(cfg.KeywordAPIURL, cfg.KeywordAPIKey)
	traffic := providers.NewTrafficEstimateClient(cfg.TrafficAPIURL, cfg.TrafficAPIKey)
	transport := email.NewGomailTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	links := sharelink.NewSigner(cfg.ShareLinkSecret, cfg.DashboardBaseURL)

	// Pipeline services.
	synthesizer := app.NewReportSynthesizer(analytics, keywords, traffic, reportRepo, scheduleRepo, log)
	renderer := render.NewRenderer(links, log)
	coordinator := app.NewDeliveryCoordinator(transport, reportRepo, log)
	scanner := app.NewDueScheduleScanner(
		scheduleRepo, synthesizer, renderer, coordinator, reportRepo,
		log, cfg.RecordTimeout, cfg.FailureBackoff,
	)

	scanScheduler := scheduler.NewScanScheduler(scanner, log, cfg.ScanCronSpec)
	scanScheduler.Start()
	log.Info("Application setup complete. Report pipeline is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	scanScheduler.Stop()
	log.Info("Application shut down gracefully.")
}
