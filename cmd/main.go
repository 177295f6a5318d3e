package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/ykhknw/pocketnavi/internal/config"
	"github.com/ykhknw/pocketnavi/internal/server"
	"github.com/ykhknw/pocketnavi/internal/version"
	"github.com/ykhknw/pocketnavi/pkg/database"
	"github.com/ykhknw/pocketnavi/pkg/database/migration"
	"github.com/ykhknw/pocketnavi/pkg/database/repository"
	"github.com/ykhknw/pocketnavi/pkg/logging"
	"github.com/ykhknw/pocketnavi/pkg/search"
	"github.com/ykhknw/pocketnavi/pkg/slugops"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

// run handles the complete application initialization process
func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		// Continue execution as .env file might not exist in production
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewGormDBFromConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	defer sqlDB.Close()

	if err := migration.RunMigration(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Database-backed logging: warnings and errors from the query path
	// land in query_logs alongside the console output.
	loggerFactory := logging.NewDatabaseLoggerFactory(repository.NewLogRepository(db))
	logger := loggerFactory.CreateLogger("main")
	logger.Info("starting", map[string]interface{}{
		"version": version.Get().Version,
	})

	engine := search.NewEngine(
		repository.NewBuildingRepository(db),
		repository.NewArchitectRepository(db),
		loggerFactory.CreateSearchLogger(),
	)

	cache, err := database.NewDatabaseManager(db)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	// Scheduled maintenance: slug backfill + dedup, and cache cleanup.
	maintenanceLogger := loggerFactory.CreateMaintenanceLogger("slug")
	slugWorkflow := slugops.NewWorkflow(repository.NewSlugRepository(db), maintenanceLogger)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SlugMaintenanceCron, func() {
		if err := slugWorkflow.Run(); err != nil {
			maintenanceLogger.Error("slug maintenance failed", err, nil)
		}
		if removed, err := cache.CleanupExpired(); err != nil {
			maintenanceLogger.Error("cache cleanup failed", err, nil)
		} else if removed > 0 {
			maintenanceLogger.Info("cache cleanup finished", map[string]interface{}{
				"removed": removed,
			})
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule slug maintenance: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.NewServer(engine, cache, cfg.CacheTTL, cfg.DefaultPageSize, loggerFactory.CreateLogger("http"))
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("http server listening", map[string]interface{}{
			"port": cfg.HTTPPort,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server stopped", err, nil)
		}
	}()

	// Wait here until CTRL-C or other term signal is received
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	logger.Info("shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
