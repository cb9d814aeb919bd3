// @title CRM Duplicate Detection API
// @version 1.0
// @description Contact storage with duplicate detection on create, import preview and periodic scans

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crm-dedupe/internal/api/handlers"
	"crm-dedupe/internal/config"
	"crm-dedupe/internal/db"
	"crm-dedupe/internal/health"
	"crm-dedupe/internal/logger"
	"crm-dedupe/internal/repository"
	"crm-dedupe/internal/scheduler"
	"crm-dedupe/internal/service"

	_ "crm-dedupe/docs" // Import generated docs
)

func main() {
	// Load and validate configuration first (before logger)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Logger)

	logger.Info().
		Str("environment", cfg.Logger.Environment).
		Str("log_level", cfg.Logger.Level).
		Msg("configuration loaded successfully")

	rules, err := cfg.Matching.LoadRules()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load matching rules")
	}

	logger.Info().
		Int("threshold", rules.Threshold).
		Int("name_similarity_min", rules.NameSimilarityMin).
		Bool("prefilter_by_domain", cfg.Matching.PrefilterByDomain).
		Bool("block_definite_duplicates", cfg.Matching.BlockDefiniteDuplicates).
		Msg("matching rules loaded")

	// Run migrations before connecting to database
	logger.Info().Msg("running database migrations")
	if err := db.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	database, err := db.NewDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("database connected successfully")

	contactRepo := repository.NewContactRepository(database.Queries)

	duplicateService := service.NewDuplicateService(contactRepo, service.DuplicateServiceOptions{
		Rules:             rules,
		PrefilterByDomain: cfg.Matching.PrefilterByDomain,
		MaxContacts:       cfg.Matching.ScanMaxContacts,
	})
	contactService := service.NewContactService(contactRepo, duplicateService, cfg.Matching.BlockDefiniteDuplicates)

	if cfg.Matching.EnableScan {
		cronScheduler := scheduler.NewScheduler(duplicateService, cfg.Matching.ScanSchedule)
		if err := cronScheduler.Start(); err != nil {
			logger.Fatal().Err(err).Msg("failed to start scheduler")
		}
		defer cronScheduler.Stop()
	}

	healthChecker := health.NewHealthChecker(database, cfg.Database.HealthTimeout)
	router := setupRouter(cfg, routerDeps{
		contacts:   handlers.NewContactHandler(contactService),
		duplicates: handlers.NewDuplicateHandler(duplicateService),
		health:     healthChecker.Handler,
	})

	addr := cfg.GetBindAddress()
	// Use a listener so we can discover the selected port when PORT=0
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", addr).Msg("failed to bind listener")
	}

	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		_ = ln.Close()
		logger.Fatal().Msg("failed to determine TCP address")
	}
	selectedPort := tcpAddr.Port

	srv := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: router,
	}

	go func() {
		logger.Info().
			Int("port", selectedPort).
			Str("addr", cfg.Server.Host).
			Msg("starting server")
		logger.Info().
			Str("url", fmt.Sprintf("http://%s:%d/swagger/index.html", cfg.Server.Host, selectedPort)).
			Msg("API documentation available")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")

	// Print the selected port on graceful exit for supervising processes
	fmt.Printf("PORT=%d\n", selectedPort) //nolint:forbidigo // Intentional stdout output for supervisor
}
