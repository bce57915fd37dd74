package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fpemc/crm-api/docs"
	"github.com/fpemc/crm-api/internal/auth"
	"github.com/fpemc/crm-api/internal/config"
	"github.com/fpemc/crm-api/internal/database"
	"github.com/fpemc/crm-api/internal/http/handler"
	"github.com/fpemc/crm-api/internal/http/middleware"
	"github.com/fpemc/crm-api/internal/http/router"
	"github.com/fpemc/crm-api/internal/jobs"
	"github.com/fpemc/crm-api/internal/logger"
	"github.com/fpemc/crm-api/internal/repository"
	"github.com/fpemc/crm-api/internal/service"
	"go.uber.org/zap"
)

// @title FPEMC CRM API
// @version 1.0
// @description Sales statistics and commission attribution for the agency network

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "crm-api-staging.fpemc.fr"
	case "production":
		docs.SwaggerInfo.Host = "crm-api.fpemc.fr"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Secrets come from Key Vault in staging and production, from env otherwise
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)

	// Repositories
	saleRepo := repository.NewSaleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	statisticsService := service.NewStatisticsService(
		saleRepo,
		appointmentRepo,
		companyRepo,
		userRepo,
		service.StatisticsOptions{
			Location:           cfg.Statistics.Location(),
			MinSalesForMonthly: cfg.Statistics.MinSalesForMonthly,
			Workers:            cfg.Statistics.Workers,
		},
		log,
	)
	saleStatusService := service.NewSaleStatusService(saleRepo, cfg.Jobs.FdrThreshold(), log)
	companyService := service.NewCompanyService(companyRepo, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, cfg.Statistics.RequestTimeoutDuration(), log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	adminHandler := handler.NewAdminHandler(saleStatusService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		statisticsHandler,
		companyHandler,
		adminHandler,
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.FdrPromotionEnabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterFdrPromotionJob(
			scheduler,
			saleStatusService,
			log,
			cfg.Jobs.FdrPromotionCron,
			cfg.Jobs.FdrPromotionTimeoutDuration(),
			cfg.Jobs.RunOnStartup,
		); err != nil {
			log.Error("Failed to register FDR promotion job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
			log.Info("Scheduler started with FDR promotion job",
				zap.String("cron_expr", cfg.Jobs.FdrPromotionCron),
				zap.Int("threshold_days", cfg.Jobs.FdrThresholdDays),
				zap.Duration("timeout", cfg.Jobs.FdrPromotionTimeoutDuration()),
			)
		}
	} else {
		log.Info("FDR promotion job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
