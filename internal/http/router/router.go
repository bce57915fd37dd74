package router

import (
	"encoding/json"
	"net/http"

	"github.com/fpemc/crm-api/internal/auth"
	"github.com/fpemc/crm-api/internal/config"
	"github.com/fpemc/crm-api/internal/database"
	"github.com/fpemc/crm-api/internal/domain"
	"github.com/fpemc/crm-api/internal/http/handler"
	"github.com/fpemc/crm-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/fpemc/crm-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	statisticsHandler *handler.StatisticsHandler
	companyHandler    *handler.CompanyHandler
	adminHandler      *handler.AdminHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	statisticsHandler *handler.StatisticsHandler,
	companyHandler *handler.CompanyHandler,
	adminHandler *handler.AdminHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		statisticsHandler: statisticsHandler,
		companyHandler:    companyHandler,
		adminHandler:      adminHandler,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Database probe with pool stats
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats":   stats,
		})
	})

	// Readiness probe
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]interface{}{}
		status, code := "healthy", http.StatusOK

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
			status, code = "unhealthy", http.StatusServiceUnavailable
		} else {
			checks["database"] = map[string]interface{}{"status": "healthy"}
		}

		writeJSON(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.rateLimiter.Limit)
		r.Use(middleware.NoStore)

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", rt.companyHandler.List)
			r.Get("/{id}", rt.companyHandler.GetByID)
		})

		r.Route("/statistics", func(r chi.Router) {
			r.With(rt.authMiddleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleSuperSales, domain.RoleAPIService)).
				Get("/global", rt.statisticsHandler.Global)
			r.With(rt.authMiddleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleSuperSales, domain.RoleAPIService)).
				Get("/companies", rt.statisticsHandler.Companies)

			// Agency access is checked against the caller's company
			r.Get("/agency/me", rt.statisticsHandler.MyAgency)
			r.Get("/agency/{companyId}", rt.statisticsHandler.Agency)
			r.Get("/leaderboard", rt.statisticsHandler.Leaderboard)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleAPIService))
			r.Post("/sales/fdr-promotion", rt.adminHandler.PromoteFdr)
		})
	})

	return r
}
