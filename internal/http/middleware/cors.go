package middleware

import (
	"net/http"

	"github.com/fpemc/crm-api/internal/config"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func isLocalEnvironment(environment string) bool {
	return environment == "" || environment == "development" || environment == "local"
}

func anyOrigin(r *http.Request, origin string) bool {
	return origin != ""
}

// CORS returns a CORS middleware configured from the application config.
// Without configured origins, local environments accept any origin and
// deployed ones reject every cross-origin request.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	wildcard := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			wildcard = true
			break
		}
	}

	switch {
	case wildcard:
		if !isLocalEnvironment(environment) {
			logger.Warn("CORS configured with wildcard origin outside development",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = anyOrigin
	case len(cfg.AllowedOrigins) > 0:
		options.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins))
	case isLocalEnvironment(environment):
		options.AllowOriginFunc = anyOrigin
		logger.Info("CORS allows all origins in development mode")
	default:
		// An empty AllowedOrigins means "*" to go-chi/cors, so deny explicitly.
		options.AllowOriginFunc = func(r *http.Request, origin string) bool {
			return false
		}
		logger.Warn("CORS configured with no allowed origins, cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(options)
}
