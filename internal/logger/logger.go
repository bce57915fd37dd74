// Package logger builds the zap logger shared by the API and its jobs.
package logger

import (
	"fmt"
	"strings"

	"github.com/fpemc/crm-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func useJSON(cfg *config.LoggingConfig, appCfg *config.AppConfig) bool {
	switch strings.ToLower(cfg.Format) {
	case "json":
		return true
	case "console":
		return false
	}
	return appCfg.Environment == "production" || appCfg.Environment == "staging"
}

// NewLogger returns a JSON logger for deployed environments and a coloured
// console logger elsewhere. An explicit format overrides the environment.
// Unknown levels log at info.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if useJSON(cfg, appCfg) {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

func WithRequest(log *zap.Logger, method, path, requestID string) *zap.Logger {
	return log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WithUser tags entries with the authenticated principal
func WithUser(log *zap.Logger, userID uint, roles []string) *zap.Logger {
	return log.With(
		zap.Uint("user_id", userID),
		zap.Strings("roles", roles),
	)
}
