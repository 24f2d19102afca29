package logger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. Production and logging.format=json emit JSON
// with ISO8601 timestamps; anything else gets the colored development console.
func NewLogger(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Format == "json" || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// WithRequest adds request context to logger
func WithRequest(logger *zap.Logger, method, path, requestID string) *zap.Logger {
	return logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WorkflowFields returns the standard fields of a workflow log entry
func WorkflowFields(workflowID uuid.UUID, stage domain.WorkflowStage, documentID uuid.UUID) []zap.Field {
	return []zap.Field{
		zap.String("workflow_id", workflowID.String()),
		zap.String("stage", string(stage)),
		zap.String("document_id", documentID.String()),
	}
}
