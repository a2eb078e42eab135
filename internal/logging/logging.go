package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-export-service/internal/store"
)

// New builds the service logger
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Recorder writes log entries both to the console logger and to the
// request_logs table that backs the log-viewing endpoints.
type Recorder struct {
	logger *zap.Logger
}

// NewRecorder wraps a zap logger with request-log persistence
func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Logger exposes the underlying zap logger
func (r *Recorder) Logger() *zap.Logger {
	return r.logger
}

// Record logs and persists one entry. Persistence failures are logged but
// never fail the request being recorded.
func (r *Recorder) Record(requestID, logType, level, message string, context map[string]any) {
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("type", logType),
	}
	if len(context) > 0 {
		fields = append(fields, zap.Any("context", context))
	}

	switch level {
	case "error":
		r.logger.Error(message, fields...)
	case "warning":
		r.logger.Warn(message, fields...)
	default:
		r.logger.Info(message, fields...)
	}

	if err := store.SaveRequestLog(requestID, logType, level, message, context); err != nil {
		r.logger.Error("failed to persist request log", zap.Error(err))
	}
}
