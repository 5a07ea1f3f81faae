package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.SugaredLogger

type LoggerEnvironment string

const (
	Debug LoggerEnvironment = "debug"
	Info  LoggerEnvironment = "info"
	Warn  LoggerEnvironment = "warn"
	Error LoggerEnvironment = "error"
)

// InitLogger configures the global sugared logger at the given level.
// Unknown levels fall back to info.
func InitLogger(env LoggerEnvironment) {
	level := zapcore.InfoLevel
	switch env {
	case Debug:
		level = zapcore.DebugLevel
	case Warn:
		level = zapcore.WarnLevel
	case Error:
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	Logger = logger.Sugar()
}

func GetLogger() *zap.SugaredLogger {
	if Logger == nil {
		InitLogger(Info)
	}
	return Logger
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
