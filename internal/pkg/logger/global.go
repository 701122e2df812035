package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu           sync.RWMutex
	globalLogger *ZapLogger
)

// SetGlobalLogger installs the process-wide logger. Called once at startup;
// code running before that gets a plain production logger.
func SetGlobalLogger(zl *ZapLogger) {
	mu.Lock()
	globalLogger = zl
	mu.Unlock()
}

// GetGlobalLogger returns the installed logger, building a fallback on
// first use so logging never panics in tests or early init.
func GetGlobalLogger() *ZapLogger {
	mu.RLock()
	zl := globalLogger
	mu.RUnlock()
	if zl != nil {
		return zl
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		fallback, _ := zap.NewProduction()
		globalLogger = &ZapLogger{
			Logger: fallback,
			sugar:  fallback.Sugar(),
		}
	}
	return globalLogger
}

// Package-level helpers so callers log without threading a logger through.

func Debug(msg string, fields ...Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...Field) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...Field) {
	GetGlobalLogger().Error(msg, fields...)
}

func Fatal(msg string, fields ...Field) {
	GetGlobalLogger().Fatal(msg, fields...)
}
