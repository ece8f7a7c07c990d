package utils

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger     *zap.Logger
	loggerOnce sync.Once
)

// NewLogger builds the production JSON logger at the given level
// ("debug", "info", "warn", "error"). An empty or unknown level means info.
func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = zapcore.InfoLevel
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// OrDefault returns l, or the shared process logger when l is nil.
func OrDefault(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	loggerOnce.Do(func() {
		if Logger == nil {
			Logger = zap.NewNop()
		}
	})
	return Logger
}
