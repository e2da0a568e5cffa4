// Package logging builds the zap loggers used by the client.
//
// Production mode writes JSON, development mode writes colored console
// output. The client logs at Debug only, so the default level keeps it quiet.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/frankli0324/uhttp/internal/config"
)

// New builds a logger from cfg. An unknown level falls back to info.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// NewOrNop is like New but returns a no-op logger if building fails.
func NewOrNop(cfg config.LogConfig) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		return Nop()
	}
	return l
}

func Nop() *zap.Logger {
	return zap.NewNop()
}
