package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger output. Debug switches to a human-readable
// console encoder and enables debug level.
type Config struct {
	Debug       bool
	OutputPaths []string
}

// New builds the process logger. Body creation and removal are logged at
// debug level, so the game loop stays quiet unless Debug is set.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.InfoLevel
	encoding := "json"
	encoder := zap.NewProductionEncoderConfig()
	if cfg.Debug {
		level = zap.DebugLevel
		encoding = "console"
		encoder = zap.NewDevelopmentEncoderConfig()
		encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: cfg.Debug,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    encoder,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    !cfg.Debug,
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger.Named("customgravity"), nil
}
