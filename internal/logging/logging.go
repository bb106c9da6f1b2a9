// Package logging builds the zap loggers used by the server and the terminal client.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production zap logger, at debug level when debug is set.
func New(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Reporter is a diagnostic sink that writes failures to a zap logger.
type Reporter struct {
	logger *zap.Logger
}

func NewReporter(logger *zap.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report logs a failed operation at error level.
func (r *Reporter) Report(op string, err error) {
	r.logger.Error("habit operation failed", zap.String("op", op), zap.Error(err))
}
