// Package logtest provides loggers for use in tests.
package logtest

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"soundsphere/internal/logger"
)

// New returns a logger.Logger that writes through t.
func New(t testing.TB) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}
