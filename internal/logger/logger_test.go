package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"unknown": zapcore.InfoLevel,
	}
	for level, want := range cases {
		l, err := New(level, "json")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(want), level)
		if want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(want-1), level)
		}
	}
}

func TestWrapperFieldsAndErrors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithFields(map[string]interface{}{"mode": "orbit"}).
		WithError(errors.New("boom")).
		Warn("rig rebuilt", map[string]interface{}{"generation": 2})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rig rebuilt", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "orbit", ctx["mode"])
	assert.Equal(t, "boom", ctx["error"])
	assert.EqualValues(t, 2, ctx["generation"])
}

func TestNewStructured(t *testing.T) {
	t.Parallel()

	log, err := NewStructured("warn", "json")
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NotPanics(t, func() {
		log.WithFields(map[string]interface{}{"mode": "immersive"}).Info("dropped below warn", nil)
	})
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, OrNop(nil))
	l := NewNoOpLogger()
	assert.Same(t, l, OrNop(l))
}
