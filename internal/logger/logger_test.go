package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet(t *testing.T) {
	// Before Init, Get must never return nil.
	require.NotNil(t, Get())
	Get().Debugw("ignored", "key", "value")

	Init("development", true)
	first := Get()
	require.NotNil(t, first)
	assert.True(t, first.Desugar().Core().Enabled(zapcore.DebugLevel), "verbose logger must enable debug")

	// Init is only effective once.
	Init("production", false)
	assert.Same(t, first, Get())
	Sync()
}
