package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_IsNop(t *testing.T) {
	l := New()
	require.NotNil(t, l.Log)
	l.Log.Info("discarded")
}

func TestInit(t *testing.T) {
	l := New()
	require.NoError(t, l.Init("debug"))
	assert.Equal(t, zapcore.DebugLevel, l.Level())
	_ = l.Log.Sync()
}

func TestInit_BadLevel(t *testing.T) {
	l := New()
	err := l.Init("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func TestInitConsole(t *testing.T) {
	l := New()
	require.NoError(t, l.InitConsole("warn"))
	assert.Equal(t, zapcore.WarnLevel, l.Level())
}
