package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "production", ""} {
		l, err := New(mode)
		require.NoError(t, err, "mode %q", mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("engine_id", "abc").Info("streak reset", "longest", 4)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "streak reset", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["engine_id"])
	require.EqualValues(t, 4, fields["longest"])
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.Debug("x")
	l.Warn("y", "k", "v")
	l.Error("z")
	l.Sync()
}
