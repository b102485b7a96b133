package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"", "dev", "prod", "PRODUCTION"} {
		l, err := New(mode)
		require.NoError(t, err, "mode %q", mode)
		assert.NotNil(t, l.SugaredLogger)
	}

	_, err := New("verbose")
	assert.Error(t, err)
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With("resume_id", "r1")

	l.Info("applied action", "action", "set_field")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "applied action", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "r1", fields["resume_id"])
	assert.Equal(t, "set_field", fields["action"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Debug("dropped")
	l.Error("dropped", "k", "v")
	l.Sync()
}
