// Public domain.

package psrlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/soniakeys/psrcat/internal/psrlog"
)

func TestNopByDefault(t *testing.T) {
	require.NotNil(t, psrlog.Logger)
	psrlog.Logger.Infow("discarded", "k", 1)
}

func TestInitialize(t *testing.T) {
	restore := psrlog.Use(zap.NewNop())
	defer restore()

	require.NoError(t, psrlog.Initialize(true, false))
	assert.False(t, psrlog.Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	require.NoError(t, psrlog.Initialize(false, true))
	assert.True(t, psrlog.Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestUse(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := psrlog.Use(zap.New(core))
	psrlog.Logger.Warnw("skipped", "pulsar", "J0437-4715")
	restore()
	psrlog.Logger.Warnw("after restore")

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "skipped", e.Message)
	assert.Equal(t, "J0437-4715", e.ContextMap()["pulsar"])
}
