package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/frankli0324/uhttp/internal/config"
)

func TestNew(t *testing.T) {
	for _, cas := range []struct {
		cfg   config.LogConfig
		level zapcore.Level
	}{
		{config.LogConfig{Level: "debug"}, zapcore.DebugLevel},
		{config.LogConfig{Level: "warn", Development: true}, zapcore.WarnLevel},
		{config.LogConfig{Level: "loud"}, zapcore.InfoLevel},
	} {
		l, err := New(cas.cfg)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(cas.level), cas.cfg.Level)
		assert.False(t, l.Core().Enabled(cas.level-1), cas.cfg.Level)
	}
}

func TestNop(t *testing.T) {
	assert.False(t, Nop().Core().Enabled(zapcore.FatalLevel))
	assert.NotNil(t, NewOrNop(config.Default().Logging))
}
