package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithCtx(t *testing.T) {
	l := zap.NewNop().Sugar()
	ctx := WithCtx(context.Background(), l)

	assert.Same(t, ctx, WithCtx(ctx, l))
	assert.NotNil(t, FromCtx(ctx, "series", "friends"))
}

func TestNew(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)
	defer out.Close()

	t.Run("level from string", func(t *testing.T) {
		l := New(out, "debug", false)
		assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level defaults to info", func(t *testing.T) {
		l := New(out, "loud", true)
		assert.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("writes json", func(t *testing.T) {
		l := New(out, "", true)
		l.Infow("saved catalog", "series", "friends")
		require.NoError(t, l.Sync())

		b, err := os.ReadFile(out.Name())
		require.NoError(t, err)
		assert.Contains(t, string(b), `"series":"friends"`)
		assert.Contains(t, string(b), `"timestamp"`)
	})
}
