package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLFallsBackToRoot(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	L(context.Background()).Info("root entry")
	require.Equal(t, 1, logs.Len())
}

func TestLUsesContextLogger(t *testing.T) {
	rootCore, rootLogs := observer.New(zap.DebugLevel)
	Set(zap.New(rootCore))
	t.Cleanup(func() { Set(nil) })

	ctxCore, ctxLogs := observer.New(zap.DebugLevel)
	ctx := NewContext(context.Background(), zap.New(ctxCore).With(zap.String("buffer", "a")))

	L(ctx).Warn("scoped entry")
	require.Equal(t, 0, rootLogs.Len())
	require.Equal(t, 1, ctxLogs.Len())
	require.Equal(t, "a", ctxLogs.All()[0].ContextMap()["buffer"])
}

func TestInitWithoutPathKeepsNop(t *testing.T) {
	flush, err := Init("", true)
	require.NoError(t, err)
	flush()
	require.NotNil(t, Root())
}
