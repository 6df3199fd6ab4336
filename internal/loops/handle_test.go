package loops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHandle_SpawnWorksClose(t *testing.T) {
	var h Handle
	require.False(t, h.Works())

	started := make(chan struct{})
	h.Spawn(context.Background(), func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	})

	<-started
	require.True(t, h.Works())

	h.Close()
	require.False(t, h.Works())
}

func TestHandle_SpawnPanicsWhenAlreadyWorking(t *testing.T) {
	var h Handle
	h.Spawn(context.Background(), func(ctx context.Context) { <-ctx.Done() })
	defer h.Close()

	require.Panics(t, func() {
		h.Spawn(context.Background(), func(ctx context.Context) {})
	})
}

func TestHandle_SelfClose(t *testing.T) {
	var h Handle
	loopReturned := make(chan struct{})

	h.Spawn(context.Background(), func(ctx context.Context) {
		h.SelfClose()
		close(loopReturned)
	})

	select {
	case <-loopReturned:
	case <-time.After(time.Second):
		t.Fatal("loop body never returned")
	}

	require.False(t, h.Works())
}

func TestHandle_CloseOnIdleHandleIsNoop(t *testing.T) {
	var h Handle
	h.Close()
	require.False(t, h.Works())
}
