package acm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/osbinding/mock"
	"github.com/kerdl/wifu-go/internal/wlan"
)

func TestDemux_InterfaceArrival_RefreshesBeforePublishing(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	list := iface.NewList(binding, func() []string { return nil }, zerolog.Nop())
	demux := NewDemux(binding, list, zerolog.Nop())

	sub := demux.InterfaceBus.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go demux.Run(ctx)

	a := wlan.Adapter{GUID: uuid.New(), Description: "new-card"}
	binding.SetInterfaces([]wlan.Adapter{a})
	binding.Emit(wlan.RawNotification{Code: wlan.NotificationInterfaceArrival, GUID: a.GUID})

	select {
	case n := <-sub:
		require.Equal(t, wlan.NotificationInterfaceArrival, n.Code)
		require.Equal(t, a, n.Adapter)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for interface arrival notification")
	}

	// The list must already reflect the arrival by the time it's published.
	_, ok := list.GetByGUID(a.GUID)
	require.True(t, ok)
}

func TestDemux_InterfaceRemoval_ResolvesBeforeRefreshing(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New(), Description: "leaving-card"}
	binding.SetInterfaces([]wlan.Adapter{a})

	list := iface.NewList(binding, func() []string { return nil }, zerolog.Nop())
	require.NoError(t, list.Update(context.Background()))

	demux := NewDemux(binding, list, zerolog.Nop())
	sub := demux.InterfaceBus.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go demux.Run(ctx)

	binding.SetInterfaces(nil)
	binding.Emit(wlan.RawNotification{Code: wlan.NotificationInterfaceRemoval, GUID: a.GUID})

	select {
	case n := <-sub:
		require.Equal(t, wlan.NotificationInterfaceRemoval, n.Code)
		require.Equal(t, a, n.Adapter)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for interface removal notification")
	}

	_, ok := list.GetByGUID(a.GUID)
	require.False(t, ok)
}

func TestDemux_DropsIrrelevantCodes(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New()}
	binding.SetInterfaces([]wlan.Adapter{a})

	list := iface.NewList(binding, func() []string { return nil }, zerolog.Nop())
	require.NoError(t, list.Update(context.Background()))

	demux := NewDemux(binding, list, zerolog.Nop())
	sub := demux.NetworkBus.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go demux.Run(ctx)

	binding.Emit(wlan.RawNotification{Code: wlan.NotificationOther, GUID: a.GUID})
	binding.Emit(wlan.RawNotification{Code: wlan.NotificationScanListRefresh, GUID: a.GUID})

	select {
	case n := <-sub:
		require.Equal(t, wlan.NotificationScanListRefresh, n.Code)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for network notification")
	}
}
