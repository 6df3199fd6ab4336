package autopilot

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kerdl/wifu-go/internal/appstate"
	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/wlan"
)

func TestNetworkAutopilot_FirstSelection_GoesAliveAndStartsPinger(t *testing.T) {
	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "home"}}}
	rig := newTestRig(wifi)
	defer rig.binding.Close()

	a := wlan.Adapter{GUID: uuid.New()}
	rig.binding.SetInterfaces([]wlan.Adapter{a})
	require.NoError(t, rig.ifaceList.Update(context.Background()))
	_, ok := rig.chosenIface.Choose()
	require.True(t, ok)

	rig.binding.SetNetworks(a.GUID, []wlan.AvailableNetwork{{SSID: "home", BSS: wlan.BSSInfrastructure}})

	ap := NewNetworkAutopilot(rig.bus, rig.chosenIface, rig.netList, rig.chosenNet, rig.state, rig.pingerLoop, rig.waiterLoop, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ap.Run(ctx)

	rig.bus.Publish(wlan.Notification{Code: wlan.NotificationScanListRefresh, Adapter: a})

	require.Eventually(t, func() bool { return rig.state.IsAlive() }, time.Second, time.Millisecond)
	require.True(t, rig.chosenNet.IsChosen())
	require.Eventually(t, func() bool { return rig.pingerLoop.Works() }, time.Second, time.Millisecond)
}

func TestNetworkAutopilot_NothingAvailable_GoesDeadNoNetworkAndWaits(t *testing.T) {
	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "home"}}}
	rig := newTestRig(wifi)
	defer rig.binding.Close()

	a := wlan.Adapter{GUID: uuid.New()}
	rig.binding.SetInterfaces([]wlan.Adapter{a})
	require.NoError(t, rig.ifaceList.Update(context.Background()))
	_, ok := rig.chosenIface.Choose()
	require.True(t, ok)
	// No matching networks scripted: whitelist unreachable.

	ap := NewNetworkAutopilot(rig.bus, rig.chosenIface, rig.netList, rig.chosenNet, rig.state, rig.pingerLoop, rig.waiterLoop, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ap.Run(ctx)

	rig.bus.Publish(wlan.Notification{Code: wlan.NotificationScanListRefresh, Adapter: a})

	require.Eventually(t, func() bool {
		return rig.state.IsDead() && rig.state.Reason() == appstate.NoNetwork
	}, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return rig.waiterLoop.Works() }, time.Second, time.Millisecond)
}

func TestNetworkAutopilot_IgnoresNotificationsForNonChosenAdapter(t *testing.T) {
	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "home"}}}
	rig := newTestRig(wifi)
	defer rig.binding.Close()

	a := wlan.Adapter{GUID: uuid.New()}
	other := wlan.Adapter{GUID: uuid.New()}
	rig.binding.SetInterfaces([]wlan.Adapter{a})
	require.NoError(t, rig.ifaceList.Update(context.Background()))
	_, ok := rig.chosenIface.Choose()
	require.True(t, ok)

	ap := NewNetworkAutopilot(rig.bus, rig.chosenIface, rig.netList, rig.chosenNet, rig.state, rig.pingerLoop, rig.waiterLoop, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ap.Run(ctx)

	rig.bus.Publish(wlan.Notification{Code: wlan.NotificationScanListRefresh, Adapter: other})

	time.Sleep(20 * time.Millisecond)
	require.True(t, rig.state.IsDead())
	require.Equal(t, appstate.Uninitialized, rig.state.Reason())
}
