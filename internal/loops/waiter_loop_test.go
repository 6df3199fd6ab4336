package loops

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/netsel"
	"github.com/kerdl/wifu-go/internal/osbinding/mock"
	"github.com/kerdl/wifu-go/internal/wlan"
)

func TestWaiterLoop_SelfClosesOnceNetworkChosen(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New()}
	binding.SetInterfaces([]wlan.Adapter{a})

	ifaceList := iface.NewList(binding, func() []string { return nil }, zerolog.Nop())
	require.NoError(t, ifaceList.Update(context.Background()))
	chosenIface := iface.NewChosen(ifaceList, binding, zerolog.Nop())
	_, ok := chosenIface.Choose()
	require.True(t, ok)

	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "home"}}}
	netList := netsel.NewList(chosenIface, func() cfg.WiFi { return wifi }, zerolog.Nop())
	chosenNet := netsel.NewChosen(netList, chosenIface, zerolog.Nop())

	waiter := NewWaiterLoop(chosenIface, netList, chosenNet, func() time.Duration { return time.Millisecond }, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	waiter.Start(ctx)

	// Nothing reachable yet: the loop keeps ticking, still running.
	time.Sleep(20 * time.Millisecond)
	require.True(t, waiter.Works())

	binding.SetNetworks(a.GUID, []wlan.AvailableNetwork{{SSID: "home", BSS: wlan.BSSInfrastructure}})

	require.Eventually(t, func() bool { return !waiter.Works() }, time.Second, time.Millisecond)
	require.True(t, chosenNet.IsChosen())
}
