package loops

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/netsel"
	"github.com/kerdl/wifu-go/internal/osbinding/mock"
	"github.com/kerdl/wifu-go/internal/pinger"
	"github.com/kerdl/wifu-go/internal/wlan"
)

type alwaysFailsProber struct{}

func (alwaysFailsProber) PingOnce(ctx context.Context, ip net.IP, timeout time.Duration) error {
	return context.DeadlineExceeded
}

type staticResolver struct{}

func (staticResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	return []net.IPAddr{{IP: net.ParseIP("127.0.0.1")}}, nil
}

func TestPingerLoop_SelfClosesWhenRescanYieldsNoNetwork(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New()}
	binding.SetInterfaces([]wlan.Adapter{a})

	ifaceList := iface.NewList(binding, func() []string { return nil }, zerolog.Nop())
	require.NoError(t, ifaceList.Update(context.Background()))
	chosenIface := iface.NewChosen(ifaceList, binding, zerolog.Nop())
	_, ok := chosenIface.Choose()
	require.True(t, ok)

	// No whitelist entries at all: rescan's Choose will always report false.
	netList := netsel.NewList(chosenIface, func() cfg.WiFi { return cfg.WiFi{} }, zerolog.Nop())
	chosenNet := netsel.NewChosen(netList, chosenIface, zerolog.Nop())

	pingConfig := cfg.Ping{
		Domains:    cfg.Domains{List: []string{"x.test"}, Mode: cfg.FirstIPFromEach},
		TimeoutMs:  10,
		IntervalMs: 1,
		MaxErrors:  1,
	}
	p := pinger.NewWithDeps(context.Background(), pingConfig, alwaysFailsProber{}, staticResolver{}, zerolog.Nop())

	loop := NewPingerLoop(p, chosenIface, chosenNet, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)

	require.Eventually(t, func() bool { return !loop.Works() }, time.Second, time.Millisecond)
}
