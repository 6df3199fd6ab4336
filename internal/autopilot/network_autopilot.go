package autopilot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/acm"
	"github.com/kerdl/wifu-go/internal/appstate"
	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/loops"
	"github.com/kerdl/wifu-go/internal/netsel"
	"github.com/kerdl/wifu-go/internal/wlan"
)

// NetworkAutopilot reacts to ScanListRefresh (§4.9), relevance-filtered to
// the currently chosen interface, reconciling the network selection and the
// pinger/waiter loop lifecycle against it. At most one instance is ever run
// (§3 invariant).
type NetworkAutopilot struct {
	bus <-chan wlan.Notification

	iff   *iface.Chosen
	list  *netsel.List
	net   *netsel.Chosen
	state *appstate.Operator

	pinger *loops.PingerLoop
	waiter *loops.WaiterLoop

	log zerolog.Logger
}

// NewNetworkAutopilot subscribes to bus and wires the operators and loops
// the reconciler needs to drive.
func NewNetworkAutopilot(
	bus *acm.Bus,
	iff *iface.Chosen,
	list *netsel.List,
	net *netsel.Chosen,
	state *appstate.Operator,
	pinger *loops.PingerLoop,
	waiter *loops.WaiterLoop,
	log zerolog.Logger,
) *NetworkAutopilot {
	return &NetworkAutopilot{
		bus:    bus.Subscribe(),
		iff:    iff,
		list:   list,
		net:    net,
		state:  state,
		pinger: pinger,
		waiter: waiter,
		log:    log.With().Str("component", "autopilot.network").Logger(),
	}
}

// Run consumes the network bus until ctx is done or the bus closes.
func (a *NetworkAutopilot) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-a.bus:
			if !ok {
				return
			}
			a.handle(ctx, n)
		}
	}
}

func (a *NetworkAutopilot) handle(ctx context.Context, n wlan.Notification) {
	if n.Code != wlan.NotificationScanListRefresh {
		return
	}
	if !a.iff.IsChosen() || *a.iff.GUID() != n.Adapter.GUID {
		return
	}
	a.reconcile(ctx)
}

// reconcile implements the four ordered transition rules of §4.9. Only the
// first matching rule fires per refresh.
func (a *NetworkAutopilot) reconcile(ctx context.Context) {
	if err := a.list.Update(ctx); err != nil {
		a.log.Warn().Err(err).Msg("x network list refresh failed")
		return
	}

	available := a.list.CfgNetworksAvailable()
	dead := a.state.IsDead()
	reason := a.state.Reason()
	chosen := a.net.IsChosen()

	switch {
	// Dead(NoNetwork), a whitelisted SSID just became reachable: stop
	// waiting, choose it, go Alive, start pinging.
	case dead && reason == appstate.NoNetwork && available:
		a.stopWaiter()
		a.net.Choose(ctx)
		_ = a.state.Alive()
		a.startPinger(ctx)

	// Nothing reachable and nothing chosen, and the state can still die:
	// go Dead(NoNetwork) and start waiting for one to appear.
	case !available && !chosen && (!dead || reason == appstate.Uninitialized):
		_ = a.state.Dead(appstate.NoNetwork)
		a.startWaiter(ctx)

	// First ever selection: something reachable, never alive before.
	case available && dead && reason == appstate.Uninitialized:
		a.net.Choose(ctx)
		_ = a.state.Alive()
		a.startPinger(ctx)

	// Alive but somehow without a chosen network (e.g. after an
	// interface swap): pick one and (re)start pinging.
	case available && !dead && !chosen:
		a.net.Choose(ctx)
		a.startPinger(ctx)
	}
}

func (a *NetworkAutopilot) startPinger(ctx context.Context) {
	if a.pinger.Works() {
		return
	}
	a.pinger.Start(ctx)
}

func (a *NetworkAutopilot) startWaiter(ctx context.Context) {
	if a.waiter.Works() {
		return
	}
	a.waiter.Start(ctx)
}

func (a *NetworkAutopilot) stopWaiter() {
	a.waiter.Stop()
}
