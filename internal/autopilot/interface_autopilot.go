package autopilot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/acm"
	"github.com/kerdl/wifu-go/internal/appstate"
	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/netsel"
	"github.com/kerdl/wifu-go/internal/wlan"
)

// InterfaceAutopilot reacts to InterfaceArrival/InterfaceRemoval (§4.8),
// reselecting the chosen interface and restarting the downstream network
// machinery. At most one instance is ever run (§3 invariant).
type InterfaceAutopilot struct {
	bus     <-chan wlan.Notification
	iff     *iface.Chosen
	list    *iface.List
	netList *netsel.List
	state   *appstate.Operator
	net     *NetworkControl
	log     zerolog.Logger
}

// NewInterfaceAutopilot subscribes to bus and wires the operators the
// reconciler needs to drive.
func NewInterfaceAutopilot(bus *acm.Bus, iff *iface.Chosen, list *iface.List, netList *netsel.List, state *appstate.Operator, net *NetworkControl, log zerolog.Logger) *InterfaceAutopilot {
	return &InterfaceAutopilot{
		bus:     bus.Subscribe(),
		iff:     iff,
		list:    list,
		netList: netList,
		state:   state,
		net:     net,
		log:     log.With().Str("component", "autopilot.interface").Logger(),
	}
}

// Run consumes the interface bus until ctx is done or the bus closes.
func (a *InterfaceAutopilot) Run(ctx context.Context) {
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

func (a *InterfaceAutopilot) handle(ctx context.Context, n wlan.Notification) {
	switch n.Code {
	case wlan.NotificationInterfaceArrival:
		a.handleArrival(ctx)
	case wlan.NotificationInterfaceRemoval:
		a.handleRemoval(ctx, n)
	}
}

func (a *InterfaceAutopilot) handleArrival(ctx context.Context) {
	if guid, fresh := a.iff.Choose(); fresh {
		a.list.DisconnectAllExcept(ctx, guid)
	}
	if a.state.IsDead() {
		_ = a.state.Alive()
	}
	a.net.Restart(ctx)
}

func (a *InterfaceAutopilot) handleRemoval(ctx context.Context, n wlan.Notification) {
	// Unconditional per spec.md §4.3/§4.8: NetworkList is cleared on every
	// InterfaceRemoval, regardless of which adapter was removed.
	a.netList.Clear()

	removedWasChosen := a.iff.IsChosen() && *a.iff.GUID() == n.Adapter.GUID
	remaining := a.list.Snapshot()

	switch {
	case removedWasChosen && len(remaining) == 0:
		_ = a.iff.Unchoose()
		a.net.End()
		_ = a.state.Dead(appstate.NoInterface)

	case len(remaining) > 0:
		if _, fresh := a.iff.Choose(); fresh {
			if a.state.IsDead() {
				_ = a.state.Alive()
			}
			a.net.Restart(ctx)
		}

	default:
		_ = a.state.Dead(appstate.NoInterface)
	}
}
