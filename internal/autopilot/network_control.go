// Package autopilot implements the interface autopilot (§4.8) and network
// autopilot (§4.9): the event-driven reconcilers that map ACM notifications
// onto operator state transitions and loop lifecycle.
package autopilot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/loops"
)

// NetworkControl groups the downstream loops the interface autopilot needs
// to stop/kick without owning the network autopilot's full reconcile logic
// itself — this is the "network::end()"/"network::restart()" referenced by
// §4.8.
type NetworkControl struct {
	iff    *iface.Chosen
	pinger *loops.PingerLoop
	waiter *loops.WaiterLoop
	log    zerolog.Logger
}

// NewNetworkControl constructs a NetworkControl over the shared pinger and
// waiter loop handles.
func NewNetworkControl(iff *iface.Chosen, pinger *loops.PingerLoop, waiter *loops.WaiterLoop, log zerolog.Logger) *NetworkControl {
	return &NetworkControl{iff: iff, pinger: pinger, waiter: waiter, log: log.With().Str("component", "autopilot.network_control").Logger()}
}

// End stops the pinger and waiter loops, idempotently.
func (n *NetworkControl) End() {
	n.pinger.Stop()
	n.waiter.Stop()
}

// Restart ends any running downstream loops and triggers a fresh scan on
// the (newly) chosen interface. The scan's eventual ScanListRefresh
// notification is what actually drives the network autopilot to reselect
// and restart the pinger — Restart itself only kicks that off.
func (n *NetworkControl) Restart(ctx context.Context) {
	n.End()
	if _, err := n.iff.Scan(ctx); err != nil {
		n.log.Warn().Err(err).Msg("x restart scan trigger failed")
	}
}
