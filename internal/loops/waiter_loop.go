package loops

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/netsel"
)

// WaiterLoop periodically scans the chosen adapter while no whitelisted
// SSID is reachable (§4.11), since the OS may not emit ScanListRefresh on
// its own in that state. It self-closes the moment a network is chosen.
type WaiterLoop struct {
	Handle Handle

	iff      *iface.Chosen
	list     *netsel.List
	net      *netsel.Chosen
	interval func() time.Duration
	log      zerolog.Logger
}

// NewWaiterLoop constructs a WaiterLoop. interval returns the current
// config.WiFi.Scan.IntervalMs; it is read once each time the loop starts,
// so a reload takes effect from the next start.
func NewWaiterLoop(iff *iface.Chosen, list *netsel.List, net *netsel.Chosen, interval func() time.Duration, log zerolog.Logger) *WaiterLoop {
	return &WaiterLoop{iff: iff, list: list, net: net, interval: interval, log: log.With().Str("component", "loops.waiter").Logger()}
}

// Start spawns the loop under parent. Panics if already running.
func (l *WaiterLoop) Start(parent context.Context) {
	l.Handle.Spawn(parent, l.run)
}

// Stop aborts the loop if running.
func (l *WaiterLoop) Stop() { l.Handle.Close() }

// Works reports whether the loop is currently running.
func (l *WaiterLoop) Works() bool { return l.Handle.Works() }

func (l *WaiterLoop) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := l.iff.Scan(ctx); err != nil {
				l.log.Warn().Err(err).Msg("x waiter scan trigger failed")
				continue
			}
			if err := l.list.Update(ctx); err != nil {
				l.log.Warn().Err(err).Msg("x waiter network list refresh failed")
				continue
			}
			if !l.list.CfgNetworksAvailable() {
				continue
			}
			if _, ok := l.net.Choose(ctx); ok {
				l.Handle.SelfClose()
				return
			}
		}
	}
}
