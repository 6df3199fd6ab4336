package loops

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/netsel"
	"github.com/kerdl/wifu-go/internal/pinger"
)

// PingerLoop runs at most once (§4.10): it keeps the Pinger fed with IPs
// and, whenever the Pinger's ping cycle gives up (threshold reached), scans
// and re-chooses a network before either restarting the ping or closing.
type PingerLoop struct {
	Handle Handle

	pinger *pinger.Pinger
	iff    *iface.Chosen
	net    *netsel.Chosen
	log    zerolog.Logger
}

// NewPingerLoop constructs a PingerLoop over the given pinger and
// selection operators.
func NewPingerLoop(p *pinger.Pinger, iff *iface.Chosen, net *netsel.Chosen, log zerolog.Logger) *PingerLoop {
	return &PingerLoop{pinger: p, iff: iff, net: net, log: log.With().Str("component", "loops.pinger").Logger()}
}

// Start spawns the loop under parent. Panics if already running.
func (l *PingerLoop) Start(parent context.Context) {
	l.Handle.Spawn(parent, l.run)
}

// Stop aborts the loop if running.
func (l *PingerLoop) Stop() { l.Handle.Close() }

// Works reports whether the loop is currently running.
func (l *PingerLoop) Works() bool { return l.Handle.Works() }

func (l *PingerLoop) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if l.pinger.HasNoIPs() {
			if !l.rescan(ctx) {
				l.Handle.SelfClose()
				return
			}
			l.pinger.UpdateIPs(ctx)
		}

		l.pinger.Start(ctx)
		if ctx.Err() != nil {
			return
		}

		if !l.rescan(ctx) {
			l.Handle.SelfClose()
			return
		}
	}
}

// rescan triggers a scan on the chosen adapter and re-chooses a network.
// Returns false when the network chosen operator reports no candidates
// left, signalling the loop should close.
func (l *PingerLoop) rescan(ctx context.Context) bool {
	if _, err := l.iff.Scan(ctx); err != nil {
		l.log.Warn().Err(err).Msg("x scan trigger failed")
	}
	_, ok := l.net.Choose(ctx)
	return ok
}
