package acm

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/osbinding"
	"github.com/kerdl/wifu-go/internal/wlan"
)

// Demux is the single task that consumes raw ACM notifications from the OS
// binding and republishes typed events on the interface and network buses.
type Demux struct {
	binding osbinding.Binding
	list    *iface.List

	InterfaceBus *Bus
	NetworkBus   *Bus

	log zerolog.Logger
}

// NewDemux constructs a Demux reading from binding and resolving GUIDs
// against list.
func NewDemux(binding osbinding.Binding, list *iface.List, log zerolog.Logger) *Demux {
	return &Demux{
		binding:      binding,
		list:         list,
		InterfaceBus: NewBus(DefaultCapacity),
		NetworkBus:   NewBus(DefaultCapacity),
		log:          log.With().Str("component", "acm.demux").Logger(),
	}
}

// Run consumes binding.Notifications() until ctx is done or the channel
// closes. Intended to run as the sole demux task (§3 invariant: at most one
// ACM demultiplexer alive at any instant).
func (d *Demux) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-d.binding.Notifications():
			if !ok {
				return
			}
			d.handle(ctx, raw)
		}
	}
}

func (d *Demux) handle(ctx context.Context, raw wlan.RawNotification) {
	switch raw.Code {
	case wlan.NotificationInterfaceArrival:
		// Refresh before resolving so the new adapter is resolvable.
		d.list.UpdateWarned(ctx)
		adapter, ok := d.list.GetByGUID(raw.GUID)
		if !ok {
			return
		}
		d.log.Info().Str("guid", raw.GUID.String()).Msg("+ interface arrival")
		d.InterfaceBus.Publish(wlan.Notification{Code: raw.Code, Adapter: adapter})

	case wlan.NotificationInterfaceRemoval:
		// Resolve before refreshing so the removed adapter is still found.
		adapter, ok := d.list.GetByGUID(raw.GUID)
		if !ok {
			return
		}
		d.log.Info().Str("guid", raw.GUID.String()).Msg("- interface removal")
		event := wlan.Notification{Code: raw.Code, Adapter: adapter}
		d.list.UpdateWarned(ctx)
		d.InterfaceBus.Publish(event)

	default:
		if !raw.Code.Relevant() {
			return
		}
		adapter, ok := d.list.GetByGUID(raw.GUID)
		if !ok {
			return
		}
		d.NetworkBus.Publish(wlan.Notification{Code: raw.Code, Adapter: adapter})
	}
}
