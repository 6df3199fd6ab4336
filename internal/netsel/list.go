// Package netsel implements the network list operator (§4.5) and the
// network chosen operator (§4.6).
package netsel

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/wlan"
)

// ErrNotChosen is returned when List.Update is called with no interface
// chosen.
var ErrNotChosen = errors.New("netsel: no interface chosen")

// List holds the snapshot of SSIDs observed on the chosen adapter.
type List struct {
	mu   sync.RWMutex
	set  []wlan.AvailableNetwork
	iff  *iface.Chosen
	wifi func() cfg.WiFi
	log  zerolog.Logger
}

// NewList constructs a List bound to iff (the interface chosen operator).
// wifi returns the current config.WiFi on each call so reloads take effect.
func NewList(iff *iface.Chosen, wifi func() cfg.WiFi, log zerolog.Logger) *List {
	return &List{iff: iff, wifi: wifi, log: log.With().Str("component", "netsel.list").Logger()}
}

// Update reads available networks on the chosen adapter. Fails with
// ErrNotChosen if no interface is chosen.
func (l *List) Update(ctx context.Context) error {
	if !l.iff.IsChosen() {
		return ErrNotChosen
	}
	nets, err := l.iff.GetAvailableNetworks(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.set = nets
	l.mu.Unlock()
	return nil
}

// Clear empties the list; called on every InterfaceRemoval.
func (l *List) Clear() {
	l.mu.Lock()
	l.set = nil
	l.mu.Unlock()
}

// Snapshot returns a copy of the current available-network list.
func (l *List) Snapshot() []wlan.AvailableNetwork {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]wlan.AvailableNetwork, len(l.set))
	copy(out, l.set)
	return out
}

// GetBySSID looks up an available network by SSID.
func (l *List) GetBySSID(ssid string) (wlan.AvailableNetwork, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, n := range l.set {
		if n.SSID == ssid {
			return n, true
		}
	}
	return wlan.AvailableNetwork{}, false
}

// mapped pairs a configured whitelist entry with its live scan entry.
type mapped struct {
	cfg  cfg.Network
	live wlan.AvailableNetwork
}

// mapWithConfig is an inner join on SSID between config.WiFi.Networks and
// the live snapshot, in configuration order.
func (l *List) mapWithConfig() []mapped {
	whitelist := l.wifi().Networks
	live := l.Snapshot()

	byLiveSSID := make(map[string]wlan.AvailableNetwork, len(live))
	for _, n := range live {
		byLiveSSID[n.SSID] = n
	}

	out := make([]mapped, 0, len(whitelist))
	for _, cn := range whitelist {
		if n, ok := byLiveSSID[cn.SSID]; ok {
			out = append(out, mapped{cfg: cn, live: n})
		}
	}
	return out
}

// CfgNetworksAvailable reports whether any whitelisted SSID is currently
// reachable.
func (l *List) CfgNetworksAvailable() bool {
	return len(l.mapWithConfig()) > 0
}

// AccessableSSIDs returns the SSIDs of the join result, in configuration
// order.
func (l *List) AccessableSSIDs() []string {
	joined := l.mapWithConfig()
	out := make([]string, len(joined))
	for i, m := range joined {
		out[i] = m.cfg.SSID
	}
	return out
}
