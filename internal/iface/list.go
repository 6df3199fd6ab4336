// Package iface implements the interface list operator (§4.3) and the
// interface chosen operator (§4.4).
package iface

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/osbinding"
	"github.com/kerdl/wifu-go/internal/wlan"
)

// List holds the live snapshot of wireless adapters and keeps it sorted by
// the configured priority on demand.
type List struct {
	mu  sync.RWMutex
	set []wlan.Adapter

	binding  osbinding.Binding
	priority func() []string
	log      zerolog.Logger
}

// NewList constructs a List bound to binding. priority returns the current
// config.Interfaces.Priority on each call, so config reloads take effect
// without re-wiring.
func NewList(binding osbinding.Binding, priority func() []string, log zerolog.Logger) *List {
	return &List{binding: binding, priority: priority, log: log.With().Str("component", "iface.list").Logger()}
}

// Update replaces the snapshot with a fresh OS enumeration, propagating any
// error from the binding.
func (l *List) Update(ctx context.Context) error {
	fresh, err := l.binding.EnumerateInterfaces(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.set = fresh
	l.mu.Unlock()
	return nil
}

// UpdateWarned is Update but absorbs the error, logging it instead of
// propagating, for call sites that cannot afford to fail.
func (l *List) UpdateWarned(ctx context.Context) {
	if err := l.Update(ctx); err != nil {
		l.log.Warn().Err(err).Msg("x interface enumeration failed")
	}
}

// Snapshot returns a copy of the current adapter list.
func (l *List) Snapshot() []wlan.Adapter {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]wlan.Adapter, len(l.set))
	copy(out, l.set)
	return out
}

// GetByGUID looks up an adapter by GUID.
func (l *List) GetByGUID(guid wlan.GUID) (wlan.Adapter, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, a := range l.set {
		if a.GUID == guid {
			return a, true
		}
	}
	return wlan.Adapter{}, false
}

// GetByStrGUID looks up an adapter by its stringified GUID.
func (l *List) GetByStrGUID(s string) (wlan.Adapter, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, a := range l.set {
		if a.GUID.String() == s {
			return a, true
		}
	}
	return wlan.Adapter{}, false
}

// GetNameByGUID returns the description of the adapter identified by guid.
func (l *List) GetNameByGUID(guid wlan.GUID) (string, bool) {
	a, ok := l.GetByGUID(guid)
	if !ok {
		return "", false
	}
	return a.Description, true
}

// AsGUIDStrings returns every adapter's stringified GUID, enumeration order.
func (l *List) AsGUIDStrings() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.set))
	for i, a := range l.set {
		out[i] = a.GUID.String()
	}
	return out
}

// SortedPriority concatenates (adapters whose stringified GUID appears in
// the configured priority, in config order) ++ (remaining adapters in
// enumeration order). Stable within each partition.
func (l *List) SortedPriority() []wlan.Adapter {
	l.mu.RLock()
	snapshot := make([]wlan.Adapter, len(l.set))
	copy(snapshot, l.set)
	l.mu.RUnlock()

	prio := l.priority()
	byGUID := make(map[string]wlan.Adapter, len(snapshot))
	for _, a := range snapshot {
		byGUID[a.GUID.String()] = a
	}

	used := make(map[string]bool, len(snapshot))
	out := make([]wlan.Adapter, 0, len(snapshot))

	for _, guidStr := range prio {
		if a, ok := byGUID[guidStr]; ok && !used[guidStr] {
			out = append(out, a)
			used[guidStr] = true
		}
	}
	for _, a := range snapshot {
		if !used[a.GUID.String()] {
			out = append(out, a)
			used[a.GUID.String()] = true
		}
	}
	return out
}

// DisconnectAllExcept best-effort disconnects every adapter other than
// guid. Errors are logged, never fatal.
func (l *List) DisconnectAllExcept(ctx context.Context, guid wlan.GUID) {
	for _, a := range l.Snapshot() {
		if a.GUID == guid {
			continue
		}
		if _, err := l.binding.Disconnect(ctx, a.GUID); err != nil {
			l.log.Warn().Err(err).Str("guid", a.GUID.String()).Msg("x disconnect failed")
		}
	}
}
