// Package mock is a hand-written fake of osbinding.Binding for tests,
// grounded on the teacher's small-interface-plus-fake-adapter pattern
// (pkg/modules/discovery/icmp_ping.go's Pinger interface / realPingerAdapter).
package mock

import (
	"context"
	"sync"

	"github.com/kerdl/wifu-go/internal/wlan"
)

// Binding is a fully scriptable fake OS WLAN binding.
type Binding struct {
	mu sync.Mutex

	Interfaces []wlan.Adapter
	Networks   map[wlan.GUID][]wlan.AvailableNetwork
	Profiles   map[wlan.GUID]map[string]wlan.Profile

	// ScanResult/ScanErr control the return of Scan.
	ScanResult bool
	ScanErr    error

	// ConnectResult/ConnectErr control the return of Connect.
	ConnectResult bool
	ConnectErr    error

	// DisconnectResult controls the return of Disconnect.
	DisconnectResult bool

	notifications chan wlan.RawNotification

	// SetProfileCalls records every SetProfile invocation for assertions.
	SetProfileCalls []wlan.Profile
	// ConnectCalls records every Connect invocation for assertions.
	ConnectCalls []ConnectCall
}

// ConnectCall records the arguments of one Connect invocation.
type ConnectCall struct {
	GUID        wlan.GUID
	ProfileName string
	BSS         wlan.BSS
}

// New returns an empty Binding. Push notifications with Emit.
func New() *Binding {
	return &Binding{
		Networks:         make(map[wlan.GUID][]wlan.AvailableNetwork),
		Profiles:         make(map[wlan.GUID]map[string]wlan.Profile),
		ScanResult:       true,
		ConnectResult:    true,
		DisconnectResult: true,
		notifications:    make(chan wlan.RawNotification, 64),
	}
}

// Emit pushes a raw notification to the demultiplexer's channel.
func (b *Binding) Emit(n wlan.RawNotification) {
	b.notifications <- n
}

// Close closes the notification channel (simulates OS handle teardown).
func (b *Binding) Close() { close(b.notifications) }

func (b *Binding) EnumerateInterfaces(ctx context.Context) ([]wlan.Adapter, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]wlan.Adapter, len(b.Interfaces))
	copy(out, b.Interfaces)
	return out, nil
}

func (b *Binding) Scan(ctx context.Context, guid wlan.GUID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ScanResult, b.ScanErr
}

func (b *Binding) GetAvailableNetworks(ctx context.Context, guid wlan.GUID) ([]wlan.AvailableNetwork, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	nets := b.Networks[guid]
	out := make([]wlan.AvailableNetwork, len(nets))
	copy(out, nets)
	return out, nil
}

func (b *Binding) GetProfile(ctx context.Context, guid wlan.GUID, name string) (wlan.Profile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if perGUID, ok := b.Profiles[guid]; ok {
		if p, ok := perGUID[name]; ok {
			return p, nil
		}
	}
	return wlan.Profile{}, nil
}

func (b *Binding) SetProfile(ctx context.Context, guid wlan.GUID, profile wlan.Profile) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Profiles[guid] == nil {
		b.Profiles[guid] = make(map[string]wlan.Profile)
	}
	b.Profiles[guid][profile.Name] = profile
	b.SetProfileCalls = append(b.SetProfileCalls, profile)
	return nil
}

func (b *Binding) Connect(ctx context.Context, guid wlan.GUID, profileName string, bss wlan.BSS) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ConnectCalls = append(b.ConnectCalls, ConnectCall{GUID: guid, ProfileName: profileName, BSS: bss})
	return b.ConnectResult, b.ConnectErr
}

func (b *Binding) Disconnect(ctx context.Context, guid wlan.GUID) (bool, error) {
	return b.DisconnectResult, nil
}

func (b *Binding) Notifications() <-chan wlan.RawNotification {
	return b.notifications
}

// SetInterfaces replaces the enumerated adapter list under lock.
func (b *Binding) SetInterfaces(list []wlan.Adapter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Interfaces = list
}

// SetNetworks replaces the available-network list for guid under lock.
func (b *Binding) SetNetworks(guid wlan.GUID, nets []wlan.AvailableNetwork) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Networks[guid] = nets
}

// ConnectCallCount returns the number of Connect invocations so far, safe
// to poll from a test goroutine while another drives calls concurrently.
func (b *Binding) ConnectCallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ConnectCalls)
}
