// Package osbinding declares the contract this supervisor consumes from the
// OS WLAN subsystem (§6 of the spec). It is deliberately abstract: interface
// enumeration, scan trigger, profile get/set, connect/disconnect and ACM
// notification delivery. The real Windows binding is out of scope;
// mock.Binding (package osbinding/mock) implements the same contract.
package osbinding

import (
	"context"

	"github.com/kerdl/wifu-go/internal/wlan"
)

// Binding is the contract consumed from the OS WLAN subsystem.
type Binding interface {
	// EnumerateInterfaces returns the live set of wireless adapters.
	EnumerateInterfaces(ctx context.Context) ([]wlan.Adapter, error)

	// Scan triggers a scan on guid and awaits ScanComplete/ScanFail or a
	// bounded timeout, returning false on timeout (never an error for a
	// timeout, per §5).
	Scan(ctx context.Context, guid wlan.GUID) (bool, error)

	// GetAvailableNetworks returns networks observed by the most recent
	// scan on guid.
	GetAvailableNetworks(ctx context.Context, guid wlan.GUID) ([]wlan.AvailableNetwork, error)

	// GetProfile returns the profile named name on guid. A zero-value,
	// empty-named Profile (see wlan.Profile.IsEmpty) signals "not present"
	// rather than an error.
	GetProfile(ctx context.Context, guid wlan.GUID, name string) (wlan.Profile, error)

	// SetProfile installs profile on guid, creating or replacing it.
	SetProfile(ctx context.Context, guid wlan.GUID, profile wlan.Profile) error

	// Connect issues a connect to profileName over bss on guid and awaits
	// ConnectionComplete/ConnectionAttemptFail or a bounded timeout,
	// returning false on failure or timeout.
	Connect(ctx context.Context, guid wlan.GUID, profileName string, bss wlan.BSS) (bool, error)

	// Disconnect issues a disconnect on guid and awaits Disconnected or a
	// bounded timeout.
	Disconnect(ctx context.Context, guid wlan.GUID) (bool, error)

	// Notifications returns a channel the demultiplexer reads raw ACM
	// notifications from. The binding is the sole writer; it closes the
	// channel when the OS handle is torn down.
	Notifications() <-chan wlan.RawNotification
}
