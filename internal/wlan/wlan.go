// Package wlan holds the data model shared by every operator in the
// supervisor: adapters, available networks, configured networks, profiles
// and the raw/typed ACM notifications that flow between them.
package wlan

import "github.com/google/uuid"

// GUID identifies an adapter or carries the subject of an ACM notification.
// The OS represents these as 128-bit opaque values; uuid.UUID is a faithful
// Go analogue (same width, same string round-trip).
type GUID = uuid.UUID

// AdapterState mirrors the OS-reported interface state.
type AdapterState string

const (
	AdapterNotReady       AdapterState = "NotReady"
	AdapterConnected      AdapterState = "Connected"
	AdapterAdHocFormed    AdapterState = "AdHocFormed"
	AdapterDisconnecting  AdapterState = "Disconnecting"
	AdapterDisconnected   AdapterState = "Disconnected"
	AdapterAssociating    AdapterState = "Associating"
	AdapterDiscovering    AdapterState = "Discovering"
	AdapterAuthenticating AdapterState = "Authenticating"
)

// Adapter is a wireless interface as enumerated by the OS. Identity is GUID;
// lifetime is owned by the OS, this system only observes.
type Adapter struct {
	GUID        GUID
	Description string
	State       AdapterState
}

// BSS is the basic service set type of an observed network.
type BSS string

const (
	BSSInfrastructure BSS = "Infrastructure"
	BSSIndependent    BSS = "Independent"
	BSSAny            BSS = "Any"
)

// AuthAlgorithm is the authentication algorithm advertised by a network.
type AuthAlgorithm string

const (
	AuthOpen      AuthAlgorithm = "Open"
	AuthSharedKey AuthAlgorithm = "SharedKey"
	AuthWPA       AuthAlgorithm = "WPA"
	AuthWPAPSK    AuthAlgorithm = "WPAPSK"
	AuthWPA2      AuthAlgorithm = "WPA2"
	AuthWPA2PSK   AuthAlgorithm = "WPA2PSK"
	AuthWPA3SAE   AuthAlgorithm = "WPA3SAE"
	AuthDisabled  AuthAlgorithm = "Disabled"
)

// CipherAlgorithm is the cipher advertised alongside an AuthAlgorithm.
type CipherAlgorithm string

const (
	CipherNone CipherAlgorithm = "None"
	CipherWEP  CipherAlgorithm = "WEP"
	CipherTKIP CipherAlgorithm = "TKIP"
	CipherCCMP CipherAlgorithm = "CCMP"
)

// Security describes the authentication/cipher pair of an observed network.
type Security struct {
	Enabled bool
	Auth    AuthAlgorithm
	Cipher  CipherAlgorithm
}

// AvailableNetwork is a network observed by a scan on a given adapter.
// Identity in this model is SSID: multiple BSSIDs of the same SSID collapse
// into a single entry, matching how the supervisor reasons about whitelists.
type AvailableNetwork struct {
	SSID          string
	BSS           BSS
	Connectable   bool
	SignalQuality int // 0..100
	Security      Security
}

// ConfiguredNetwork is a whitelist entry loaded from configuration.
// Immutable at runtime; identity is SSID.
type ConfiguredNetwork struct {
	SSID     string
	Password string
	HasPass  bool
}

// KeyKind is the kind of key material stored in a Profile.
type KeyKind string

const (
	KeyPassPhrase KeyKind = "PassPhrase"
	KeyNetworkKey KeyKind = "NetworkKey"
)

// Key is the key material embedded in a Profile's security block.
type Key struct {
	Kind      KeyKind
	Encrypted bool
	Content   string
}

// ConnectionKind mirrors the OS profile's connection type.
type ConnectionKind string

const (
	ConnectionESS ConnectionKind = "ESS"
	ConnectionIBSS ConnectionKind = "IBSS"
)

// ConnectionMode mirrors the OS profile's connection mode.
type ConnectionMode string

const (
	ModeAuto   ConnectionMode = "Auto"
	ModeManual ConnectionMode = "Manual"
)

// ProfileConnection groups the connection kind/mode of a Profile.
type ProfileConnection struct {
	Kind ConnectionKind
	Mode ConnectionMode
}

// ProfileSecurity groups the auth/cipher/key of a Profile.
type ProfileSecurity struct {
	Auth   AuthAlgorithm
	Cipher CipherAlgorithm
	Key    *Key // nil when the network is open
}

// Profile is the OS-managed, persisted description of an SSID's connection
// settings. This system only ever reads or writes profiles through the OS
// binding; it never removes one.
type Profile struct {
	Name             string
	SSID             string
	Connection       ProfileConnection
	AutoSwitch       *bool
	Security         ProfileSecurity
	MACRandomization bool
}

// IsEmpty reports whether a profile returned by the OS binding should be
// treated as "not present". The OS returns a profile whose Name is empty
// to signal absence; treating that as None (rather than "only when empty"
// inverted) is the corrected semantics documented in SPEC_FULL.md.
func (p Profile) IsEmpty() bool {
	return p.Name == ""
}

// NotificationCode enumerates the ACM notification codes this supervisor
// cares about. The real OS subsystem emits 29 distinct codes; everything
// not named here collapses to NotificationOther and is dropped by the demux.
type NotificationCode int

const (
	NotificationOther NotificationCode = iota
	NotificationInterfaceArrival
	NotificationInterfaceRemoval
	NotificationScanComplete
	NotificationScanFail
	NotificationScanListRefresh
	NotificationConnectionStart
	NotificationConnectionComplete
	NotificationConnectionAttemptFail
	NotificationDisconnecting
	NotificationDisconnected
)

func (c NotificationCode) String() string {
	switch c {
	case NotificationInterfaceArrival:
		return "InterfaceArrival"
	case NotificationInterfaceRemoval:
		return "InterfaceRemoval"
	case NotificationScanComplete:
		return "ScanComplete"
	case NotificationScanFail:
		return "ScanFail"
	case NotificationScanListRefresh:
		return "ScanListRefresh"
	case NotificationConnectionStart:
		return "ConnectionStart"
	case NotificationConnectionComplete:
		return "ConnectionComplete"
	case NotificationConnectionAttemptFail:
		return "ConnectionAttemptFail"
	case NotificationDisconnecting:
		return "Disconnecting"
	case NotificationDisconnected:
		return "Disconnected"
	default:
		return "Other"
	}
}

// RawNotification is what the OS ACM callback hands the demultiplexer:
// a notification code plus the GUID it concerns, not yet resolved against
// the live interface list.
type RawNotification struct {
	Code NotificationCode
	GUID GUID
}

// Notification is a RawNotification after its GUID has been resolved
// against the current interface list.
type Notification struct {
	Code    NotificationCode
	Adapter Adapter
}

// IsInterfaceScoped reports whether a code concerns interface arrival/removal.
func (c NotificationCode) IsInterfaceScoped() bool {
	return c == NotificationInterfaceArrival || c == NotificationInterfaceRemoval
}

// IsNetworkScoped reports whether a code concerns scan/connection activity.
func (c NotificationCode) IsNetworkScoped() bool {
	switch c {
	case NotificationScanComplete, NotificationScanFail, NotificationScanListRefresh,
		NotificationConnectionStart, NotificationConnectionComplete,
		NotificationConnectionAttemptFail, NotificationDisconnecting, NotificationDisconnected:
		return true
	default:
		return false
	}
}

// Relevant reports whether the demux should pass this code through at all
// (interface-scoped, network-scoped, or dropped as "other").
func (c NotificationCode) Relevant() bool {
	return c.IsInterfaceScoped() || c.IsNetworkScoped()
}
