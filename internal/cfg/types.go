// Package cfg loads, validates, saves and watches the supervisor's
// on-disk configuration document (./wifu-data/cfg.json).
package cfg

import "time"

// DomainsMode controls how Pinger.gatherIPs collects addresses per domain.
type DomainsMode string

const (
	// FirstIPFromEach keeps only the first resolved address per domain.
	FirstIPFromEach DomainsMode = "firstIpFromEach"
	// AllIPsFromEach keeps every resolved address per domain.
	AllIPsFromEach DomainsMode = "allIpsFromEach"
)

// Domains is the list of hostnames the pinger resolves, plus the mode used
// to collect IPs from each.
type Domains struct {
	List []string    `koanf:"list" json:"list" validate:"min=1,dive,hostname|fqdn"`
	Mode DomainsMode `koanf:"mode" json:"mode" validate:"oneof=firstIpFromEach allIpsFromEach"`
}

// Ping configures the liveness pinger.
type Ping struct {
	Domains    Domains `koanf:"domains" json:"domains"`
	TimeoutMs  uint32  `koanf:"timeoutMs" json:"timeoutMs" validate:"min=1"`
	IntervalMs uint64  `koanf:"intervalMs" json:"intervalMs" validate:"min=1"`
	MaxErrors  uint32  `koanf:"maxErrors" json:"maxErrors" validate:"min=1"`
}

// Timeout returns TimeoutMs as a time.Duration.
func (p Ping) Timeout() time.Duration { return time.Duration(p.TimeoutMs) * time.Millisecond }

// Interval returns IntervalMs as a time.Duration.
func (p Ping) Interval() time.Duration { return time.Duration(p.IntervalMs) * time.Millisecond }

// Interfaces holds the user-ordered adapter preference list, each entry the
// stringified form of an adapter GUID.
type Interfaces struct {
	Priority []string `koanf:"priority" json:"priority"`
}

// Network is a single whitelisted SSID, with an optional password.
type Network struct {
	SSID     string `koanf:"ssid" json:"ssid" validate:"required"`
	Password string `koanf:"password" json:"password,omitempty"`
}

// NetworkPriority is the wifi.priority setting. It is loaded and validated
// only: network selection always follows whitelist order, whatever its
// value, and signal strength is never used for ranking.
type NetworkPriority string

const (
	PriorityList           NetworkPriority = "list"
	PrioritySignalStrength NetworkPriority = "signalStrength"
)

// Scan configures the periodic waiter scan interval.
type Scan struct {
	IntervalMs uint64 `koanf:"intervalMs" json:"intervalMs" validate:"min=1"`
}

// Interval returns IntervalMs as a time.Duration.
func (s Scan) Interval() time.Duration { return time.Duration(s.IntervalMs) * time.Millisecond }

// WiFi holds the SSID whitelist and scan behavior.
type WiFi struct {
	Networks []Network       `koanf:"networks" json:"networks" validate:"min=1,dive"`
	Priority NetworkPriority `koanf:"priority" json:"priority" validate:"oneof=list signalStrength"`
	Scan     Scan            `koanf:"scan" json:"scan"`
}

// Config is the root of the on-disk document, ./wifu-data/cfg.json.
type Config struct {
	Ping       Ping       `koanf:"ping" json:"ping"`
	Interfaces Interfaces `koanf:"interfaces" json:"interfaces"`
	WiFi       WiFi       `koanf:"wifi" json:"wifi"`
}

// Default returns the hardcoded baseline configuration, matching
// original_source's Config::default (same domain list, same defaults).
func Default() Config {
	return Config{
		Ping: Ping{
			Domains: Domains{
				List: []string{"google.com", "amazon.com", "microsoft.com"},
				Mode: FirstIPFromEach,
			},
			TimeoutMs:  1500,
			IntervalMs: 1000,
			MaxErrors:  3,
		},
		Interfaces: Interfaces{
			Priority: []string{},
		},
		WiFi: WiFi{
			Networks: []Network{},
			Priority: PriorityList,
			Scan: Scan{
				IntervalMs: 30000,
			},
		},
	}
}

// HasPassword lets callers check whether a Network carries a password
// without reaching into the zero-value-vs-unset ambiguity of a bare string.
func (n Network) HasPassword() bool { return n.Password != "" }
