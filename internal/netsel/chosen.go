package netsel

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/priority"
	"github.com/kerdl/wifu-go/internal/wlan"
)

// ErrNotChosenToUnchoose is returned by Unchoose when nothing is chosen.
var ErrNotChosenToUnchoose = errors.New("netsel: cannot unchoose, nothing chosen")

// Chosen holds the selected SSID and drives the connect/retry loop of §4.6.
type Chosen struct {
	ssid     *string
	choosing bool

	list *List
	iff  *iface.Chosen
	log  zerolog.Logger
}

// NewChosen constructs a Chosen bound to list and the interface chosen
// operator used to provision/connect.
func NewChosen(list *List, iff *iface.Chosen, log zerolog.Logger) *Chosen {
	return &Chosen{list: list, iff: iff, log: log.With().Str("component", "netsel.chosen").Logger()}
}

// SSID returns the chosen SSID, or nil if none is chosen.
func (c *Chosen) SSID() *string { return c.ssid }

// IsChosen reports whether an SSID is currently chosen.
func (c *Chosen) IsChosen() bool { return c.ssid != nil }

// IsChoosing reports whether a Choose call is currently in flight.
func (c *Chosen) IsChoosing() bool { return c.choosing }

// Choose repeatedly picks the next candidate SSID via the priority selector
// and attempts to connect, retrying on failure. Returns (ssid, true) on
// success, or (empty, false) once the selector reports no candidates
// (accessible whitelist is empty) — the caller should then drive AppState
// to Dead(NoNetwork). ctx cancellation breaks the retry loop early.
func (c *Chosen) Choose(ctx context.Context) (string, bool) {
	c.choosing = true
	defer func() { c.choosing = false }()

	for {
		select {
		case <-ctx.Done():
			return "", false
		default:
		}

		accessible := c.list.AccessableSSIDs()

		next, err := priority.Choose(c.ssid, accessible)
		if err != nil {
			return "", false
		}

		s := next
		c.ssid = &s

		ok, err := c.connect(ctx)
		if err != nil || !ok {
			if err != nil {
				c.log.Debug().Err(err).Str("ssid", s).Msg("x connect attempt errored, retrying")
			} else {
				c.log.Debug().Str("ssid", s).Msg("x connect attempt failed, retrying")
			}
			continue
		}

		c.log.Info().Str("ssid", s).Msg("+ network chosen")
		return s, true
	}
}

// connect ensures a profile exists for the current candidate SSID (creating
// one from the live scan entry and configured password if missing) then
// invokes the OS connect. Returns (false, nil) rather than an error when the
// live network has disappeared from the list — that's a retry signal, not a
// failure.
func (c *Chosen) connect(ctx context.Context) (bool, error) {
	ssid := *c.ssid

	live, ok := c.list.GetBySSID(ssid)
	if !ok {
		return false, nil
	}

	password := passwordFor(c.list.wifi().Networks, ssid)

	exists, err := c.iff.ProfileExists(ctx, ssid)
	if err != nil {
		return false, err
	}

	if !exists {
		profile := synthesizeProfile(ssid, live, password)
		if err := c.iff.SetProfile(ctx, profile); err != nil {
			return false, err
		}
	}

	return c.iff.Connect(ctx, ssid, live.BSS)
}

// passwordFor returns the configured password for ssid, or "" if the
// whitelist entry has none.
func passwordFor(networks []cfg.Network, ssid string) string {
	for _, n := range networks {
		if n.SSID == ssid {
			return n.Password
		}
	}
	return ""
}

// Unchoose clears the current selection. Fails if nothing was chosen.
func (c *Chosen) Unchoose() error {
	if c.ssid == nil {
		return ErrNotChosenToUnchoose
	}
	c.log.Info().Str("ssid", *c.ssid).Msg("- network unchosen")
	c.ssid = nil
	return nil
}

// synthesizeProfile builds a new, unencrypted PassPhrase profile from a live
// scan entry and the configured password, matching §4.6 step 5.
func synthesizeProfile(ssid string, live wlan.AvailableNetwork, password string) wlan.Profile {
	var key *wlan.Key
	if password != "" {
		key = &wlan.Key{Kind: wlan.KeyPassPhrase, Encrypted: false, Content: password}
	}

	return wlan.Profile{
		Name: ssid,
		SSID: ssid,
		Connection: wlan.ProfileConnection{
			Kind: connectionKindFor(live.BSS),
			Mode: wlan.ModeAuto,
		},
		Security: wlan.ProfileSecurity{
			Auth:   live.Security.Auth,
			Cipher: live.Security.Cipher,
			Key:    key,
		},
	}
}

func connectionKindFor(bss wlan.BSS) wlan.ConnectionKind {
	if bss == wlan.BSSIndependent {
		return wlan.ConnectionIBSS
	}
	return wlan.ConnectionESS
}
