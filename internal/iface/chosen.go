package iface

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/osbinding"
	"github.com/kerdl/wifu-go/internal/wlan"
)

// ErrNotChosen is returned by delegating calls when no interface is chosen.
var ErrNotChosen = errors.New("iface: no interface chosen")

// ErrNotChosenToUnchoose is returned by Unchoose when nothing is chosen.
var ErrNotChosenToUnchoose = errors.New("iface: cannot unchoose, nothing chosen")

// Chosen holds the currently selected adapter and delegates OS operations
// to it.
type Chosen struct {
	guid    *wlan.GUID
	name    string
	list    *List
	binding osbinding.Binding
	log     zerolog.Logger
}

// NewChosen constructs a Chosen bound to list/binding, starting unchosen.
func NewChosen(list *List, binding osbinding.Binding, log zerolog.Logger) *Chosen {
	return &Chosen{list: list, binding: binding, log: log.With().Str("component", "iface.chosen").Logger()}
}

// GUID returns the chosen adapter's GUID, or nil if none is chosen.
func (c *Chosen) GUID() *wlan.GUID { return c.guid }

// IsChosen reports whether an adapter is currently chosen.
func (c *Chosen) IsChosen() bool { return c.guid != nil }

// Choose reads List.SortedPriority and picks element 0. Returns (guid, true)
// if this is a fresh selection (different from the current chosen), or
// (zero, false) if the list is empty or the pick didn't change — both read
// as "no change" per §4.4.
func (c *Chosen) Choose() (wlan.GUID, bool) {
	sorted := c.list.SortedPriority()
	if len(sorted) == 0 {
		return wlan.GUID{}, false
	}

	next := sorted[0]
	if c.guid != nil && *c.guid == next.GUID {
		return wlan.GUID{}, false
	}

	g := next.GUID
	c.guid = &g
	c.name = next.Description
	c.log.Info().Str("guid", g.String()).Str("name", next.Description).Msg("+ interface chosen")
	return g, true
}

// Unchoose clears the current selection. Fails if nothing was chosen.
func (c *Chosen) Unchoose() error {
	if c.guid == nil {
		return ErrNotChosenToUnchoose
	}
	c.log.Info().Str("guid", c.guid.String()).Msg("- interface unchosen")
	c.guid = nil
	c.name = ""
	return nil
}

// Scan triggers a scan on the chosen adapter.
func (c *Chosen) Scan(ctx context.Context) (bool, error) {
	if c.guid == nil {
		return false, ErrNotChosen
	}
	return c.binding.Scan(ctx, *c.guid)
}

// GetProfile fetches a profile by name on the chosen adapter.
func (c *Chosen) GetProfile(ctx context.Context, name string) (wlan.Profile, error) {
	if c.guid == nil {
		return wlan.Profile{}, ErrNotChosen
	}
	return c.binding.GetProfile(ctx, *c.guid, name)
}

// SetProfile installs a profile on the chosen adapter.
func (c *Chosen) SetProfile(ctx context.Context, p wlan.Profile) error {
	if c.guid == nil {
		return ErrNotChosen
	}
	return c.binding.SetProfile(ctx, *c.guid, p)
}

// ProfileExists reports whether a non-empty profile named name exists on
// the chosen adapter.
func (c *Chosen) ProfileExists(ctx context.Context, name string) (bool, error) {
	p, err := c.GetProfile(ctx, name)
	if err != nil {
		return false, err
	}
	return !p.IsEmpty(), nil
}

// Connect issues a connect to profileName over bss on the chosen adapter.
func (c *Chosen) Connect(ctx context.Context, profileName string, bss wlan.BSS) (bool, error) {
	if c.guid == nil {
		return false, ErrNotChosen
	}
	return c.binding.Connect(ctx, *c.guid, profileName, bss)
}

// GetAvailableNetworks reads available networks observed on the chosen
// adapter.
func (c *Chosen) GetAvailableNetworks(ctx context.Context) ([]wlan.AvailableNetwork, error) {
	if c.guid == nil {
		return nil, ErrNotChosen
	}
	return c.binding.GetAvailableNetworks(ctx, *c.guid)
}
