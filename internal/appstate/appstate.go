// Package appstate holds the single source of truth for whether the
// supervisor currently considers the host connected to Internet-capable
// Wi-Fi.
package appstate

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// DeadReason names why the supervisor is not Alive.
type DeadReason int

const (
	Uninitialized DeadReason = iota
	NoInterface
	NoNetwork
)

func (r DeadReason) String() string {
	switch r {
	case NoInterface:
		return "NoInterface"
	case NoNetwork:
		return "NoNetwork"
	default:
		return "Uninitialized"
	}
}

// hint returns the remediation hint logged alongside a Dead transition.
func (r DeadReason) hint() string {
	switch r {
	case NoInterface:
		return "plug in or enable a wireless adapter"
	case NoNetwork:
		return "none of the whitelisted SSIDs are currently in range"
	default:
		return "waiting for the first interface/network selection"
	}
}

// ErrAlreadyAlive is returned by Alive when the state is already Alive.
var ErrAlreadyAlive = errors.New("appstate: already alive")

// ErrAlreadyDead is returned by Dead when the state is neither Alive nor
// Dead(Uninitialized) — i.e. already dead for a concrete reason.
var ErrAlreadyDead = errors.New("appstate: already dead")

// value is the tagged state: either Alive, or Dead with a reason.
type value struct {
	alive  bool
	reason DeadReason
}

// Operator is the single source of truth for AppState, guarded by a mutex
// so every caller observes a consistent transition history.
type Operator struct {
	mu  sync.RWMutex
	cur value
	log zerolog.Logger
}

// New returns an Operator starting in Dead(Uninitialized).
func New(log zerolog.Logger) *Operator {
	return &Operator{cur: value{alive: false, reason: Uninitialized}, log: log}
}

// IsAlive reports whether the current state is Alive.
func (o *Operator) IsAlive() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cur.alive
}

// IsDead reports whether the current state is Dead (any reason).
func (o *Operator) IsDead() bool {
	return !o.IsAlive()
}

// Reason returns the current DeadReason; meaningless when IsAlive() is true.
func (o *Operator) Reason() DeadReason {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cur.reason
}

// Alive transitions to Alive. Fails with ErrAlreadyAlive if already Alive.
func (o *Operator) Alive() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cur.alive {
		o.log.Debug().Err(ErrAlreadyAlive).Msg("x state transition rejected")
		return ErrAlreadyAlive
	}

	o.cur = value{alive: true}
	o.log.Info().Msg("! alive")
	return nil
}

// Dead transitions to Dead(reason). Fails with ErrAlreadyDead unless the
// current state is Alive or Dead(Uninitialized).
func (o *Operator) Dead(reason DeadReason) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.cur.alive && o.cur.reason != Uninitialized {
		o.log.Debug().Err(ErrAlreadyDead).Msg("x state transition rejected")
		return ErrAlreadyDead
	}

	o.cur = value{alive: false, reason: reason}
	o.log.Info().Str("reason", reason.String()).Str("hint", reason.hint()).Msg("o dead")
	return nil
}
