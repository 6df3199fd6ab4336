// Package loops implements the handle-owned event loops (§9 Design Notes):
// the Pinger loop (§4.10) and the Waiter loop (§4.11), plus the Handle
// type shared by both to enforce "at most one of each loop kind alive at
// any instant" (§3 invariant).
package loops

import (
	"context"
	"sync"
)

// Handle owns a single cancellable goroutine. The zero value is Stopped.
// Works/Spawn/Close give every loop a uniform spawn discipline (§5):
// Works reports whether the slot is occupied, Spawn panics if it is, Close
// aborts the goroutine and clears the slot. A goroutine that returns
// without SelfClose (for example after its parent context is cancelled)
// keeps the slot occupied until Close.
type Handle struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Works reports whether this handle's slot holds a spawned goroutine that
// has not been cleared by Close or SelfClose; it does not check whether
// that goroutine has already returned.
func (h *Handle) Works() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel != nil
}

// Spawn starts fn in a new goroutine derived from parent, storing its
// cancel func. Panics if a goroutine is already running under this handle —
// callers must Close first.
func (h *Handle) Spawn(parent context.Context, fn func(ctx context.Context)) {
	h.mu.Lock()
	if h.cancel != nil {
		h.mu.Unlock()
		panic("loops: Spawn called while handle already works")
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	h.cancel = cancel
	h.done = done
	h.mu.Unlock()

	go func() {
		defer close(done)
		fn(ctx)
	}()
}

// SelfClose clears the slot without cancelling or waiting. It exists for a
// loop body to call on itself just before returning — calling Close from
// inside your own goroutine would deadlock waiting on a done channel that
// only closes once you return.
func (h *Handle) SelfClose() {
	h.mu.Lock()
	h.cancel = nil
	h.done = nil
	h.mu.Unlock()
}

// Close aborts the running goroutine (if any) and clears the slot. It waits
// for the goroutine to observe cancellation and return before returning
// itself, so a subsequent Spawn never races the previous goroutine's
// cleanup.
func (h *Handle) Close() {
	h.mu.Lock()
	cancel := h.cancel
	done := h.done
	h.cancel = nil
	h.done = nil
	h.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
