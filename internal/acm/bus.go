// Package acm implements the ACM event demultiplexer (§4.7): a bounded,
// lossy broadcast channel plus the single task that consumes raw OS
// notifications, resolves their GUID, and republishes typed events.
package acm

import (
	"sync"

	"github.com/kerdl/wifu-go/internal/wlan"
)

// DefaultCapacity is the bounded channel capacity named by §5: "bounded
// broadcast channel (capacity 64)".
const DefaultCapacity = 64

// Bus is a multi-producer, multi-consumer broadcast of wlan.Notification
// with drop-oldest semantics on a full subscriber channel. A plain Go
// channel has no drop-oldest mode and the teacher's callback-style
// event.Bus (pkg/event/event.go) is unbounded and fire-and-forget —
// neither gives the "capacity 64, drop oldest" semantics the spec asks
// for, so this is a small purpose-built ring-fed broadcast, structured the
// same way as event.Bus (RWMutex-guarded subscriber slice) but backed by
// bounded channels instead of goroutine-per-publish callbacks.
type Bus struct {
	mu       sync.RWMutex
	subs     []chan wlan.Notification
	capacity int
}

// NewBus constructs a Bus with the given per-subscriber channel capacity.
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bus{capacity: capacity}
}

// Subscribe returns a new receive channel; each subscriber gets its own
// independent, bounded queue.
func (b *Bus) Subscribe() <-chan wlan.Notification {
	ch := make(chan wlan.Notification, b.capacity)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish broadcasts n to every subscriber. If a subscriber's channel is
// full, the oldest queued notification is dropped to make room — autopilots
// are idempotent on redundant refresh signals, so losing a stale event under
// backpressure is acceptable per §5.
func (b *Bus) Publish(n wlan.Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- n:
			default:
			}
		}
	}
}
