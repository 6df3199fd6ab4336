package acm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kerdl/wifu-go/internal/wlan"
)

func TestBus_PublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(4)
	s1 := bus.Subscribe()
	s2 := bus.Subscribe()

	n := wlan.Notification{Code: wlan.NotificationInterfaceArrival, Adapter: wlan.Adapter{GUID: uuid.New()}}
	bus.Publish(n)

	require.Equal(t, n, <-s1)
	require.Equal(t, n, <-s2)
}

func TestBus_DropsOldestWhenFull(t *testing.T) {
	bus := NewBus(2)
	sub := bus.Subscribe()

	first := wlan.Notification{Code: wlan.NotificationScanComplete}
	second := wlan.Notification{Code: wlan.NotificationScanFail}
	third := wlan.Notification{Code: wlan.NotificationScanListRefresh}

	bus.Publish(first)
	bus.Publish(second)
	bus.Publish(third) // channel full at capacity 2, drops `first`

	require.Equal(t, second, <-sub)
	require.Equal(t, third, <-sub)
}

func TestBus_DefaultCapacityOnInvalidInput(t *testing.T) {
	bus := NewBus(0)
	require.Equal(t, DefaultCapacity, bus.capacity)
}
