package iface

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kerdl/wifu-go/internal/osbinding/mock"
	"github.com/kerdl/wifu-go/internal/wlan"
)

func TestList_Update(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New(), Description: "card-a"}
	binding.SetInterfaces([]wlan.Adapter{a})

	list := NewList(binding, func() []string { return nil }, zerolog.Nop())
	require.NoError(t, list.Update(context.Background()))
	require.Equal(t, []wlan.Adapter{a}, list.Snapshot())

	got, ok := list.GetByGUID(a.GUID)
	require.True(t, ok)
	require.Equal(t, a, got)
}

func TestList_SortedPriority_PutsPriorityFirst(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New(), Description: "a"}
	b := wlan.Adapter{GUID: uuid.New(), Description: "b"}
	c := wlan.Adapter{GUID: uuid.New(), Description: "c"}
	binding.SetInterfaces([]wlan.Adapter{a, b, c})

	list := NewList(binding, func() []string { return []string{c.GUID.String(), a.GUID.String()} }, zerolog.Nop())
	require.NoError(t, list.Update(context.Background()))

	sorted := list.SortedPriority()
	require.Equal(t, []wlan.Adapter{c, a, b}, sorted)
}

func TestList_SortedPriority_EmptyPriorityKeepsEnumerationOrder(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New(), Description: "a"}
	b := wlan.Adapter{GUID: uuid.New(), Description: "b"}
	binding.SetInterfaces([]wlan.Adapter{a, b})

	list := NewList(binding, func() []string { return nil }, zerolog.Nop())
	require.NoError(t, list.Update(context.Background()))

	require.Equal(t, []wlan.Adapter{a, b}, list.SortedPriority())
}

func TestList_DisconnectAllExcept(t *testing.T) {
	binding := mock.New()
	defer binding.Close()

	a := wlan.Adapter{GUID: uuid.New()}
	b := wlan.Adapter{GUID: uuid.New()}
	binding.SetInterfaces([]wlan.Adapter{a, b})

	list := NewList(binding, func() []string { return nil }, zerolog.Nop())
	require.NoError(t, list.Update(context.Background()))

	list.DisconnectAllExcept(context.Background(), a.GUID)
	require.Len(t, binding.ConnectCalls, 0)
}
