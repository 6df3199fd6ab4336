package netsel

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/wlan"
)

func TestChosen_Choose_ConnectsAndSynthesizesProfile(t *testing.T) {
	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "home", Password: "secret"}}}
	binding, iffChosen, list := newTestEnv(t, wifi)
	defer binding.Close()
	require.NoError(t, list.Update(context.Background()))

	netChosen := NewChosen(list, iffChosen, zerolog.Nop())

	ssid, ok := netChosen.Choose(context.Background())
	require.True(t, ok)
	require.Equal(t, "home", ssid)
	require.True(t, netChosen.IsChosen())

	require.Len(t, binding.SetProfileCalls, 1)
	require.Equal(t, "home", binding.SetProfileCalls[0].Name)
	require.Equal(t, wlan.KeyPassPhrase, binding.SetProfileCalls[0].Security.Key.Kind)
	require.Equal(t, "secret", binding.SetProfileCalls[0].Security.Key.Content)

	require.Len(t, binding.ConnectCalls, 1)
	require.Equal(t, "home", binding.ConnectCalls[0].ProfileName)
}

func TestChosen_Choose_NoAccessibleWhitelistReturnsFalse(t *testing.T) {
	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "nowhere"}}}
	binding, iffChosen, list := newTestEnv(t, wifi)
	defer binding.Close()
	require.NoError(t, list.Update(context.Background()))

	netChosen := NewChosen(list, iffChosen, zerolog.Nop())

	_, ok := netChosen.Choose(context.Background())
	require.False(t, ok)
	require.False(t, netChosen.IsChosen())
}

func TestChosen_Choose_RetriesNextCandidateOnConnectFailure(t *testing.T) {
	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "home"}, {SSID: "other"}}}
	binding, iffChosen, list := newTestEnv(t, wifi)
	defer binding.Close()
	require.NoError(t, list.Update(context.Background()))

	binding.ConnectResult = false

	netChosen := NewChosen(list, iffChosen, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// Let the retry loop try both candidates at least once, then
		// break it out via cancellation (an always-failing whitelist
		// would otherwise retry forever).
		for binding.ConnectCallCount() < 3 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	_, ok := netChosen.Choose(ctx)
	require.False(t, ok)
}

func TestChosen_Unchoose(t *testing.T) {
	wifi := cfg.WiFi{Networks: []cfg.Network{{SSID: "home"}}}
	binding, iffChosen, list := newTestEnv(t, wifi)
	defer binding.Close()
	require.NoError(t, list.Update(context.Background()))

	netChosen := NewChosen(list, iffChosen, zerolog.Nop())
	require.ErrorIs(t, netChosen.Unchoose(), ErrNotChosenToUnchoose)

	_, ok := netChosen.Choose(context.Background())
	require.True(t, ok)

	require.NoError(t, netChosen.Unchoose())
	require.False(t, netChosen.IsChosen())
}
