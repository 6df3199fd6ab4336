// Package supervisor wires every operator, loop and autopilot into a single
// running instance (§4.13 bootstrap). It holds no behavior of its own
// beyond construction and lifecycle — each concern lives in its own
// package, referenced here by pointer so there is exactly one of each
// (§9 Design Notes: avoid global process-wide state, thread references
// through one struct instead).
package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/acm"
	"github.com/kerdl/wifu-go/internal/appstate"
	"github.com/kerdl/wifu-go/internal/autopilot"
	"github.com/kerdl/wifu-go/internal/cfg"
	"github.com/kerdl/wifu-go/internal/iface"
	"github.com/kerdl/wifu-go/internal/loops"
	"github.com/kerdl/wifu-go/internal/netsel"
	"github.com/kerdl/wifu-go/internal/osbinding"
	"github.com/kerdl/wifu-go/internal/pinger"
)

// Supervisor holds every operator, loop and autopilot the running system
// needs, built once by New and started by Run.
type Supervisor struct {
	Config *cfg.Manager
	State  *appstate.Operator

	InterfaceList   *iface.List
	ChosenInterface *iface.Chosen

	NetworkList   *netsel.List
	ChosenNetwork *netsel.Chosen

	Demux *acm.Demux

	PingerLoop *loops.PingerLoop
	WaiterLoop *loops.WaiterLoop

	InterfaceAutopilot *autopilot.InterfaceAutopilot
	NetworkAutopilot   *autopilot.NetworkAutopilot

	log zerolog.Logger
}

// New constructs every operator and wires their cross-references, but
// starts nothing. binding is the OS WLAN contract (the real binding or
// osbinding/mock for tests).
func New(ctx context.Context, config *cfg.Manager, binding osbinding.Binding, log zerolog.Logger) *Supervisor {
	state := appstate.New(log)

	ifaceList := iface.NewList(binding, func() []string { return config.Get().Interfaces.Priority }, log)
	chosenIface := iface.NewChosen(ifaceList, binding, log)

	netList := netsel.NewList(chosenIface, func() cfg.WiFi { return config.Get().WiFi }, log)
	chosenNet := netsel.NewChosen(netList, chosenIface, log)

	demux := acm.NewDemux(binding, ifaceList, log)

	p := pinger.New(ctx, config.Get().Ping, log)
	pingerLoop := loops.NewPingerLoop(p, chosenIface, chosenNet, log)
	waiterLoop := loops.NewWaiterLoop(chosenIface, netList, chosenNet, func() time.Duration { return config.Get().WiFi.Scan.Interval() }, log)

	netControl := autopilot.NewNetworkControl(chosenIface, pingerLoop, waiterLoop, log)

	ifaceAutopilot := autopilot.NewInterfaceAutopilot(demux.InterfaceBus, chosenIface, ifaceList, netList, state, netControl, log)
	netAutopilot := autopilot.NewNetworkAutopilot(demux.NetworkBus, chosenIface, netList, chosenNet, state, pingerLoop, waiterLoop, log)

	return &Supervisor{
		Config:             config,
		State:              state,
		InterfaceList:      ifaceList,
		ChosenInterface:    chosenIface,
		NetworkList:        netList,
		ChosenNetwork:      chosenNet,
		Demux:              demux,
		PingerLoop:         pingerLoop,
		WaiterLoop:         waiterLoop,
		InterfaceAutopilot: ifaceAutopilot,
		NetworkAutopilot:   netAutopilot,
		log:                log.With().Str("component", "supervisor").Logger(),
	}
}

// Run brings the supervisor to its initial state and blocks running the
// demux and both autopilots until ctx is cancelled (§4.13): enumerate
// adapters, choose one if any are present, start the demux and both
// autopilots, then apply the bootstrap decision — Dead(NoInterface),
// Dead(NoNetwork)+Waiter, or fall through and let the autopilots drive to
// Alive from the first ACM notification onward.
func (s *Supervisor) Run(ctx context.Context) {
	s.InterfaceList.UpdateWarned(ctx)
	s.ChosenInterface.Choose()

	done := make(chan struct{}, 3)
	go func() { defer func() { done <- struct{}{} }(); s.Demux.Run(ctx) }()
	go func() { defer func() { done <- struct{}{} }(); s.InterfaceAutopilot.Run(ctx) }()
	go func() { defer func() { done <- struct{}{} }(); s.NetworkAutopilot.Run(ctx) }()

	if !s.ChosenInterface.IsChosen() {
		_ = s.State.Dead(appstate.NoInterface)
	} else {
		if _, err := s.ChosenInterface.Scan(ctx); err != nil {
			s.log.Warn().Err(err).Msg("x initial scan trigger failed")
		}
		if err := s.NetworkList.Update(ctx); err != nil {
			s.log.Warn().Err(err).Msg("x initial network list refresh failed")
		}
		if !s.NetworkList.CfgNetworksAvailable() {
			_ = s.State.Dead(appstate.NoNetwork)
			s.WaiterLoop.Start(ctx)
		}
		// Else fall through: autopilots drive the rest from here.
	}

	<-ctx.Done()
	<-done
	<-done
	<-done

	s.PingerLoop.Stop()
	s.WaiterLoop.Stop()
}
