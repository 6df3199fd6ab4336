// Package pinger implements the ICMP liveness probe (§4.2): resolve the
// configured domains to an IP set once, then repeatedly ping it, signalling
// failure after a run of consecutive errors.
package pinger

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/go-ping/ping"
	"github.com/rs/zerolog"

	"github.com/kerdl/wifu-go/internal/cfg"
)

// Prober sends a single ICMP echo and reports whether a reply arrived
// within timeout. Grounded on the teacher's Pinger interface
// (pkg/modules/discovery/icmp_ping.go), narrowed to the single-echo
// operation this supervisor actually needs.
type Prober interface {
	PingOnce(ctx context.Context, ip net.IP, timeout time.Duration) error
}

// goPingProber backs Prober with github.com/go-ping/ping.
type goPingProber struct{}

func (goPingProber) PingOnce(ctx context.Context, ip net.IP, timeout time.Duration) error {
	p, err := ping.NewPinger(ip.String())
	if err != nil {
		return err
	}
	p.SetPrivileged(true)
	p.Count = 1
	p.Timeout = timeout

	opCtx, cancel := context.WithTimeout(ctx, timeout+500*time.Millisecond)
	defer cancel()

	go func() {
		<-opCtx.Done()
		p.Stop()
	}()

	if err := p.Run(); err != nil {
		return err
	}
	if opCtx.Err() != nil {
		return opCtx.Err()
	}

	stats := p.Statistics()
	if stats.PacketsRecv < 1 {
		return errNoReply
	}
	return nil
}

var errNoReply = &noReplyError{}

type noReplyError struct{}

func (*noReplyError) Error() string { return "pinger: no reply" }

// Resolver resolves a hostname to a set of IPs. *net.Resolver satisfies this
// directly; tests can substitute a fake.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Pinger holds the resolved IP set and drives the ping cycle described in
// §4.2. It is not safe for concurrent use from more than one loop.
type Pinger struct {
	mu     sync.RWMutex
	config cfg.Ping
	ips    []net.IP

	prober   Prober
	resolver Resolver
	log      zerolog.Logger
}

// New constructs a Pinger from config, resolving its initial IP set.
func New(ctx context.Context, config cfg.Ping, log zerolog.Logger) *Pinger {
	return NewWithDeps(ctx, config, goPingProber{}, net.DefaultResolver, log)
}

// NewWithDeps is New with injectable Prober/Resolver, used by tests.
func NewWithDeps(ctx context.Context, config cfg.Ping, prober Prober, resolver Resolver, log zerolog.Logger) *Pinger {
	p := &Pinger{
		config:   config,
		prober:   prober,
		resolver: resolver,
		log:      log.With().Str("component", "pinger").Logger(),
	}
	p.ips = p.gatherIPs(ctx)
	return p
}

// gatherIPs resolves each configured domain, skipping ones that fail or
// resolve empty, and collects IPs per the configured mode.
func (p *Pinger) gatherIPs(ctx context.Context) []net.IP {
	var ips []net.IP

	for _, domain := range p.config.Domains.List {
		addrs, err := p.resolver.LookupIPAddr(ctx, domain)
		if err != nil || len(addrs) == 0 {
			continue
		}

		switch p.config.Domains.Mode {
		case cfg.FirstIPFromEach:
			ips = append(ips, addrs[0].IP)
		case cfg.AllIPsFromEach:
			for _, a := range addrs {
				ips = append(ips, a.IP)
			}
		}
	}

	return ips
}

// HasNoIPs reports whether the current IP set is empty.
func (p *Pinger) HasNoIPs() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.ips) == 0
}

// UpdateIPs re-resolves the configured domains.
func (p *Pinger) UpdateIPs(ctx context.Context) {
	ips := p.gatherIPs(ctx)
	p.mu.Lock()
	p.ips = ips
	p.mu.Unlock()
}

// Start cycles through the IP set, pinging each in turn. It sleeps
// config.Interval() after every successful ping; on failure it switches to
// the next IP immediately (no sleep — matches original_source's pinger.rs,
// where the error path breaks the inner loop without an intervening sleep).
// The error counter is global across IPs, reset on any success; Start
// returns as soon as it reaches config.MaxErrors consecutive failures, or
// when ctx is done.
func (p *Pinger) Start(ctx context.Context) {
	errs := uint32(0)
	idx := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		p.mu.RLock()
		ips := p.ips
		p.mu.RUnlock()
		if len(ips) == 0 {
			return
		}
		ip := ips[idx%len(ips)]
		idx++

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			err := p.prober.PingOnce(ctx, ip, p.config.Timeout())
			if err == nil {
				errs = 0
				p.log.Debug().Str("ip", ip.String()).Msg("+ ping ok")
				select {
				case <-ctx.Done():
					return
				case <-time.After(p.config.Interval()):
				}
				continue
			}

			errs++
			p.log.Debug().Err(err).Str("ip", ip.String()).Uint32("errors", errs).Msg("x ping failed")
			break
		}

		if errs >= p.config.MaxErrors {
			p.log.Info().Msg("x ping monitor exhausted max errors, triggering wifi switch")
			return
		}
	}
}
