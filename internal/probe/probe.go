// Package probe checks that the host can actually reach the network after
// joining one. networksetup reports a join as successful before DHCP and
// DNS are usable, so callers poll here before declaring the host online.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
	probing "github.com/prometheus-community/pro-bing"

	"github.com/strct-org/strct-netsetup/internal/errs"
	"github.com/strct-org/strct-netsetup/internal/logging"
)

const (
	OpResolve    errs.Op = "probe.Resolve"
	OpPing       errs.Op = "probe.Ping"
	OpWaitOnline errs.Op = "probe.WaitOnline"
)

const defaultTimeout = 2 * time.Second

type Prober struct {
	Resolver   string // host:port of the DNS server to ask
	Host       string // name to resolve
	PingTarget string
	Timeout    time.Duration
	Log        *logging.Logger
}

type Stats struct {
	Latency time.Duration
	Loss    float64 // %
	IsDown  bool
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout <= 0 {
		return defaultTimeout
	}
	return p.Timeout
}

// Resolve asks Resolver for Host's A record and returns the round trip.
func (p *Prober) Resolve(ctx context.Context) (time.Duration, error) {
	c := &dns.Client{Timeout: p.timeout()}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(p.Host), dns.TypeA)
	m.RecursionDesired = true

	in, rtt, err := c.ExchangeContext(ctx, m, p.Resolver)
	if err != nil {
		return 0, errs.E(OpResolve, errs.KindNetwork, err)
	}
	if in.Rcode != dns.RcodeSuccess {
		return 0, errs.E(OpResolve, errs.KindNetwork, fmt.Sprintf("%s answered %s for %s", p.Resolver, dns.RcodeToString[in.Rcode], p.Host))
	}
	if len(in.Answer) == 0 {
		return 0, errs.E(OpResolve, errs.KindNetwork, fmt.Sprintf("no answer for %s", p.Host))
	}

	p.Log.Debugf("%s resolved via %s in %s", p.Host, p.Resolver, rtt)
	return rtt, nil
}

// Ping sends three unprivileged echo requests to PingTarget.
func (p *Prober) Ping(ctx context.Context) (*Stats, error) {
	pinger, err := probing.NewPinger(p.PingTarget)
	if err != nil {
		return nil, errs.E(OpPing, errs.KindNetwork, err)
	}

	pinger.SetPrivileged(false)
	pinger.Count = 3
	pinger.Timeout = p.timeout()

	if err := pinger.RunWithContext(ctx); err != nil {
		return nil, errs.E(OpPing, errs.KindNetwork, err)
	}

	st := pinger.Statistics()
	stats := &Stats{
		Latency: st.AvgRtt,
		Loss:    st.PacketLoss,
		IsDown:  st.PacketLoss >= 100.0,
	}
	p.Log.Infof("ping %s: %s avg, %.0f%% loss", p.PingTarget, stats.Latency, stats.Loss)
	return stats, nil
}

// WaitOnline retries Resolve until it succeeds or attempts run out.
func (p *Prober) WaitOnline(ctx context.Context, attempts int, interval time.Duration) error {
	var last error
	for i := 1; i <= attempts; i++ {
		_, err := p.Resolve(ctx)
		if err == nil {
			p.Log.Infof("Online after %d attempt(s)", i)
			return nil
		}
		last = err
		p.Log.Debugf("attempt %d/%d: %v", i, attempts, err)

		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return errs.E(OpWaitOnline, errs.KindNetwork, ctx.Err())
		case <-time.After(interval):
		}
	}
	return errs.E(OpWaitOnline, errs.KindNetwork, last, fmt.Sprintf("still offline after %d attempts", attempts))
}
