package fetch

import (
	"context"
	"net"
	"time"
)

// Connectivity reports whether network sources are worth trying.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// Static is a fixed connectivity answer.
type Static bool

func (s Static) Online(context.Context) bool { return bool(s) }

// Probe dials Address over TCP; success means online.
type Probe struct {
	Address string
	Timeout time.Duration
}

func (p Probe) Online(ctx context.Context) bool {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ConnectivityFor picks the connectivity check for a configuration:
// offline forces Static(false), a probe address yields a Probe, otherwise Static(true).
func ConnectivityFor(offline bool, probe string) Connectivity {
	switch {
	case offline:
		return Static(false)
	case probe != "":
		return Probe{Address: probe}
	default:
		return Static(true)
	}
}
