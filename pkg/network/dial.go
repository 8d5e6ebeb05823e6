package network

import (
	"context"
	"net"
	"time"
)

// dialWithIPStack dials addr honoring the preferred IP stack. "ipv4" and "ipv6"
// first try the matching network and fall back to the other one.
func dialWithIPStack(ctx context.Context, network, addr, ipStack string) (net.Conn, error) {
	if network != "tcp" && network != "tcp4" && network != "tcp6" {
		dialer := &net.Dialer{Timeout: 30 * time.Second}
		return dialer.DialContext(ctx, network, addr)
	}

	switch ipStack {
	case "ipv4":
		return dialWithPreference(ctx, addr, "tcp4", "tcp6")
	case "ipv6":
		return dialWithPreference(ctx, addr, "tcp6", "tcp4")
	default:
		dialer := &net.Dialer{Timeout: 30 * time.Second}
		return dialer.DialContext(ctx, network, addr)
	}
}

// dialWithPreference tries the primary network and falls back to the other.
func dialWithPreference(ctx context.Context, addr, primary, fallback string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 15 * time.Second}
	conn, err := dialer.DialContext(ctx, primary, addr)
	if err == nil {
		return conn, nil
	}
	return dialer.DialContext(ctx, fallback, addr)
}

// ipStackDialer adapts dialWithIPStack to the proxy.Dialer interface used by
// the SOCKS5 dialer.
type ipStackDialer struct {
	ipStack string
}

func (d *ipStackDialer) Dial(network, addr string) (net.Conn, error) {
	return dialWithIPStack(context.Background(), network, addr, d.ipStack)
}
