package network

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenOnce opens a local IPv4 listener that accepts a single connection.
func listenOnce(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	tcpLn := ln.(*net.TCPListener)
	_ = tcpLn.SetDeadline(time.Now().Add(2 * time.Second))
	go func() {
		if conn, err := tcpLn.Accept(); err == nil {
			conn.Close()
		}
	}()
	return tcpLn.Addr().String()
}

func TestDialWithIPStack(t *testing.T) {
	// The listener is IPv4-only, so every preference must still reach it:
	// "ipv4" directly, "ipv6" through its fallback leg, "default" via the
	// plain dialer.
	for _, stack := range []string{"default", "ipv4", "ipv6"} {
		t.Run(stack, func(t *testing.T) {
			addr := listenOnce(t)
			conn, err := DialWithIPStackForTest(context.Background(), "tcp", addr, stack)
			require.NoError(t, err)
			assert.NoError(t, conn.Close())
		})
	}
}

func TestDialWithPreference_FallbackLeg(t *testing.T) {
	addr := listenOnce(t)
	// Primary tcp6 cannot reach an IPv4 listener; the fallback must.
	conn, err := DialWithPreferenceForTest(context.Background(), addr, "tcp6", "tcp4")
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
}

func TestIPStackDialer_ProxyInterface(t *testing.T) {
	// The SOCKS dialer sees ipStackDialer through proxy.Dialer's
	// context-free Dial.
	addr := listenOnce(t)
	conn, err := DialWithIPStackDialerForTest("tcp", addr, "ipv4")
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
}

func TestNoopProviderDefaults(t *testing.T) {
	p := NewNoopProviderForTest()
	assert.Equal(t, "", p.GetProxyURL(context.Background()))
	assert.Equal(t, "default", p.GetIPStack(context.Background()))
}
