package network

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	xproxy "golang.org/x/net/proxy"
)

// ProxyProvider supplies the outbound proxy URL, empty when direct.
type ProxyProvider interface {
	GetProxyURL(ctx context.Context) string
}

// IPStackProvider supplies the preferred IP stack: "default", "ipv4" or "ipv6".
type IPStackProvider interface {
	GetIPStack(ctx context.Context) string
}

// ClientFactory creates HTTP clients honoring the configured proxy and IP stack.
type ClientFactory struct {
	proxyProvider   ProxyProvider
	ipStackProvider IPStackProvider
	testHTTPClient  *http.Client // for testing only
}

// NewClientFactory creates a new client factory.
func NewClientFactory(proxyProvider ProxyProvider, ipStackProvider IPStackProvider) *ClientFactory {
	return &ClientFactory{proxyProvider: proxyProvider, ipStackProvider: ipStackProvider}
}

// NewClientFactoryForTest creates a factory that always returns the given client.
// This is only for use in tests.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{
		proxyProvider:   &noopProvider{},
		ipStackProvider: &noopProvider{},
		testHTTPClient:  client,
	}
}

type noopProvider struct{}

func (p *noopProvider) GetProxyURL(ctx context.Context) string {
	return ""
}

func (p *noopProvider) GetIPStack(ctx context.Context) string {
	return "default"
}

// GetProxyURL returns the currently configured proxy URL.
func (f *ClientFactory) GetProxyURL(ctx context.Context) string {
	return f.proxyProvider.GetProxyURL(ctx)
}

// NewHTTPClient creates an http.Client with the given timeout.
func (f *ClientFactory) NewHTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: f.NewHTTPTransport(ctx),
	}
}

// NewHTTPTransport creates an http.Transport with proxy and IP stack applied.
// SOCKS proxies are handled through the dialer, so Transport.Proxy stays nil for them.
func (f *ClientFactory) NewHTTPTransport(ctx context.Context) *http.Transport {
	ipStack := f.ipStackProvider.GetIPStack(ctx)
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialWithIPStack(ctx, network, addr, ipStack)
		},
	}

	proxyURL := f.proxyProvider.GetProxyURL(ctx)
	if proxyURL == "" {
		return transport
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return transport
	}

	switch parsed.Scheme {
	case "socks5", "socks5h":
		var auth *xproxy.Auth
		if parsed.User != nil {
			password, _ := parsed.User.Password()
			auth = &xproxy.Auth{User: parsed.User.Username(), Password: password}
		}
		dialer, err := xproxy.SOCKS5("tcp", parsed.Host, auth, &ipStackDialer{ipStack: ipStack})
		if err != nil {
			return transport
		}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if contextDialer, ok := dialer.(xproxy.ContextDialer); ok {
				return contextDialer.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	default:
		transport.Proxy = http.ProxyURL(parsed)
	}

	return transport
}

// TestProxy checks connectivity to targetURL through the configured proxy.
func (f *ClientFactory) TestProxy(ctx context.Context, targetURL string) error {
	return f.TestProxyWithConfig(ctx, f.proxyProvider.GetProxyURL(ctx), targetURL)
}

// TestProxyWithConfig checks connectivity to targetURL through an explicit proxy URL,
// which may be empty for a direct connection.
func (f *ClientFactory) TestProxyWithConfig(ctx context.Context, proxyURL, targetURL string) error {
	factory := &ClientFactory{
		proxyProvider:   &staticProxyProvider{proxyURL: proxyURL},
		ipStackProvider: f.ipStackProvider,
		testHTTPClient:  f.testHTTPClient,
	}

	client := factory.NewHTTPClient(ctx, 10*time.Second)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return fmt.Errorf("build test request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("proxy test request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("proxy test returned status %d", resp.StatusCode)
	}
	return nil
}

// StaticProvider serves a fixed proxy URL and IP stack, for deployments whose
// outbound settings come from the environment rather than a settings store.
type StaticProvider struct {
	ProxyURL string
	IPStack  string
}

func (p *StaticProvider) GetProxyURL(ctx context.Context) string {
	return p.ProxyURL
}

func (p *StaticProvider) GetIPStack(ctx context.Context) string {
	return p.IPStack
}

type staticProxyProvider struct {
	proxyURL string
}

func (p *staticProxyProvider) GetProxyURL(ctx context.Context) string {
	return p.proxyURL
}
