// Package http is the JSON-over-HTTP client shared by the product databases.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/proxy"

	"github.com/sadopc/consulteja/internal/provider"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// ProxyConfig holds proxy settings.
type ProxyConfig struct {
	URL     string // http://, https://, or socks5:// proxy URL
	NoProxy string // comma-separated list of hosts to bypass proxy
}

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Client performs GET requests and decodes JSON bodies.
type Client struct {
	httpClient *http.Client
	proxyConf  *ProxyConfig
	tlsConf    *TLSConfig
	userAgent  string
}

// New creates a new client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		userAgent: "consulteja/1.0",
	}
}

// SetTimeout sets the default client timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetUserAgent sets the User-Agent sent when a request does not set its own.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// SetProxy configures proxy settings for the client.
func (c *Client) SetProxy(proxyURL, noProxy string) error {
	prev := c.proxyConf
	c.proxyConf = nil
	if proxyURL != "" {
		c.proxyConf = &ProxyConfig{URL: proxyURL, NoProxy: noProxy}
	}
	if err := c.rebuildTransport(); err != nil {
		c.proxyConf = prev
		return err
	}
	return nil
}

// SetTLS configures certificate verification for the client.
func (c *Client) SetTLS(cfg TLSConfig) error {
	prev := c.tlsConf
	c.tlsConf = nil
	if !cfg.IsEmpty() {
		c.tlsConf = &cfg
	}
	if err := c.rebuildTransport(); err != nil {
		c.tlsConf = prev
		return err
	}
	return nil
}

func (c *Client) rebuildTransport() error {
	if c.proxyConf == nil && c.tlsConf == nil {
		c.httpClient.Transport = nil
		return nil
	}
	transport, err := c.buildTransport()
	if err != nil {
		return err
	}
	c.httpClient.Transport = transport
	return nil
}

// Instrument wraps the transport with OpenTelemetry client spans.
func (c *Client) Instrument() {
	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = otelhttp.NewTransport(base)
}

// GetJSON fetches rawURL and decodes the body into out. A 404 is reported as
// provider.ErrNotFound.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodySize)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, body)
		return provider.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, body)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: redact(req.URL)}
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return provider.ErrNotFound
		}
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// redact drops query values so API keys never reach error messages.
func redact(u *url.URL) string {
	c := *u
	if c.RawQuery != "" {
		q := c.Query()
		for k := range q {
			q.Set(k, "x")
		}
		c.RawQuery = q.Encode()
	}
	return c.String()
}

// buildTransport creates an http.Transport with the proxy and TLS settings.
func (c *Client) buildTransport() (http.RoundTripper, error) {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if c.tlsConf != nil {
		tlsCfg, err := c.tlsConf.build()
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsCfg
	}
	if c.proxyConf == nil {
		return transport, nil
	}

	parsed, err := url.Parse(c.proxyConf.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse proxy URL")
	}

	switch parsed.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if parsed.User != nil {
			pass, _ := parsed.User.Password()
			auth = &proxy.Auth{
				User:     parsed.User.Username(),
				Password: pass,
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, errors.Wrap(err, "create SOCKS5 dialer")
		}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	case "http", "https":
		noProxyHosts := parseNoProxy(c.proxyConf.NoProxy)
		transport.Proxy = func(r *http.Request) (*url.URL, error) {
			if shouldBypassProxy(r.URL.Hostname(), noProxyHosts) {
				return nil, nil
			}
			return parsed, nil
		}
	default:
		return nil, errors.Errorf("unsupported proxy scheme: %s", parsed.Scheme)
	}

	return transport, nil
}

// parseNoProxy splits a comma-separated no-proxy string into trimmed host entries.
func parseNoProxy(noProxy string) []string {
	parts := strings.Split(noProxy, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			hosts = append(hosts, strings.ToLower(p))
		}
	}
	return hosts
}

// shouldBypassProxy checks whether a host should bypass the proxy.
func shouldBypassProxy(host string, noProxyHosts []string) bool {
	host = strings.ToLower(host)
	for _, h := range noProxyHosts {
		if h == host {
			return true
		}
		// Support wildcard suffix matching (e.g., .example.com)
		if strings.HasPrefix(h, ".") && strings.HasSuffix(host, h) {
			return true
		}
	}
	return false
}
