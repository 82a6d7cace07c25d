package api

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"
	"golang.org/x/net/http/httpproxy"

	"github.com/diogo/aicms/internal/models"
)

// DefaultTimeout bounds every request made by the client
const DefaultTimeout = 60 * time.Second

// Client talks to the chat and content endpoints of an AI CMS origin
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	timeout    time.Duration
	proxy      string
	logger     *zap.Logger
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithBaseURL sets the origin serving /api/chat/ and /api/content/
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient injects a custom HTTP client (used by tests)
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request logging
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProxy routes requests through proxyURL instead of the environment proxy
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxy = proxyURL
	}
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		baseURL: models.DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	u, err := url.Parse(client.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", client.baseURL)
	}

	if client.httpClient != nil {
		return client, nil
	}

	if client.proxy == "" {
		client.proxy = ProxyFromEnvironment(u)
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
		tls_client.WithClientProfile(profiles.Chrome_120),
	}
	if client.proxy != "" {
		options = append(options, tls_client.WithProxyUrl(client.proxy))
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	client.httpClient = httpClient

	return client, nil
}

// ProxyFromEnvironment returns the proxy URL that HTTPS_PROXY, HTTP_PROXY and
// NO_PROXY select for target, or "" for a direct connection
func ProxyFromEnvironment(target *url.URL) string {
	proxyURL, err := httpproxy.FromEnvironment().ProxyFunc()(target)
	if err != nil || proxyURL == nil {
		return ""
	}
	return proxyURL.String()
}

// Close shuts down the client. Calls made afterwards fail with ErrClientClosed.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// BaseURL returns the configured origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Proxy returns the proxy URL in use, or ""
func (c *Client) Proxy() string {
	return c.proxy
}
