package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/purifier-protocol/purifier-go/pkg/version"
)

const (
	// DefaultTimeout bounds a whole round trip.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxResponseSize is the largest body accepted (64KB).
	DefaultMaxResponseSize = 64 * 1024
)

// ClientConfig configures an HTTPClient.
type ClientConfig struct {
	// Timeout bounds each round trip (default: 10s). A context deadline
	// that expires sooner wins.
	Timeout time.Duration

	// UseProxy honours HTTP_PROXY and friends. Off by default.
	UseProxy bool

	// MaxResponseSize is the maximum response body size (default: 64KB).
	MaxResponseSize int64

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger receives debug logs for each round trip. Nil disables.
	Logger *slog.Logger

	// RoundTripper replaces the default HTTP transport. Used by tests.
	RoundTripper http.RoundTripper
}

// HTTPClient is a Transport over net/http.
type HTTPClient struct {
	config ClientConfig
	client *http.Client
	logger *slog.Logger
}

// NewHTTPClient creates a new HTTP transport.
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxResponseSize <= 0 {
		config.MaxResponseSize = DefaultMaxResponseSize
	}
	if config.UserAgent == "" {
		config.UserAgent = version.UserAgent()
	}

	rt := config.RoundTripper
	if rt == nil {
		t := &http.Transport{
			DialContext:       (&net.Dialer{Timeout: config.Timeout}).DialContext,
			DisableKeepAlives: true,
		}
		if config.UseProxy {
			t.Proxy = http.ProxyFromEnvironment
		}
		rt = t
	}

	return &HTTPClient{
		config: config,
		client: &http.Client{Transport: rt, Timeout: config.Timeout},
		logger: config.Logger,
	}
}

// Get issues a GET request.
func (c *HTTPClient) Get(ctx context.Context, addr, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, addr, path, nil)
}

// Put issues a PUT request.
func (c *HTTPClient) Put(ctx context.Context, addr, path string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPut, addr, path, body)
}

func (c *HTTPClient) do(ctx context.Context, method, addr, path string, body []byte) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL(addr)+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "text/plain")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.debugLog("request failed", "method", method, "addr", addr, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.debugLog("round trip",
		"method", method,
		"addr", addr,
		"path", path,
		"status", resp.StatusCode,
		"request_bytes", len(body),
		"response_bytes", len(data),
		"duration", time.Since(start))

	if int64(len(data)) > c.config.MaxResponseSize {
		return nil, fmt.Errorf("%s %s: %w: more than %d bytes", method, path, ErrResponseTooLarge, c.config.MaxResponseSize)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	return data, nil
}

// debugLog logs a debug message if logging is enabled.
func (c *HTTPClient) debugLog(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// baseURL builds http://addr, bracketing bare IPv6 literals.
func baseURL(addr string) string {
	if ip := net.ParseIP(addr); ip != nil && strings.Contains(addr, ":") {
		return "http://[" + addr + "]"
	}
	return "http://" + addr
}
