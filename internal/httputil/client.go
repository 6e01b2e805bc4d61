// Package httputil builds the HTTP clients used to talk to the Namecheap API
// and the client-IP echo service.
package httputil

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Default HTTP client configuration values.
const (
	// DefaultTimeout is the default total request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is used when no custom user agent is specified.
	DefaultUserAgent = "namecheap-go/0.1"
)

// ClientConfig contains configuration for creating an HTTP client.
type ClientConfig struct {
	// Timeout is the total request timeout. Defaults to 30 seconds.
	Timeout time.Duration

	// DialTimeout and TLSHandshakeTimeout bound connection setup.
	DialTimeout         time.Duration
	TLSHandshakeTimeout time.Duration

	// ResponseHeaderTimeout bounds the wait for response headers after the
	// request body has been written.
	ResponseHeaderTimeout time.Duration

	// UserAgent is set on requests that do not already carry one.
	UserAgent string

	// Logger enables debug logging of each request. Nil disables it.
	Logger *slog.Logger
}

// userAgentTransport wraps an http.RoundTripper to add a User-Agent header
// and optionally log requests at debug level.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
	logger    *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	if t.logger != nil {
		attrs := []any{
			slog.String("method", req.Method),
			slog.String("host", req.URL.Host),
			slog.Duration("elapsed", time.Since(start)),
		}
		if resp != nil {
			attrs = append(attrs, slog.Int("status", resp.StatusCode))
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		t.logger.Debug("HTTP round trip", attrs...)
	}

	return resp, err
}

// NewTransport returns an http.Transport tuned for a low-volume API client.
func NewTransport(cfg *ClientConfig) *http.Transport {
	dialTimeout := 5 * time.Second
	tlsTimeout := 10 * time.Second
	headerTimeout := 30 * time.Second
	if cfg != nil {
		if cfg.DialTimeout > 0 {
			dialTimeout = cfg.DialTimeout
		}
		if cfg.TLSHandshakeTimeout > 0 {
			tlsTimeout = cfg.TLSHandshakeTimeout
		}
		if cfg.ResponseHeaderTimeout > 0 {
			headerTimeout = cfg.ResponseHeaderTimeout
		}
	}

	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   tlsTimeout,
		ResponseHeaderTimeout: headerTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// NewClient creates an HTTP client with the specified configuration.
// If cfg is nil, defaults are used.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			base:      NewTransport(cfg),
			userAgent: userAgent,
			logger:    cfg.Logger,
		},
	}
}
