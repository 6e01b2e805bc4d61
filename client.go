//go:generate mockgen -destination mock/mock_doer.go -package mock_namecheap github.com/datum-labs/namecheap Doer

// Package namecheap is a client for the Namecheap XML API.
package namecheap

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/datum-labs/namecheap/internal/httputil"
)

// API endpoints.
const (
	ProductionEndpoint = "https://api.namecheap.com/xml.response"
	SandboxEndpoint    = "https://api.sandbox.namecheap.com/xml.response"

	// DefaultClientIPLookupURL echoes the caller's public IP as plain text.
	DefaultClientIPLookupURL = "https://icanhazip.com"
)

// Doer is the minimal http.Client interface we depend on (handy for tests/mocks).
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Namecheap API client. It is safe for concurrent use.
type Client struct {
	hc          Doer
	ua          string
	baseTimeout time.Duration
	headerExtra http.Header
	logger      *slog.Logger

	endpoint    string
	ipLookupURL string

	// global parameters
	apiUser  string
	apiKey   string
	userName string

	mu       sync.Mutex
	clientIP string
}

// New returns a Client for the given API user and key. The user name
// defaults to apiUser and the client IP is discovered on first use unless
// set with WithClientIP.
func New(apiUser, apiKey string, opts ...Option) *Client {
	c := &Client{
		ua:          httputil.DefaultUserAgent,
		baseTimeout: 30 * time.Second,
		headerExtra: make(http.Header),
		logger:      slog.Default(),

		endpoint:    ProductionEndpoint,
		ipLookupURL: DefaultClientIPLookupURL,

		apiUser:  apiUser,
		apiKey:   apiKey,
		userName: apiUser,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		c.hc = httputil.NewClient(&httputil.ClientConfig{
			Timeout:   c.baseTimeout,
			UserAgent: c.ua,
			Logger:    c.logger,
		})
	}
	return c
}

// Endpoint returns the API URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// UserName returns the account the client acts on behalf of.
func (c *Client) UserName() string { return c.userName }
