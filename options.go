package namecheap

import (
	"log/slog"
	"time"
)

type Option func(*Client)

func WithHTTPDoer(d Doer) Option            { return func(c *Client) { c.hc = d } }
func WithUserAgent(ua string) Option        { return func(c *Client) { c.ua = ua } }
func WithTimeout(d time.Duration) Option    { return func(c *Client) { c.baseTimeout = d } }
func WithHeader(k, v string) Option         { return func(c *Client) { c.headerExtra.Add(k, v) } }
func WithEndpoint(u string) Option          { return func(c *Client) { c.endpoint = u } }
func WithClientIPLookupURL(u string) Option { return func(c *Client) { c.ipLookupURL = u } }
func WithClientIP(ip string) Option         { return func(c *Client) { c.clientIP = ip } }
func WithSandbox() Option                   { return func(c *Client) { c.endpoint = SandboxEndpoint } }

// WithUserName sets the account to act on; an empty name keeps the API user.
func WithUserName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.userName = name
		}
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
