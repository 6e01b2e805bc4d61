package namecheap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"

	"github.com/pkg/errors"
)

// ClientIP returns the IP sent as the ClientIp global parameter. When none
// was configured it is discovered once from the lookup URL and remembered.
func (c *Client) ClientIP(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clientIP != "" {
		return c.clientIP, nil
	}
	ip, err := c.fetchClientIP(ctx)
	if err != nil {
		return "", err
	}
	c.logger.Debug("discovered client IP", slog.String("client_ip", ip))
	c.clientIP = ip
	return ip, nil
}

func (c *Client) fetchClientIP(ctx context.Context) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.baseTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.ipLookupURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "client IP lookup")
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "client IP lookup")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("client IP lookup failed: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", errors.Wrap(err, "client IP lookup")
	}
	return parseClientIP(string(body))
}

func parseClientIP(s string) (string, error) {
	s = strings.TrimSpace(s)
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return "", errors.Errorf("client IP lookup returned %q, not an IP address", s)
	}
	return addr.Unmap().String(), nil
}
