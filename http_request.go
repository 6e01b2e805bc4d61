package namecheap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/datum-labs/namecheap/internal/metrics"
)

const maxResponseBytes = 4 << 20

// Request is the general purpose API call. It POSTs the global parameters
// (ApiUser, ApiKey, UserName, ClientIp) merged with params, params winning on
// collision, and returns the raw response. The caller closes the body.
//
//	resp, err := client.Request(ctx, url.Values{"Command": {"namecheap.domains.getList"}})
func (c *Client) Request(ctx context.Context, params url.Values) (*http.Response, error) {
	form, err := c.globalParams(ctx)
	if err != nil {
		return nil, err
	}
	for k, vs := range params {
		form[k] = append([]string(nil), vs...)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/xml, text/xml;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", c.ua)
	copyHeaders(req.Header, c.headerExtra)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "namecheap request")
	}
	return resp, nil
}

// globalParams returns a fresh copy of the parameters sent on every call.
func (c *Client) globalParams(ctx context.Context) (url.Values, error) {
	ip, err := c.ClientIP(ctx)
	if err != nil {
		return nil, err
	}
	return url.Values{
		"ApiUser":  {c.apiUser},
		"ApiKey":   {c.apiKey},
		"UserName": {c.userName},
		"ClientIp": {ip},
	}, nil
}

// call runs command and decodes its CommandResponse into out (which may be nil).
func (c *Client) call(ctx context.Context, command string, params url.Values, out any) error {
	start := time.Now()
	result := metrics.ResultOK
	defer func() {
		elapsed := time.Since(start)
		metrics.ObserveRequest(command, result, elapsed)
		c.logger.Debug("namecheap API call",
			slog.String("command", command),
			slog.String("result", result),
			slog.Duration("elapsed", elapsed),
		)
	}()

	reqCtx, cancel := context.WithTimeout(ctx, c.baseTimeout)
	defer cancel()

	if params == nil {
		params = url.Values{}
	}
	params.Set("Command", command)

	resp, err := c.Request(reqCtx, params)
	if err != nil {
		result = metrics.ResultTransportError
		return errors.WithMessage(err, command)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		result = metrics.ResultTransportError
		return errors.Wrapf(err, "%s: reading response", command)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result = metrics.ResultHTTPError
		return errors.WithMessage(&HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       excerpt(body, 512),
		}, command)
	}

	env, err := parseResponse(body)
	if err != nil {
		result = metrics.ResultDecodeError
		return errors.WithMessage(err, command)
	}
	for _, w := range env.Warnings {
		c.logger.Warn("namecheap API warning",
			slog.String("command", command),
			slog.Int("number", w.Number),
			slog.String("message", strings.TrimSpace(w.Message)),
		)
	}
	if err := env.err(); err != nil {
		result = metrics.ResultAPIError
		return errors.WithMessage(err, command)
	}
	if err := env.decodeCommand(out); err != nil {
		result = metrics.ResultDecodeError
		return errors.WithMessage(err, command)
	}
	return nil
}
