package namecheap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/datum-labs/namecheap/internal/metrics"
)

// ---------- Construction ----------

func TestNew_Defaults(t *testing.T) {
	c := New("alice", "key")
	if c.Endpoint() != ProductionEndpoint {
		t.Fatalf("endpoint: want %s, got %s", ProductionEndpoint, c.Endpoint())
	}
	if c.UserName() != "alice" {
		t.Fatalf("user name should default to API user, got %q", c.UserName())
	}
	if c.baseTimeout != 30*time.Second {
		t.Fatalf("timeout: want 30s, got %v", c.baseTimeout)
	}
	if c.hc == nil || c.logger == nil {
		t.Fatalf("http client and logger must be set")
	}
}

func TestOptions(t *testing.T) {
	c := New("alice", "key",
		WithSandbox(),
		WithUserName("bob"),
		WithTimeout(5*time.Second),
		WithUserAgent("ua/1"),
		WithClientIP("192.0.2.1"),
		WithLogger(nil),
	)
	if c.Endpoint() != SandboxEndpoint {
		t.Fatalf("sandbox endpoint not applied: %s", c.Endpoint())
	}
	if c.UserName() != "bob" {
		t.Fatalf("user name: got %q", c.UserName())
	}
	if c.baseTimeout != 5*time.Second || c.ua != "ua/1" {
		t.Fatalf("timeout/ua not applied: %v %q", c.baseTimeout, c.ua)
	}
	if c.logger == nil {
		t.Fatalf("nil logger must be ignored")
	}

	c = New("alice", "key", WithUserName(""))
	if c.UserName() != "alice" {
		t.Fatalf("empty user name must keep API user, got %q", c.UserName())
	}
}

// ---------- Request ----------

func TestRequest_SendsGlobalParams(t *testing.T) {
	api := newFakeAPI(t, commandOK(""))
	c := api.client(WithHeader("X-Trace", "abc"), WithUserAgent("test-agent"))

	resp, err := c.Request(context.Background(), url.Values{"Command": {"namecheap.domains.getList"}})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	_ = resp.Body.Close()

	form := api.lastForm(t)
	want := map[string]string{
		"ApiUser":  "apiuser",
		"ApiKey":   "s3cret",
		"UserName": "apiuser",
		"ClientIp": "203.0.113.7",
		"Command":  "namecheap.domains.getList",
	}
	for k, v := range want {
		if got := form.Get(k); got != v {
			t.Fatalf("%s: want %q, got %q", k, v, got)
		}
	}

	h := api.lastHeader()
	if ct := h.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("content type: %q", ct)
	}
	if h.Get("User-Agent") != "test-agent" {
		t.Fatalf("user agent: %q", h.Get("User-Agent"))
	}
	if h.Get("X-Trace") != "abc" {
		t.Fatalf("extra header missing")
	}
}

func TestRequest_ParamsOverrideGlobals(t *testing.T) {
	api := newFakeAPI(t, commandOK(""))
	c := api.client()

	resp, err := c.Request(context.Background(), url.Values{"UserName": {"reseller-customer"}})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	_ = resp.Body.Close()
	if got := api.lastForm(t).Get("UserName"); got != "reseller-customer" {
		t.Fatalf("override: got %q", got)
	}

	// the override must not leak into later requests
	resp, err = c.Request(context.Background(), nil)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	_ = resp.Body.Close()
	if got := api.lastForm(t).Get("UserName"); got != "apiuser" {
		t.Fatalf("globals mutated: got %q", got)
	}
}

// ---------- Client IP ----------

func TestClientIP_DiscoveredOnce(t *testing.T) {
	var hits int32
	ipSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = io.WriteString(w, "198.51.100.4\n")
	}))
	defer ipSrv.Close()

	api := newFakeAPI(t, commandOK(""))
	c := New("apiuser", "s3cret", WithEndpoint(api.server.URL), WithClientIPLookupURL(ipSrv.URL))

	for i := 0; i < 2; i++ {
		resp, err := c.Request(context.Background(), nil)
		if err != nil {
			t.Fatalf("Request #%d: %v", i, err)
		}
		_ = resp.Body.Close()
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("lookup hits: want 1, got %d", n)
	}
	if got := api.lastForm(t).Get("ClientIp"); got != "198.51.100.4" {
		t.Fatalf("ClientIp: got %q", got)
	}
}

func TestClientIP_InvalidBody(t *testing.T) {
	ipSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>nope</html>")
	}))
	defer ipSrv.Close()

	c := New("apiuser", "s3cret", WithClientIPLookupURL(ipSrv.URL))
	_, err := c.ClientIP(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not an IP address") {
		t.Fatalf("want invalid IP error, got %v", err)
	}
}

func TestClientIP_LookupStatus(t *testing.T) {
	ipSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ipSrv.Close()

	c := New("apiuser", "s3cret", WithClientIPLookupURL(ipSrv.URL))
	if _, err := c.ClientIP(context.Background()); err == nil {
		t.Fatalf("want error on 503")
	}
}

func TestParseClientIP(t *testing.T) {
	cases := map[string]string{
		" 192.0.2.10\n":       "192.0.2.10",
		"2001:db8::1":         "2001:db8::1",
		"::ffff:203.0.113.99": "203.0.113.99",
	}
	for in, want := range cases {
		got, err := parseClientIP(in)
		if err != nil || got != want {
			t.Fatalf("parseClientIP(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := parseClientIP("example.com"); err == nil {
		t.Fatalf("host name must be rejected")
	}
}

// ---------- Errors ----------

func TestCall_APIError(t *testing.T) {
	api := newFakeAPI(t, func(url.Values) (int, string) {
		return http.StatusOK, errorResponse(2019166, "Domain not found")
	})
	c := api.client()

	_, err := c.DomainsDNSGetList(context.Background(), "example", "com")
	if err == nil {
		t.Fatalf("want error")
	}
	if !IsAPIError(err, 2019166) || !IsAPIError(err, 0) {
		t.Fatalf("IsAPIError false for %v", err)
	}
	if IsAPIError(err, 1) {
		t.Fatalf("IsAPIError matched wrong number")
	}
	if !strings.Contains(err.Error(), CommandDomainsDNSGetList) || !strings.Contains(err.Error(), "Domain not found") {
		t.Fatalf("error lacks context: %v", err)
	}
}

func TestCall_ErrorStatusWithoutDetails(t *testing.T) {
	body := `<ApiResponse Status="ERROR"><Errors/><Warnings/></ApiResponse>`
	api := newFakeAPI(t, func(url.Values) (int, string) { return http.StatusOK, body })

	_, err := api.client().DomainsDNSGetList(context.Background(), "example", "com")
	if !IsAPIError(err, 0) {
		t.Fatalf("want API error, got %v", err)
	}
	if !strings.Contains(err.Error(), "without error details") {
		t.Fatalf("message: %v", err)
	}
}

func TestCall_HTTPError(t *testing.T) {
	api := newFakeAPI(t, func(url.Values) (int, string) {
		return http.StatusBadGateway, "upstream unavailable"
	})

	_, err := api.client().DomainsDNSGetList(context.Background(), "example", "com")
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("want *HTTPError, got %T %v", err, err)
	}
	if he.StatusCode != http.StatusBadGateway || he.Body != "upstream unavailable" {
		t.Fatalf("unexpected HTTPError: %+v", he)
	}
}

func TestCall_MalformedAndEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   ", "<ApiResponse Status=\"OK\"><CommandResponse"} {
		api := newFakeAPI(t, func(url.Values) (int, string) { return http.StatusOK, body })
		_, err := api.client().DomainsDNSGetList(context.Background(), "example", "com")
		if err == nil {
			t.Fatalf("body %q: want decode error", body)
		}
		if IsAPIError(err, 0) {
			t.Fatalf("body %q: decode failure reported as API error", body)
		}
	}
}

func TestCall_WarningsAreLogged(t *testing.T) {
	body := `<ApiResponse Status="OK">
  <Errors/>
  <Warnings><Warning Number="123">Deprecated parameter</Warning></Warnings>
  <CommandResponse Type="namecheap.domains.dns.getList">
    <DomainDNSGetListResult Domain="example.com" IsUsingOurDNS="false"><Nameserver>ns1.example.net</Nameserver></DomainDNSGetListResult>
  </CommandResponse>
</ApiResponse>`
	api := newFakeAPI(t, func(url.Values) (int, string) { return http.StatusOK, body })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	res, err := api.client(WithLogger(logger)).DomainsDNSGetList(context.Background(), "example", "com")
	if err != nil {
		t.Fatalf("warnings must not fail the call: %v", err)
	}
	if len(res.Nameservers) != 1 {
		t.Fatalf("nameservers: %v", res.Nameservers)
	}
	out := buf.String()
	if !strings.Contains(out, "namecheap API warning") || !strings.Contains(out, "Deprecated parameter") {
		t.Fatalf("warning not logged: %s", out)
	}
	if !strings.Contains(out, "result=ok") {
		t.Fatalf("call not logged: %s", out)
	}
}

func TestCall_RecordsMetrics(t *testing.T) {
	api := newFakeAPI(t, func(form url.Values) (int, string) {
		if form.Get("SLD") == "broken" {
			return http.StatusOK, errorResponse(2011170, "Validation error")
		}
		return http.StatusOK, okResponse(form.Get("Command"), `<DomainDNSGetListResult Domain="ok.com" IsUsingOurDNS="true"/>`)
	})
	c := api.client()

	okCounter := metrics.RequestsTotal.WithLabelValues(CommandDomainsDNSGetList, metrics.ResultOK)
	errCounter := metrics.RequestsTotal.WithLabelValues(CommandDomainsDNSGetList, metrics.ResultAPIError)
	okBefore, errBefore := testutil.ToFloat64(okCounter), testutil.ToFloat64(errCounter)

	if _, err := c.DomainsDNSGetList(context.Background(), "ok", "com"); err != nil {
		t.Fatalf("ok call: %v", err)
	}
	if _, err := c.DomainsDNSGetList(context.Background(), "broken", "com"); err == nil {
		t.Fatalf("broken call: want error")
	}

	if d := testutil.ToFloat64(okCounter) - okBefore; d != 1 {
		t.Fatalf("ok counter delta: %v", d)
	}
	if d := testutil.ToFloat64(errCounter) - errBefore; d != 1 {
		t.Fatalf("api_error counter delta: %v", d)
	}
}

func TestAPIErrors_Message(t *testing.T) {
	errs := APIErrors{{Number: 1, Message: " first "}, {Number: 2, Message: "second"}}
	want := "namecheap error 1: first; namecheap error 2: second"
	if errs.Error() != want {
		t.Fatalf("want %q, got %q", want, errs.Error())
	}
}
