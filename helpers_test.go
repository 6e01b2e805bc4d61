package namecheap

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// fakeAPI is an httptest server speaking the ApiResponse envelope.
type fakeAPI struct {
	server *httptest.Server

	mu      sync.Mutex
	forms   []url.Values
	headers []http.Header
}

// newFakeAPI starts a server; respond returns the status code and body for
// each decoded form.
func newFakeAPI(t *testing.T, respond func(form url.Values) (int, string)) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		f.mu.Lock()
		f.forms = append(f.forms, r.PostForm)
		f.headers = append(f.headers, r.Header.Clone())
		f.mu.Unlock()

		status, body := respond(r.PostForm)
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) client(opts ...Option) *Client {
	base := []Option{WithEndpoint(f.server.URL), WithClientIP("203.0.113.7")}
	return New("apiuser", "s3cret", append(base, opts...)...)
}

func (f *fakeAPI) requests() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.forms...)
}

func (f *fakeAPI) lastHeader() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.headers) == 0 {
		return nil
	}
	return f.headers[len(f.headers)-1]
}

func (f *fakeAPI) lastForm(t *testing.T) url.Values {
	t.Helper()
	reqs := f.requests()
	if len(reqs) == 0 {
		t.Fatalf("no requests received")
	}
	return reqs[len(reqs)-1]
}

// commandOK answers every request with the given CommandResponse body.
func commandOK(inner string) func(url.Values) (int, string) {
	return func(form url.Values) (int, string) {
		return http.StatusOK, okResponse(form.Get("Command"), inner)
	}
}

func okResponse(command, inner string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<ApiResponse Status="OK" xmlns="http://api.namecheap.com/xml.response">
  <Errors />
  <Warnings />
  <RequestedCommand>%s</RequestedCommand>
  <CommandResponse Type="%s">%s</CommandResponse>
  <Server>SERVER-TEST</Server>
  <GMTTimeDifference>--5:00</GMTTimeDifference>
  <ExecutionTime>0.011</ExecutionTime>
</ApiResponse>`, strings.ToLower(command), command, inner)
}

func errorResponse(number int, message string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<ApiResponse Status="ERROR" xmlns="http://api.namecheap.com/xml.response">
  <Errors>
    <Error Number="%d">%s</Error>
  </Errors>
  <Warnings />
  <RequestedCommand />
  <Server>SERVER-TEST</Server>
  <GMTTimeDifference>--5:00</GMTTimeDifference>
  <ExecutionTime>0.002</ExecutionTime>
</ApiResponse>`, number, message)
}

func testContact() *Contact {
	return &Contact{
		FirstName:     "John",
		LastName:      "Doe",
		Address1:      "8939 S.cross Blvd",
		City:          "Phoenix",
		StateProvince: "AZ",
		PostalCode:    "85284",
		Country:       "US",
		Phone:         "+001.6613102107",
		EmailAddress:  "john@example.com",
	}
}
