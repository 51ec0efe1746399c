package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/storez/storefront/internal/adapters/memory"
	mockupstream "github.com/storez/storefront/internal/mocks/upstream"
	"github.com/storez/storefront/internal/service"
)

// testEnv is a full gateway wired against the in-memory cart backend
// and the upstream test double.
type testEnv struct {
	Server   *httptest.Server
	Client   *http.Client
	Upstream *mockupstream.MockUpstream
	Registry *service.Registry
}

// newTestEnv starts a gateway for handler tests. The client carries a
// cookie jar and does not follow redirects, so tests can assert on
// Location headers.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	up := mockupstream.NewMockUpstream()
	reg := service.NewRegistry(up, memory.NewCartStore(), logger)

	router := NewRouter(RouterServices{
		Registry: reg,
		Upstream: up,
		Checkout: service.NewCheckoutService(up, logger),
		Logger:   logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testEnv{Server: srv, Client: client, Upstream: up, Registry: reg}
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	return e.do(t, http.MethodGet, path, nil)
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	return e.do(t, http.MethodPost, path, body)
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.Server.URL+path, rd)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.Client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// decodeBody parses a JSON response body into dst.
func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// login signs the default test shopper in through the HTTP surface so
// the jar holds a valid credential cookie.
func (e *testEnv) login(t *testing.T) {
	t.Helper()
	resp := e.postJSON(t, "/auth/login", map[string]string{
		"email":    e.Upstream.DefaultUser.Email,
		"password": e.Upstream.DefaultPassword,
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
}
