package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/errors"
	"github.com/matzehuels/apexkit/pkg/observability"
	"github.com/matzehuels/apexkit/pkg/pipeline"
)

func salesChart() chart.Definition {
	return chart.Funcs{
		Title: "sales",
		DefineFunc: func(c *chart.Chart) error {
			c.AddSerie("Sales", "#FF0000").AddSerie("Cost", "#00FF00")
			return nil
		},
		DataFunc: func(ctx context.Context, c *chart.Chart) error {
			if err := c.AppendFloats("Jan", 100, 40); err != nil {
				return err
			}
			return c.AppendFloats("Feb", 120, 50)
		},
	}
}

func brokenChart() chart.Definition {
	return chart.Funcs{
		Title: "broken",
		DataFunc: func(ctx context.Context, c *chart.Chart) error {
			return io.ErrUnexpectedEOF
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := chart.NewRegistry()
	for name, f := range map[string]chart.Factory{"sales": salesChart, "broken": brokenChart} {
		if err := reg.Register(name, f); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}
	logger := log.New(io.Discard)
	s := New(reg, pipeline.NewRunner(nil, nil, logger), chart.DefaultConfig(), logger)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestList(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/api/charts")

	var got ListResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(got.Charts, ",") != "broken,sales" {
		t.Errorf("Charts = %v, want [broken sales]", got.Charts)
	}
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/charts/sales/options?key=store-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{`"series":[]`, `"colors":["#FF0000","#00FF00"]`, `"noData"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("options missing %s: %s", want, body)
		}
	}
}

func TestData(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/charts/sales/data?key=store-1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	var got DataResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Refresh != chart.DefaultRefreshTime {
		t.Errorf("Refresh = %d, want %d", got.Refresh, chart.DefaultRefreshTime)
	}
	want := `{"series":[{"name":"Sales","data":[100,120]},{"name":"Cost","data":[40,50]}],"labels":["Jan","Feb"],"colors":["#FF0000","#00FF00"]}`
	if string(got.Data) != want {
		t.Errorf("Data = %s, want %s", got.Data, want)
	}

	_, other := get(t, ts, "/api/charts/sales/data?key=store-2")
	var second DataResponse
	if err := json.Unmarshal(other, &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second.ID == got.ID {
		t.Error("different keys should give different chart ids")
	}
}

func TestPage(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/charts/sales?key=store-1&height=300px")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<title>sales</title>", "new ApexCharts", "setInterval", "height: 300px"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   errors.Code
	}{
		{"unknown chart", "/api/charts/nope/data", http.StatusNotFound, errors.ErrCodeChartNotFound},
		{"unknown route", "/nope", http.StatusNotFound, errors.ErrCodeNotFound},
		{"bad key", "/api/charts/sales/data?key=a%01b", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"failing data", "/api/charts/broken/data", http.StatusInternalServerError, errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var got ErrorBody
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode %s: %v", body, err)
			}
			if got.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Error.Code, tt.code)
			}
			if got.Error.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/api/charts/broken/data")
	if strings.Contains(string(body), io.ErrUnexpectedEOF.Error()) {
		t.Errorf("internal error leaked: %s", body)
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts, "/healthz")
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a generated request id")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	errors int
}

func (h *recordingHooks) OnResponse(ctx context.Context, method, route string, status int, d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
}

func (h *recordingHooks) OnError(ctx context.Context, method, route string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)

	ts := newTestServer(t)
	get(t, ts, "/api/charts/sales/data")
	get(t, ts, "/api/charts/nope/data")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 2 || hooks.routes[0] != "/api/charts/{name}/data" {
		t.Errorf("routes = %v", hooks.routes)
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s := New(chart.NewRegistry(), nil, chart.DefaultConfig(), log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, Options{Addr: "127.0.0.1:0"}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
