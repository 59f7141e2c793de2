package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gostiff/internal/analysis"
	"github.com/alexiusacademia/gostiff/internal/api"
	"github.com/alexiusacademia/gostiff/internal/material"
	"golang.org/x/time/rate"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "analysis", "testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func newServer(cfg api.Config) *httptest.Server {
	h := &api.Handler{Library: material.Default(), Points: 5}
	return httptest.NewServer(api.NewRouter(h, cfg))
}

func TestStaticEndpoint(t *testing.T) {
	srv := newServer(api.Config{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/static", "application/json", bytes.NewReader(fixture(t, "bar.json")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var s analysis.StaticSummary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if s.Dofs != 4 || s.Forces[0].Value > -999 || s.Forces[0].Value < -1001 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestModalEndpoint(t *testing.T) {
	srv := newServer(api.Config{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/modal", "application/json", bytes.NewReader(fixture(t, "portal.json")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var s analysis.ModalSummary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if len(s.Modes) != 6 || s.Modes[0].Frequency <= 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestErrors(t *testing.T) {
	srv := newServer(api.Config{})
	defer srv.Close()

	tcs := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed", "/api/static", `{"nodes": [`, http.StatusBadRequest},
		{"invalid model", "/api/static", `{"element_type": "truss", "nodes": [{"id": 1}]}`, http.StatusBadRequest},
		{"singular", "/api/static", `{"element_type": "bar", "nodes": [{"id": 1}, {"id": 2, "x": 1}],
			"members": [{"id": 1, "start": 1, "end": 2, "e": 1e9, "section": {"shape": "custom", "area": 1}}]}`, http.StatusUnprocessableEntity},
		{"no mass", "/api/modal", `{"element_type": "bar", "nodes": [{"id": 1, "constraint": "fixed"}, {"id": 2, "x": 1, "restrained": ["y"]}],
			"members": [{"id": 1, "start": 1, "end": 2, "e": 1e9, "section": {"shape": "custom", "area": 1}}]}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tc.path, "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Errorf("status: got %d, want %d", resp.StatusCode, tc.status)
			}
		})
	}
}

func TestReportEndpoint(t *testing.T) {
	srv := newServer(api.Config{})
	defer srv.Close()

	for _, path := range []string{"/api/static/report.pdf", "/api/modal/report.xlsx"} {
		resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(fixture(t, "portal.json")))
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || buf.Len() == 0 {
			t.Errorf("%s: status %d, %d bytes", path, resp.StatusCode, buf.Len())
		}
		if !strings.Contains(resp.Header.Get("Content-Disposition"), "attachment") {
			t.Errorf("%s: missing attachment header", path)
		}
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newServer(api.Config{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/materials")
	if err != nil {
		t.Fatal(err)
	}
	var mats []material.Material
	json.NewDecoder(resp.Body).Decode(&mats)
	resp.Body.Close()
	if len(mats) < 7 {
		t.Errorf("materials: got %d", len(mats))
	}

	resp, err = http.Get(srv.URL + "/api/combinations")
	if err != nil {
		t.Fatal(err)
	}
	var combos []map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&combos)
	resp.Body.Close()
	if len(combos) != 8 {
		t.Errorf("combinations: got %d, want 8", len(combos))
	}

	resp, err = http.Get(srv.URL + "/api/version")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("version status %d", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newServer(api.Config{Rate: rate.Every(time.Hour), Burst: 2})
	defer srv.Close()

	var codes []int
	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL + "/api/version")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes: %v", codes)
	}
}

func TestServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.Serve(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
