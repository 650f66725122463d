package serve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/voidglitch/config"
)

func TestHostAllowed(t *testing.T) {
	allowed := []string{"example.com", ".void.test"}
	tests := []struct {
		host string
		want bool
	}{
		{"example.com", true},
		{"EXAMPLE.com:4173", true},
		{"www.example.com", false},
		{"void.test", true},
		{"a.b.void.test:80", true},
		{"evilvoid.test", false},
		{"localhost:4173", true},
		{"app.localhost", true},
		{"127.0.0.1:4173", true},
		{"[::1]:4173", true},
		{"192.168.1.20", true},
		{"attacker.net", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HostAllowed(tt.host, allowed); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.host, tt.want, got)
		}
	}

	if !HostAllowed("anything.net", []string{"all"}) {
		t.Error("Expected all to disable the check")
	}
	if HostAllowed("anything.net", nil) {
		t.Error("Expected empty list to reject named hosts")
	}
}

func newTestRouter(t *testing.T, root string, allowed ...string) http.Handler {
	t.Helper()
	cfg := config.Default().Serve
	cfg.AllowedHosts = allowed
	content, err := Content(root)
	if err != nil {
		t.Fatal(err)
	}
	return NewRouter(cfg, content)
}

func get(h http.Handler, host, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	h := newTestRouter(t, "", "void.example")

	rec := get(h, "void.example", "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Errorf("Unexpected health body %q", rec.Body.String())
	}

	rec = get(h, "other.example", "/healthz")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for unlisted host, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "other.example") {
		t.Errorf("Expected host in message, got %q", rec.Body.String())
	}
}

func TestRouterEmbeddedIndex(t *testing.T) {
	h := newTestRouter(t, filepath.Join(t.TempDir(), "missing"))
	rec := get(h, "localhost:4173", "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "voidglitch.wasm") {
		t.Error("Expected embedded loader page")
	}

	if rec := get(h, "localhost", "/nope.js"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing file, got %d", rec.Code)
	}
}

func TestRouterRootDir(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "hello.txt"), []byte("signal"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := newTestRouter(t, root, "all")

	rec := get(h, "anywhere.net", "/hello.txt")
	if rec.Code != http.StatusOK || rec.Body.String() != "signal" {
		t.Errorf("Expected file from root, got %d %q", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/hello.txt", nil)
	req.Host = "anywhere.net"
	post := httptest.NewRecorder()
	h.ServeHTTP(post, req)
	if post.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for POST, got %d", post.Code)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default().Serve
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("Run did not return after cancel")
	}
}

func TestAddr(t *testing.T) {
	if got := Addr(config.ServeConfig{Host: "0.0.0.0", Port: 4173}); got != "0.0.0.0:4173" {
		t.Errorf("Expected 0.0.0.0:4173, got %s", got)
	}
}
