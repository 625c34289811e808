package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/container-optimizer/internal/config"
	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/packer"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
	"github.com/eugenenazirov/container-optimizer/internal/storage"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(":8085")
	cfg.Containers = []shipping.Slot{{Type: shipping.Small, Count: 1}, {Type: shipping.Large, Count: 3}}
	logger := zaptest.NewLogger(t)

	app, err := New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { app.Close() })

	containers, err := app.storage.Containers(context.Background())
	if err != nil {
		t.Fatalf("Containers returned error: %v", err)
	}
	if len(containers) != 4 || containers[3].Type != shipping.Large || containers[3].ID != 4 {
		t.Fatalf("unexpected seeded containers %+v", containers)
	}
	items, err := app.storage.Inventory(context.Background())
	if err != nil || len(items) != len(inventory.Defaults()) {
		t.Fatalf("expected default inventory, got %+v (%v)", items, err)
	}
	if app.server == nil || app.router == nil || app.handler == nil || app.service == nil {
		t.Fatalf("expected server, router, service, and handler to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
}

func TestNewWithSQLiteKeepsExistingState(t *testing.T) {
	cfg := baseTestConfig(":0")
	cfg.Storage.Backend = storage.BackendSQLite
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "app.db")
	ctx := context.Background()

	first, err := New(ctx, cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := first.service.Restock(ctx, "Frozen", 100); err != nil {
		t.Fatalf("restock: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := New(ctx, cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { second.Close() })

	items, err := second.service.Inventory(ctx)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	frozen, _ := inventory.Find(items, "Frozen")
	if frozen.Quantity != 1300 {
		t.Fatalf("expected persisted restock, got %v", frozen.Quantity)
	}
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown strategy", func(c *config.Config) { c.PackerStrategy = "worst-fit" }},
		{"unknown container type", func(c *config.Config) { c.Containers = []shipping.Slot{{Type: "Huge", Count: 1}} }},
		{"unsupported backend", func(c *config.Config) { c.Storage.Backend = "etcd" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseTestConfig(":0")
			tt.mutate(&cfg)
			if _, err := New(context.Background(), cfg, zaptest.NewLogger(t)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig("9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestBuildRootHandler(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	root := BuildRootHandler(api)

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected api handler to serve /api/, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTemporaryRedirect || rec.Header().Get("Location") != "/api/health" {
		t.Fatalf("expected redirect to health, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rec.Code)
	}
}

func baseTestConfig(port string) config.Config {
	return config.Config{
		Port:                 port,
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
		LogLevel:             "info",
		Storage:              storage.DefaultOptions(),
		PackerStrategy:       packer.StrategyFirstFit,
		ReadyThreshold:       packer.DefaultReadyThreshold,
		ContainerTypes:       shipping.DefaultCatalogue(),
		Containers:           shipping.DefaultLayout(),
	}
}
