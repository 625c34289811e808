package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/container-optimizer/internal/application"
	"github.com/eugenenazirov/container-optimizer/internal/config"
	"github.com/eugenenazirov/container-optimizer/internal/packer"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
	"github.com/eugenenazirov/container-optimizer/internal/storage"
)

func newConfig(strategy string) config.Config {
	return config.Config{
		Port:                 ":0",
		ShutdownGracePeriod:  time.Second,
		ReadHeaderTimeout:    time.Second,
		WriteTimeout:         time.Second,
		IdleTimeout:          time.Second,
		EnableRequestLogging: true,
		LogLevel:             "debug",
		Storage:              storage.DefaultOptions(),
		PackerStrategy:       strategy,
		ReadyThreshold:       packer.DefaultReadyThreshold,
		ContainerTypes:       shipping.DefaultCatalogue(),
		Containers:           shipping.DefaultLayout(),
	}
}

func newHandler(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()

	app, err := application.New(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("application.New: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app.Server().Handler
}

func performRequest(t *testing.T, handler http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	reader := bytes.NewReader(nil)
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createShipment(t *testing.T, handler http.Handler, containerType string, weight float64) string {
	t.Helper()

	rec := performRequest(t, handler, http.MethodPost, "/api/shipments", map[string]any{
		"customerName":       "Zeynep Kaya",
		"productName":        "Frozen fish",
		"category":           "Organic",
		"weight":             weight,
		"containerType":      containerType,
		"shipmentType":       "sea",
		"destinationCountry": "Germany",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 from create, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return created.ID
}

type optimizeBody struct {
	Summary struct {
		TotalProcessed int `json:"totalProcessed"`
		AssignedCount  int `json:"assignedCount"`
		FailedCount    int `json:"failedCount"`
	} `json:"summary"`
	Unassigned []string `json:"unassigned"`
	Containers []struct {
		ID          int      `json:"id"`
		Type        string   `json:"type"`
		CurrentLoad float64  `json:"currentLoad"`
		Status      string   `json:"status"`
		Shipments   []string `json:"shipments"`
	} `json:"containers"`
}

func optimize(t *testing.T, handler http.Handler) optimizeBody {
	t.Helper()

	rec := performRequest(t, handler, http.MethodPost, "/api/containers/optimize", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from optimize, got %d: %s", rec.Code, rec.Body.String())
	}
	var body optimizeBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode optimize response: %v", err)
	}
	return body
}

func TestIntegrationFlow(t *testing.T) {
	handler := newHandler(t, newConfig(packer.StrategyFirstFit))

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/inventory/Organic/restock", map[string]float64{"quantity": 12000})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from restock, got %d: %s", rec.Code, rec.Body.String())
	}

	// Three large shipments overflow the two large containers.
	ids := []string{
		createShipment(t, handler, "Large", 6000),
		createShipment(t, handler, "Large", 7000),
		createShipment(t, handler, "Large", 5000),
	}
	small := createShipment(t, handler, "Small", 1900)

	body := optimize(t, handler)
	if body.Summary.TotalProcessed != 4 || body.Summary.AssignedCount != 3 || body.Summary.FailedCount != 1 {
		t.Fatalf("unexpected summary %+v", body.Summary)
	}
	if len(body.Unassigned) != 1 || body.Unassigned[0] != ids[2] {
		t.Fatalf("expected the 5000 kg shipment to be unassigned, got %v", body.Unassigned)
	}

	loads := map[int]float64{}
	for _, c := range body.Containers {
		loads[c.ID] = c.CurrentLoad
	}
	if loads[1] != 1900 || loads[5] != 7000 || loads[6] != 6000 {
		t.Fatalf("unexpected container loads %v", loads)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/shipments/"+small, nil)
	var tracked struct {
		Status      string `json:"status"`
		ContainerID *int   `json:"containerId"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&tracked); err != nil {
		t.Fatalf("decode shipment: %v", err)
	}
	if tracked.Status != "Ready" || tracked.ContainerID == nil || *tracked.ContainerID != 1 {
		t.Fatalf("unexpected tracked shipment %+v", tracked)
	}

	// A second run empties the containers and retries only the pending leftover.
	again := optimize(t, handler)
	if again.Summary.TotalProcessed != 1 || again.Summary.AssignedCount != 1 {
		t.Fatalf("expected the leftover shipment to be placed, got %+v", again.Summary)
	}
	for _, c := range again.Containers {
		if c.ID == 5 && (c.CurrentLoad != 5000 || c.Shipments[0] != ids[2]) {
			t.Fatalf("unexpected first large container %+v", c)
		}
		if c.ID == 1 && c.CurrentLoad != 0 {
			t.Fatalf("expected container 1 to be reset, got %+v", c)
		}
	}

	report := performRequest(t, handler, http.MethodGet, "/api/report", nil)
	if report.Code != http.StatusOK {
		t.Fatalf("expected 200 from report, got %d", report.Code)
	}
}

func TestIntegrationRedisBackendBestFit(t *testing.T) {
	srv := miniredis.RunT(t)
	cfg := newConfig(packer.StrategyBestFit)
	cfg.Storage.Backend = storage.BackendRedis
	cfg.Storage.RedisAddr = srv.Addr()
	handler := newHandler(t, cfg)

	createShipment(t, handler, "Small", 1200)
	createShipment(t, handler, "Small", 1000)
	createShipment(t, handler, "Small", 900)
	last := createShipment(t, handler, "Small", 100)

	body := optimize(t, handler)
	if body.Summary.AssignedCount != 4 {
		t.Fatalf("unexpected summary %+v", body.Summary)
	}

	// Best fit puts the 100 kg shipment in the fuller second container.
	for _, c := range body.Containers {
		if c.ID != 2 {
			continue
		}
		if c.CurrentLoad != 2000 || c.Shipments[len(c.Shipments)-1] != last {
			t.Fatalf("unexpected second container %+v", c)
		}
	}

	if !srv.Exists(storage.DefaultRedisPrefix + storage.KeyContainers) {
		t.Fatalf("expected containers to be persisted in redis")
	}
}

func TestIntegrationRateLimit(t *testing.T) {
	cfg := newConfig(packer.StrategyFirstFit)
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 1
	handler := newHandler(t, cfg)

	if rec := performRequest(t, handler, http.MethodGet, "/api/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec.Code)
	}
	if rec := performRequest(t, handler, http.MethodGet, "/api/health", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", rec.Code)
	}
}
