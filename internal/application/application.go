package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/container-optimizer/internal/api"
	"github.com/eugenenazirov/container-optimizer/internal/config"
	"github.com/eugenenazirov/container-optimizer/internal/fleet"
	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/logistics"
	"github.com/eugenenazirov/container-optimizer/internal/packer"
	"github.com/eugenenazirov/container-optimizer/internal/pricing"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
	"github.com/eugenenazirov/container-optimizer/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	service *logistics.Service
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
// The storage backend is opened and seeded with the configured container fleet and default
// inventory when those documents are missing.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	containers, err := shipping.BuildContainers(cfg.Containers, cfg.ContainerTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to build container fleet: %w", err)
	}

	optimizer, err := packer.ForStrategy(cfg.PackerStrategy, packer.WithReadyThreshold(cfg.ReadyThreshold))
	if err != nil {
		return nil, fmt.Errorf("failed to configure optimizer: %w", err)
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	if err := storage.Seed(ctx, store, containers, inventory.Defaults()); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to seed storage: %w", err)
	}

	service := logistics.New(store, optimizer, pricing.New(cfg.ContainerTypes), fleet.DefaultRoster(), logger)
	handler := api.NewHandler(service)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	logger.Info("application initialized",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("strategy", optimizer.Name()),
		zap.Int("containers", len(containers)),
	)

	return &App{
		storage: store,
		service: service,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler mounts the API under /api/ and points the bare root at the health check.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/health", http.StatusTemporaryRedirect)
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Close releases the storage backend. Call it after the server has shut down.
func (a *App) Close() error {
	return a.storage.Close()
}
