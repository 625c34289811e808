package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

// Document keys shared by every backend.
const (
	KeyShipments  = "shipments"
	KeyContainers = "containers"
	KeyInventory  = "inventory"
)

// ErrUnsupportedBackend is returned when no storage backend matches the configured name.
var ErrUnsupportedBackend = errors.New("unsupported storage backend")

// Storage is the document store holding the shipment, container and inventory snapshots.
// A missing document reads as an empty list. Each Save replaces the whole document.
type Storage interface {
	Shipments(ctx context.Context) ([]shipping.Shipment, error)
	SaveShipments(ctx context.Context, shipments []shipping.Shipment) error
	Containers(ctx context.Context) ([]shipping.Container, error)
	SaveContainers(ctx context.Context, containers []shipping.Container) error
	Inventory(ctx context.Context) ([]inventory.Item, error)
	SaveInventory(ctx context.Context, items []inventory.Item) error
	Close() error
}

// MemoryStorage keeps documents in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu         sync.RWMutex
	shipments  []shipping.Shipment
	containers []shipping.Container
	items      []inventory.Item
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Shipments returns a defensive copy of the stored shipments.
func (s *MemoryStorage) Shipments(_ context.Context) ([]shipping.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return shipping.CloneShipments(s.shipments), nil
}

// SaveShipments replaces the stored shipments with a copy of the input.
func (s *MemoryStorage) SaveShipments(_ context.Context, shipments []shipping.Shipment) error {
	cloned := shipping.CloneShipments(shipments)

	s.mu.Lock()
	s.shipments = cloned
	s.mu.Unlock()

	return nil
}

// Containers returns a defensive copy of the stored containers.
func (s *MemoryStorage) Containers(_ context.Context) ([]shipping.Container, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return shipping.CloneContainers(s.containers), nil
}

// SaveContainers replaces the stored containers with a copy of the input.
func (s *MemoryStorage) SaveContainers(_ context.Context, containers []shipping.Container) error {
	cloned := shipping.CloneContainers(containers)

	s.mu.Lock()
	s.containers = cloned
	s.mu.Unlock()

	return nil
}

// Inventory returns a defensive copy of the stored stock levels.
func (s *MemoryStorage) Inventory(_ context.Context) ([]inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]inventory.Item{}, s.items...), nil
}

// SaveInventory replaces the stored stock levels with a copy of the input.
func (s *MemoryStorage) SaveInventory(_ context.Context, items []inventory.Item) error {
	cloned := append([]inventory.Item{}, items...)

	s.mu.Lock()
	s.items = cloned
	s.mu.Unlock()

	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStorage) Close() error {
	return nil
}

// Seed writes the initial containers and stock levels when the store has none.
// Existing documents are left untouched.
func Seed(ctx context.Context, store Storage, containers []shipping.Container, items []inventory.Item) error {
	existing, err := store.Containers(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		if err := store.SaveContainers(ctx, containers); err != nil {
			return err
		}
	}

	stock, err := store.Inventory(ctx)
	if err != nil {
		return err
	}
	if len(stock) == 0 {
		if err := store.SaveInventory(ctx, items); err != nil {
			return err
		}
	}
	return nil
}
