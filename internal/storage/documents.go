package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

// rawStore reads and writes serialized documents by key.
// get returns nil data and no error when the key does not exist.
type rawStore interface {
	get(ctx context.Context, key string) ([]byte, error)
	put(ctx context.Context, key string, data []byte) error
}

// documentStore implements the typed Storage accessors on top of a rawStore as JSON documents.
type documentStore struct {
	raw rawStore
}

func loadDocument[T any](ctx context.Context, raw rawStore, key string) ([]T, error) {
	data, err := raw.get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func saveDocument[T any](ctx context.Context, raw rawStore, key string, values []T) error {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := raw.put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (d documentStore) Shipments(ctx context.Context) ([]shipping.Shipment, error) {
	return loadDocument[shipping.Shipment](ctx, d.raw, KeyShipments)
}

func (d documentStore) SaveShipments(ctx context.Context, shipments []shipping.Shipment) error {
	return saveDocument(ctx, d.raw, KeyShipments, shipments)
}

func (d documentStore) Containers(ctx context.Context) ([]shipping.Container, error) {
	return loadDocument[shipping.Container](ctx, d.raw, KeyContainers)
}

func (d documentStore) SaveContainers(ctx context.Context, containers []shipping.Container) error {
	return saveDocument(ctx, d.raw, KeyContainers, containers)
}

func (d documentStore) Inventory(ctx context.Context) ([]inventory.Item, error) {
	return loadDocument[inventory.Item](ctx, d.raw, KeyInventory)
}

func (d documentStore) SaveInventory(ctx context.Context, items []inventory.Item) error {
	return saveDocument(ctx, d.raw, KeyInventory, items)
}
