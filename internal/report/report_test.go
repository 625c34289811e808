package report

import (
	"testing"
	"time"

	"github.com/eugenenazirov/container-optimizer/internal/fleet"
	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	shipments := []shipping.Shipment{
		{ID: "1", Category: "Fresh", Weight: 100, Distance: 3000, DestinationCity: "Berlin", Status: shipping.StatusCompleted},
		{ID: "2", Category: "Fresh", Weight: 50, Distance: 150, DestinationCity: "Izmir", Status: shipping.StatusCompleted},
		{ID: "3", Category: "Frozen", Weight: 70, Distance: 150, DestinationCity: "Izmir", Status: shipping.StatusPending},
		{ID: "4", Category: "Organic", Weight: 20, Distance: 3000, DestinationCity: "Berlin", Status: shipping.StatusReady},
		{ID: "5", Category: "Frozen", Weight: 30, Distance: 150, DestinationCity: "Izmir", Status: shipping.StatusCompleted},
	}
	containers := []shipping.Container{
		{ID: 1, Type: shipping.Small, Capacity: 2000, CurrentLoad: 1900, Status: shipping.ContainerReadyForTransport},
		{ID: 2, Type: shipping.Small, Capacity: 2000, CurrentLoad: 100, Status: shipping.ContainerAvailable},
	}
	financials := fleet.ComputeFinancials(shipments, fleet.DefaultRoster())

	r := Build(now, shipments, containers, inventory.Defaults(), financials)

	if !r.GeneratedAt.Equal(now) {
		t.Fatalf("unexpected timestamp %s", r.GeneratedAt)
	}
	wantShipments := ShipmentStats{Total: 5, Completed: 3, Pending: 1, TotalDistance: 6450, MostPopularRoute: "Muğla → Izmir"}
	if r.Shipments != wantShipments {
		t.Fatalf("expected %+v, got %+v", wantShipments, r.Shipments)
	}
	wantContainers := ContainerStats{Total: 2, UtilizationRate: 50, Ready: 1}
	if r.Containers != wantContainers {
		t.Fatalf("expected %+v, got %+v", wantContainers, r.Containers)
	}
	if len(r.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %+v", r.Categories)
	}
	if r.Categories[0] != (CategorySales{Category: "Fresh", Count: 2, Weight: 150}) {
		t.Fatalf("unexpected Fresh sales %+v", r.Categories[0])
	}
	if r.Categories[1] != (CategorySales{Category: "Frozen", Count: 1, Weight: 30}) {
		t.Fatalf("unexpected Frozen sales %+v", r.Categories[1])
	}
	if len(r.Inventory) != 3 {
		t.Fatalf("expected inventory snapshot, got %+v", r.Inventory)
	}
	if r.Financials.TotalRevenue != financials.TotalRevenue {
		t.Fatalf("expected financials to be carried through")
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	r := Build(time.Time{}, nil, nil, nil, fleet.Financials{})
	if r.Shipments.MostPopularRoute != NoRoute {
		t.Fatalf("expected %q, got %q", NoRoute, r.Shipments.MostPopularRoute)
	}
	if r.Containers.UtilizationRate != 0 {
		t.Fatalf("expected zero utilization, got %v", r.Containers.UtilizationRate)
	}
	if r.Categories == nil {
		t.Fatalf("expected empty categories slice, not nil")
	}
}

func TestMostPopularRouteTieKeepsFirst(t *testing.T) {
	t.Parallel()

	stats := shipmentStats([]shipping.Shipment{
		{DestinationCity: "Rome"},
		{DestinationCity: "Paris"},
	})
	if stats.MostPopularRoute != "Muğla → Rome" {
		t.Fatalf("expected first route to win the tie, got %q", stats.MostPopularRoute)
	}
}
