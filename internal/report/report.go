package report

import (
	"time"

	"github.com/eugenenazirov/container-optimizer/internal/fleet"
	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

// NoRoute is reported as the most popular route when there are no shipments.
const NoRoute = "none"

// ShipmentStats summarises shipment volumes.
type ShipmentStats struct {
	Total            int     `json:"total"`
	Completed        int     `json:"completed"`
	Pending          int     `json:"pending"`
	TotalDistance    float64 `json:"totalDistance"`
	MostPopularRoute string  `json:"mostPopularRoute"`
}

// ContainerStats summarises container usage.
type ContainerStats struct {
	Total           int     `json:"total"`
	UtilizationRate float64 `json:"utilizationRate"`
	Ready           int     `json:"ready"`
}

// CategorySales aggregates completed shipments of one category.
type CategorySales struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Weight   float64 `json:"weight"`
}

// Report is the aggregate admin report.
type Report struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Financials  fleet.Financials `json:"financials"`
	Shipments   ShipmentStats    `json:"shipments"`
	Containers  ContainerStats   `json:"containers"`
	Categories  []CategorySales  `json:"categories"`
	Inventory   []inventory.Item `json:"inventory"`
}

// Build assembles the report from a consistent snapshot.
func Build(
	now time.Time,
	shipments []shipping.Shipment,
	containers []shipping.Container,
	items []inventory.Item,
	financials fleet.Financials,
) Report {
	return Report{
		GeneratedAt: now,
		Financials:  financials,
		Shipments:   shipmentStats(shipments),
		Containers:  containerStats(containers),
		Categories:  categorySales(shipments),
		Inventory:   append([]inventory.Item{}, items...),
	}
}

func shipmentStats(shipments []shipping.Shipment) ShipmentStats {
	stats := ShipmentStats{Total: len(shipments), MostPopularRoute: NoRoute}

	routeCounts := make(map[string]int)
	best := 0
	for _, s := range shipments {
		switch s.Status {
		case shipping.StatusCompleted:
			stats.Completed++
		case shipping.StatusPending:
			stats.Pending++
		}
		stats.TotalDistance += s.Distance

		route := s.Route()
		routeCounts[route]++
		// strictly greater keeps the earliest route on ties
		if routeCounts[route] > best {
			best = routeCounts[route]
			stats.MostPopularRoute = route
		}
	}
	return stats
}

func containerStats(containers []shipping.Container) ContainerStats {
	stats := ContainerStats{Total: len(containers)}

	capacity, load := 0.0, 0.0
	for _, c := range containers {
		capacity += c.Capacity
		load += c.CurrentLoad
		if c.Status == shipping.ContainerReadyForTransport {
			stats.Ready++
		}
	}
	if capacity > 0 {
		stats.UtilizationRate = load / capacity * 100
	}
	return stats
}

func categorySales(shipments []shipping.Shipment) []CategorySales {
	sales := make([]CategorySales, 0)
	index := make(map[string]int)
	for _, s := range shipments {
		if s.Status != shipping.StatusCompleted {
			continue
		}
		i, ok := index[s.Category]
		if !ok {
			i = len(sales)
			index[s.Category] = i
			sales = append(sales, CategorySales{Category: s.Category})
		}
		sales[i].Count++
		sales[i].Weight += s.Weight
	}
	return sales
}
