package fleet

import "github.com/eugenenazirov/container-optimizer/internal/shipping"

const (
	// DefaultOtherExpenses covers fixed costs outside the fleet.
	DefaultOtherExpenses = 80000.0
	// DefaultTaxRate applies to positive net income only.
	DefaultTaxRate = 0.20
)

// Vehicle is a ship or truck on the roster. StaffCost is the crew cost for ships
// and the driver cost for trucks.
type Vehicle struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Capacity      float64 `json:"capacity"`
	FuelCostPerKm float64 `json:"fuelCostPerKm"`
	StaffCost     float64 `json:"staffCost"`
	Maintenance   float64 `json:"maintenance"`
	TotalExpense  float64 `json:"totalExpense"`
}

// Roster is the fixed fleet.
type Roster struct {
	Ships  []Vehicle `json:"ships"`
	Trucks []Vehicle `json:"trucks"`
}

// DefaultRoster returns the company fleet.
func DefaultRoster() Roster {
	return Roster{
		Ships: []Vehicle{
			{ID: "S001", Name: "BlueSea", Capacity: 100000, FuelCostPerKm: 40, StaffCost: 20000, Maintenance: 10000, TotalExpense: 70000},
			{ID: "S002", Name: "OceanStar", Capacity: 120000, FuelCostPerKm: 50, StaffCost: 25000, Maintenance: 12000, TotalExpense: 87000},
			{ID: "S003", Name: "AegeanWind", Capacity: 90000, FuelCostPerKm: 35, StaffCost: 18000, Maintenance: 8000, TotalExpense: 61000},
		},
		Trucks: []Vehicle{
			{ID: "T001", Name: "RoadKing", Capacity: 10000, FuelCostPerKm: 8, StaffCost: 3000, Maintenance: 2000, TotalExpense: 8000},
			{ID: "T002", Name: "FastMove", Capacity: 12000, FuelCostPerKm: 9, StaffCost: 3500, Maintenance: 2500, TotalExpense: 9000},
			{ID: "T003", Name: "CargoPro", Capacity: 9000, FuelCostPerKm: 7, StaffCost: 2800, Maintenance: 2000, TotalExpense: 7800},
			{ID: "T004", Name: "HeavyLoad", Capacity: 15000, FuelCostPerKm: 10, StaffCost: 4000, Maintenance: 3000, TotalExpense: 10500},
		},
	}
}

// TotalExpense sums the expense of every vehicle.
func (r Roster) TotalExpense() float64 {
	total := 0.0
	for _, v := range r.Ships {
		total += v.TotalExpense
	}
	for _, v := range r.Trucks {
		total += v.TotalExpense
	}
	return total
}

// Financials is the company's income statement.
type Financials struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalFleetExpense float64 `json:"totalFleetExpense"`
	OtherExpenses     float64 `json:"otherExpenses"`
	TotalExpenses     float64 `json:"totalExpenses"`
	NetIncome         float64 `json:"netIncome"`
	Tax               float64 `json:"tax"`
	ProfitAfterTax    float64 `json:"profitAfterTax"`
}

// ComputeFinancials derives the income statement. Only completed shipments earn revenue.
func ComputeFinancials(shipments []shipping.Shipment, roster Roster) Financials {
	revenue := 0.0
	for _, s := range shipments {
		if s.Status == shipping.StatusCompleted {
			revenue += s.TotalPrice
		}
	}

	fleetExpense := roster.TotalExpense()
	expenses := fleetExpense + DefaultOtherExpenses
	net := revenue - expenses

	tax := 0.0
	if net > 0 {
		tax = net * DefaultTaxRate
	}

	return Financials{
		TotalRevenue:      revenue,
		TotalFleetExpense: fleetExpense,
		OtherExpenses:     DefaultOtherExpenses,
		TotalExpenses:     expenses,
		NetIncome:         net,
		Tax:               tax,
		ProfitAfterTax:    net - tax,
	}
}
