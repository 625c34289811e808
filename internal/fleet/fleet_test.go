package fleet

import (
	"testing"

	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

func TestRosterTotalExpense(t *testing.T) {
	t.Parallel()

	if got := DefaultRoster().TotalExpense(); got != 253300 {
		t.Fatalf("expected fleet expense 253300, got %v", got)
	}
}

func TestComputeFinancials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		shipments []shipping.Shipment
		want      Financials
	}{
		{
			name: "LossIsNotTaxed",
			shipments: []shipping.Shipment{
				{TotalPrice: 15000, Status: shipping.StatusCompleted},
				{TotalPrice: 99999, Status: shipping.StatusInTransit},
			},
			want: Financials{
				TotalRevenue:      15000,
				TotalFleetExpense: 253300,
				OtherExpenses:     80000,
				TotalExpenses:     333300,
				NetIncome:         -318300,
				Tax:               0,
				ProfitAfterTax:    -318300,
			},
		},
		{
			name: "ProfitIsTaxed",
			shipments: []shipping.Shipment{
				{TotalPrice: 433300, Status: shipping.StatusCompleted},
			},
			want: Financials{
				TotalRevenue:      433300,
				TotalFleetExpense: 253300,
				OtherExpenses:     80000,
				TotalExpenses:     333300,
				NetIncome:         100000,
				Tax:               20000,
				ProfitAfterTax:    80000,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ComputeFinancials(tc.shipments, DefaultRoster()); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
