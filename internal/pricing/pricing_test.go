package pricing

import (
	"errors"
	"testing"

	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		weight        float64
		city, country string
		containerType shipping.ContainerType
		want          Quote
		wantErr       error
	}{
		{
			name:          "KnownCity",
			weight:        1500,
			city:          "Berlin",
			country:       "Germany",
			containerType: shipping.Small,
			want:          Quote{Distance: 3000, PricePerKm: 5, TotalPrice: 15000, EstimatedDays: 6},
		},
		{
			name:          "CountryFallback",
			weight:        4000,
			city:          "Hamburg",
			country:       "Germany",
			containerType: shipping.Medium,
			want:          Quote{Distance: 3000, PricePerKm: 8, TotalPrice: 24000, EstimatedDays: 6},
		},
		{
			name:          "DefaultDistanceRoundsDaysUp",
			weight:        9000,
			city:          "Atlantis",
			country:       "Nowhere",
			containerType: shipping.Large,
			want:          Quote{Distance: 2500, PricePerKm: 12, TotalPrice: 30000, EstimatedDays: 5},
		},
		{
			name:          "PartialDayRoundsUp",
			weight:        10,
			city:          "Izmir",
			containerType: shipping.Small,
			want:          Quote{Distance: 150, PricePerKm: 5, TotalPrice: 750, EstimatedDays: 1},
		},
		{
			name:          "CapacityExceeded",
			weight:        2001,
			city:          "Izmir",
			containerType: shipping.Small,
			wantErr:       ErrCapacityExceeded,
		},
		{
			name:          "InvalidWeight",
			weight:        0,
			city:          "Izmir",
			containerType: shipping.Small,
			wantErr:       ErrInvalidWeight,
		},
		{
			name:          "UnknownContainerType",
			weight:        10,
			city:          "Izmir",
			containerType: "Jumbo",
			wantErr:       shipping.ErrUnknownContainerType,
		},
	}

	q := New(shipping.DefaultCatalogue())
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := q.Quote(tc.weight, tc.city, tc.country, tc.containerType)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestDistanceFallbacks(t *testing.T) {
	t.Parallel()

	if got := Distance("Tokyo", "Japan"); got != 11000 {
		t.Fatalf("expected city distance, got %v", got)
	}
	if got := Distance("", "Egypt"); got != 1800 {
		t.Fatalf("expected country distance, got %v", got)
	}
	if got := Distance("", ""); got != DefaultDistance {
		t.Fatalf("expected default distance, got %v", got)
	}
}
