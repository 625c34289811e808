package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

// KmPerDay is the distance covered per day of transit.
const KmPerDay = 500.0

var (
	// ErrInvalidWeight is returned when the requested weight is not positive.
	ErrInvalidWeight = errors.New("weight must be a positive number")
	// ErrCapacityExceeded is returned when the weight does not fit the requested container type.
	ErrCapacityExceeded = errors.New("weight exceeds container capacity")
)

// Quote is the computed price and transit estimate for a shipment request.
type Quote struct {
	Distance      float64 `json:"distance"`
	PricePerKm    float64 `json:"pricePerKm"`
	TotalPrice    float64 `json:"totalPrice"`
	EstimatedDays int     `json:"estimatedDays"`
}

// Quoter prices shipments against a container catalogue.
type Quoter struct {
	catalogue shipping.Catalogue
}

// New creates a Quoter for the given catalogue.
func New(catalogue shipping.Catalogue) *Quoter {
	return &Quoter{catalogue: catalogue}
}

// Quote prices a shipment of weight kilograms to the destination in a container of type t.
func (q *Quoter) Quote(weight float64, city, country string, t shipping.ContainerType) (Quote, error) {
	spec, err := q.catalogue.Lookup(t)
	if err != nil {
		return Quote{}, err
	}
	if !(weight > 0) {
		return Quote{}, ErrInvalidWeight
	}
	if weight > spec.Capacity {
		return Quote{}, fmt.Errorf("%w: %v kg exceeds %s capacity of %v kg", ErrCapacityExceeded, weight, t, spec.Capacity)
	}

	distance := Distance(city, country)
	return Quote{
		Distance:      distance,
		PricePerKm:    spec.PricePerKm,
		TotalPrice:    distance * spec.PricePerKm,
		EstimatedDays: int(math.Ceil(distance / KmPerDay)),
	}, nil
}

