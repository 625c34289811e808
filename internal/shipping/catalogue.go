package shipping

import "fmt"

// TypeSpec describes the capacity and tariff of a container type.
type TypeSpec struct {
	Capacity   float64 `yaml:"capacity" json:"capacity"`
	PricePerKm float64 `yaml:"price_per_km" json:"pricePerKm"`
}

// Catalogue maps each container type to its specification.
type Catalogue map[ContainerType]TypeSpec

// DefaultCatalogue returns the standard container tariff.
func DefaultCatalogue() Catalogue {
	return Catalogue{
		Small:  {Capacity: 2000, PricePerKm: 5},
		Medium: {Capacity: 5000, PricePerKm: 8},
		Large:  {Capacity: 10000, PricePerKm: 12},
	}
}

// Lookup returns the specification for t.
func (c Catalogue) Lookup(t ContainerType) (TypeSpec, error) {
	if !t.Valid() {
		return TypeSpec{}, fmt.Errorf("%w: %q", ErrUnknownContainerType, t)
	}
	spec, ok := c[t]
	if !ok {
		return TypeSpec{}, fmt.Errorf("%w: %q has no catalogue entry", ErrUnknownContainerType, t)
	}
	return spec, nil
}

// Validate checks that every catalogue entry is a known type with positive figures.
func (c Catalogue) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("container catalogue cannot be empty")
	}
	for t, spec := range c {
		if !t.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownContainerType, t)
		}
		if spec.Capacity <= 0 {
			return fmt.Errorf("capacity for %s must be positive, got %v", t, spec.Capacity)
		}
		if spec.PricePerKm < 0 {
			return fmt.Errorf("price per km for %s must be >= 0, got %v", t, spec.PricePerKm)
		}
	}
	return nil
}

// Slot requests Count containers of a given type in the yard layout.
type Slot struct {
	Type  ContainerType `yaml:"type" json:"type"`
	Count int           `yaml:"count" json:"count"`
}

// DefaultLayout is two containers of each type.
func DefaultLayout() []Slot {
	return []Slot{
		{Type: Small, Count: 2},
		{Type: Medium, Count: 2},
		{Type: Large, Count: 2},
	}
}

// BuildContainers creates empty containers for the layout, numbered from 1 in layout order.
func BuildContainers(layout []Slot, catalogue Catalogue) ([]Container, error) {
	containers := make([]Container, 0)
	nextID := 1
	for _, slot := range layout {
		spec, err := catalogue.Lookup(slot.Type)
		if err != nil {
			return nil, err
		}
		if slot.Count < 0 {
			return nil, fmt.Errorf("container count for %s must be >= 0, got %d", slot.Type, slot.Count)
		}
		for i := 0; i < slot.Count; i++ {
			containers = append(containers, Container{
				ID:        nextID,
				Type:      slot.Type,
				Capacity:  spec.Capacity,
				Status:    ContainerAvailable,
				Shipments: []string{},
			})
			nextID++
		}
	}
	return containers, nil
}
