package shipping

import (
	"fmt"
	"time"
)

// ContainerType is the closed set of container sizes a shipment can request.
type ContainerType string

const (
	Small  ContainerType = "Small"
	Medium ContainerType = "Medium"
	Large  ContainerType = "Large"
)

// ContainerTypes lists every recognised container type, smallest first.
func ContainerTypes() []ContainerType {
	return []ContainerType{Small, Medium, Large}
}

// Valid reports whether t is one of the recognised container types.
func (t ContainerType) Valid() bool {
	switch t {
	case Small, Medium, Large:
		return true
	default:
		return false
	}
}

// ParseContainerType converts raw input into a ContainerType.
func ParseContainerType(raw string) (ContainerType, error) {
	t := ContainerType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownContainerType, raw)
	}
	return t, nil
}

// Status is the lifecycle state of a shipment. Transitions only move forward.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusReady     Status = "Ready"
	StatusInTransit Status = "In Transit"
	StatusCompleted Status = "Completed"
)

func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusReady:
		return 1
	case StatusInTransit:
		return 2
	case StatusCompleted:
		return 3
	default:
		return -1
	}
}

// Valid reports whether s is a known shipment status.
func (s Status) Valid() bool {
	return s.rank() >= 0
}

// CanTransitionTo reports whether moving from s to next keeps the lifecycle forward-only.
// Re-applying the current status is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() >= s.rank()
}

// ParseStatus converts raw input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// ContainerStatus is derived from a container's fill level.
type ContainerStatus string

const (
	ContainerAvailable         ContainerStatus = "Available"
	ContainerReadyForTransport ContainerStatus = "Ready for Transport"
)

// Shipment is a customer shipment request.
type Shipment struct {
	ID                 string        `json:"id"`
	CustomerName       string        `json:"customerName"`
	ProductName        string        `json:"productName"`
	Category           string        `json:"category"`
	Weight             float64       `json:"weight"`
	ContainerType      ContainerType `json:"containerType"`
	ShipmentType       string        `json:"shipmentType,omitempty"`
	DestinationCity    string        `json:"destinationCity,omitempty"`
	DestinationCountry string        `json:"destinationCountry,omitempty"`
	Distance           float64       `json:"distance"`
	PricePerKm         float64       `json:"pricePerKm"`
	TotalPrice         float64       `json:"totalPrice"`
	EstimatedDays      int           `json:"estimatedDays"`
	Status             Status        `json:"status"`
	ContainerID        *int          `json:"containerId"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// Assigned reports whether the shipment has been placed in a container.
func (s Shipment) Assigned() bool {
	return s.ContainerID != nil
}

// Route returns the human readable origin-destination pair of the shipment.
func (s Shipment) Route() string {
	dest := s.DestinationCity
	if dest == "" {
		dest = s.DestinationCountry
	}
	return Origin + " → " + dest
}

// Clone returns a deep copy of the shipment.
func (s Shipment) Clone() Shipment {
	out := s
	if s.ContainerID != nil {
		id := *s.ContainerID
		out.ContainerID = &id
	}
	return out
}

// Origin is where every shipment departs from.
const Origin = "Muğla"

// Container is a physical container that shipments are packed into.
type Container struct {
	ID          int             `json:"id"`
	Type        ContainerType   `json:"type"`
	Capacity    float64         `json:"capacity"`
	CurrentLoad float64         `json:"currentLoad"`
	Status      ContainerStatus `json:"status"`
	Shipments   []string        `json:"shipments"`
}

// Remaining is the free capacity of the container in kilograms.
func (c Container) Remaining() float64 {
	return c.Capacity - c.CurrentLoad
}

// Utilization returns the load as a percentage of capacity.
func (c Container) Utilization() float64 {
	if c.Capacity <= 0 {
		return 0
	}
	return c.CurrentLoad / c.Capacity * 100
}

// Clone returns a deep copy of the container.
func (c Container) Clone() Container {
	out := c
	out.Shipments = append([]string{}, c.Shipments...)
	return out
}

// CloneShipments deep-copies a slice of shipments.
func CloneShipments(src []Shipment) []Shipment {
	out := make([]Shipment, len(src))
	for i, s := range src {
		out[i] = s.Clone()
	}
	return out
}

// CloneContainers deep-copies a slice of containers.
func CloneContainers(src []Container) []Container {
	out := make([]Container, len(src))
	for i, c := range src {
		out[i] = c.Clone()
	}
	return out
}
