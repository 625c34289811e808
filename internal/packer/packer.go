package packer

import (
	"fmt"
	"sort"

	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

const (
	// StrategyFirstFit places each shipment in the first container of its type with room.
	StrategyFirstFit = "first-fit"
	// StrategyBestFit places each shipment in the container of its type it fills most tightly.
	StrategyBestFit = "best-fit"

	// DefaultReadyThreshold is the fill ratio at which a container becomes ready for transport.
	DefaultReadyThreshold = 0.9
)

// Option configures an Optimizer.
type Option func(*greedyPacker)

// WithReadyThreshold overrides the fill ratio that marks a container ready for transport.
// Ratios outside (0, 1] are ignored.
func WithReadyThreshold(ratio float64) Option {
	return func(p *greedyPacker) {
		if ratio > 0 && ratio <= 1 {
			p.readyThreshold = ratio
		}
	}
}

// selector returns the index of the container that should receive s, or -1.
type selector func(containers []shipping.Container, s shipping.Shipment) int

type greedyPacker struct {
	name           string
	choose         selector
	readyThreshold float64
}

// New creates an Optimizer using first-fit decreasing within each container type.
func New(opts ...Option) Optimizer {
	return newGreedy(StrategyFirstFit, firstFit, opts)
}

// NewBestFit creates an Optimizer using best-fit decreasing within each container type.
func NewBestFit(opts ...Option) Optimizer {
	return newGreedy(StrategyBestFit, bestFit, opts)
}

// ForStrategy resolves an Optimizer by name. An empty name selects first-fit.
func ForStrategy(name string, opts ...Option) (Optimizer, error) {
	switch name {
	case "", StrategyFirstFit:
		return New(opts...), nil
	case StrategyBestFit:
		return NewBestFit(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

func newGreedy(name string, choose selector, opts []Option) *greedyPacker {
	p := &greedyPacker{
		name:           name,
		choose:         choose,
		readyThreshold: DefaultReadyThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *greedyPacker) Name() string {
	return p.name
}

// Optimize recomputes the full assignment of pending, unassigned shipments.
// Every container is emptied first, so repeated runs over the same input yield the same result.
// The input slices are not modified.
func (p *greedyPacker) Optimize(shipments []shipping.Shipment, containers []shipping.Container) (Result, error) {
	if err := validateContainers(containers); err != nil {
		return Result{}, err
	}

	outShipments := shipping.CloneShipments(shipments)
	outContainers := shipping.CloneContainers(containers)

	eligible, err := eligibleIndexes(outShipments)
	if err != nil {
		return Result{}, err
	}
	if len(eligible) == 0 {
		return Result{
			Shipments:         outShipments,
			Containers:        outContainers,
			Unassigned:        []shipping.Shipment{},
			NothingToOptimize: true,
		}, nil
	}

	for i := range outContainers {
		outContainers[i].CurrentLoad = 0
		outContainers[i].Status = shipping.ContainerAvailable
		outContainers[i].Shipments = []string{}
	}

	sort.SliceStable(eligible, func(a, b int) bool {
		return outShipments[eligible[a]].Weight > outShipments[eligible[b]].Weight
	})

	unassigned := make([]shipping.Shipment, 0)
	assigned := 0
	for _, idx := range eligible {
		shipment := &outShipments[idx]

		target := p.choose(outContainers, *shipment)
		if target < 0 {
			unassigned = append(unassigned, shipment.Clone())
			continue
		}

		container := &outContainers[target]
		container.Shipments = append(container.Shipments, shipment.ID)
		container.CurrentLoad += shipment.Weight
		if container.CurrentLoad >= container.Capacity*p.readyThreshold {
			container.Status = shipping.ContainerReadyForTransport
		}

		containerID := container.ID
		shipment.ContainerID = &containerID
		shipment.Status = shipping.StatusReady
		assigned++
	}

	return Result{
		Shipments:  outShipments,
		Containers: outContainers,
		Unassigned: unassigned,
		Summary: Summary{
			TotalProcessed: len(eligible),
			AssignedCount:  assigned,
			FailedCount:    len(unassigned),
		},
	}, nil
}

func firstFit(containers []shipping.Container, s shipping.Shipment) int {
	for i, c := range containers {
		if c.Type == s.ContainerType && c.Remaining() >= s.Weight {
			return i
		}
	}
	return -1
}

// bestFit picks the container left with the least free space after placement.
// Ties go to the earliest container in list order.
func bestFit(containers []shipping.Container, s shipping.Shipment) int {
	best := -1
	bestSlack := 0.0
	for i, c := range containers {
		if c.Type != s.ContainerType || c.Remaining() < s.Weight {
			continue
		}
		slack := c.Remaining() - s.Weight
		if best < 0 || slack < bestSlack {
			best = i
			bestSlack = slack
		}
	}
	return best
}

func eligibleIndexes(shipments []shipping.Shipment) ([]int, error) {
	eligible := make([]int, 0, len(shipments))
	for i, s := range shipments {
		if s.Status != shipping.StatusPending || s.Assigned() {
			continue
		}
		if !s.ContainerType.Valid() {
			return nil, fmt.Errorf("%w: shipment %s requests container type %q", ErrInvalidConfiguration, s.ID, s.ContainerType)
		}
		if !(s.Weight > 0) {
			return nil, fmt.Errorf("%w: shipment %s has weight %v", ErrInvalidShipment, s.ID, s.Weight)
		}
		eligible = append(eligible, i)
	}
	return eligible, nil
}

func validateContainers(containers []shipping.Container) error {
	for _, c := range containers {
		if !c.Type.Valid() {
			return fmt.Errorf("%w: container %d has type %q", ErrInvalidConfiguration, c.ID, c.Type)
		}
		if !(c.Capacity > 0) {
			return fmt.Errorf("%w: container %d has capacity %v", ErrInvalidConfiguration, c.ID, c.Capacity)
		}
	}
	return nil
}
