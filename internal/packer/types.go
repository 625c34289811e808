package packer

import "github.com/eugenenazirov/container-optimizer/internal/shipping"

// Summary counts the outcome of an optimization run.
// AssignedCount + FailedCount always equals TotalProcessed.
type Summary struct {
	TotalProcessed int `json:"totalProcessed"`
	AssignedCount  int `json:"assignedCount"`
	FailedCount    int `json:"failedCount"`
}

// Result carries the updated snapshot produced by an optimization run.
// Shipments and Containers are complete lists in input order; Unassigned holds
// the eligible shipments that could not be placed, in processing order.
type Result struct {
	Shipments         []shipping.Shipment
	Containers        []shipping.Container
	Unassigned        []shipping.Shipment
	Summary           Summary
	NothingToOptimize bool
}

// Optimizer assigns pending shipments to containers.
type Optimizer interface {
	Optimize(shipments []shipping.Shipment, containers []shipping.Container) (Result, error)
	Name() string
}
