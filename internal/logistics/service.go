package logistics

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/container-optimizer/internal/fleet"
	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/packer"
	"github.com/eugenenazirov/container-optimizer/internal/pricing"
	"github.com/eugenenazirov/container-optimizer/internal/report"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
	"github.com/eugenenazirov/container-optimizer/internal/storage"
)

// Shipment modes accepted in ShipmentRequest.ShipmentType.
const (
	ModeRoad = "road"
	ModeSea  = "sea"
)

// ShipmentRequest is a customer's request to ship goods.
type ShipmentRequest struct {
	CustomerName       string                 `json:"customerName"`
	ProductName        string                 `json:"productName"`
	Category           string                 `json:"category"`
	Weight             float64                `json:"weight"`
	ContainerType      shipping.ContainerType `json:"containerType"`
	ShipmentType       string                 `json:"shipmentType"`
	DestinationCity    string                 `json:"destinationCity"`
	DestinationCountry string                 `json:"destinationCountry"`
}

func (r ShipmentRequest) validate() error {
	switch {
	case strings.TrimSpace(r.CustomerName) == "":
		return fmt.Errorf("%w: customerName is required", ErrInvalidRequest)
	case strings.TrimSpace(r.ProductName) == "":
		return fmt.Errorf("%w: productName is required", ErrInvalidRequest)
	case strings.TrimSpace(r.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidRequest)
	case !(r.Weight > 0):
		return fmt.Errorf("%w: weight must be a positive number", ErrInvalidRequest)
	case !r.ContainerType.Valid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidRequest, shipping.ErrUnknownContainerType, r.ContainerType)
	case strings.TrimSpace(r.DestinationCity) == "" && strings.TrimSpace(r.DestinationCountry) == "":
		return fmt.Errorf("%w: a destination city or country is required", ErrInvalidRequest)
	case r.ShipmentType != "" && r.ShipmentType != ModeRoad && r.ShipmentType != ModeSea:
		return fmt.Errorf("%w: shipmentType must be %q or %q", ErrInvalidRequest, ModeRoad, ModeSea)
	}
	return nil
}

// Service coordinates storage, pricing, inventory and the container optimizer.
// Every read-modify-write of the store runs under a single mutex, so optimization
// runs and shipment updates never interleave.
type Service struct {
	store     storage.Storage
	optimizer packer.Optimizer
	quoter    *pricing.Quoter
	roster    fleet.Roster
	logger    *zap.Logger

	clock func() time.Time
	newID func() string

	mu sync.Mutex
}

// Option configures Service behaviour.
type Option func(*Service)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithIDGenerator overrides how shipment ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// New constructs a Service with the provided dependencies.
func New(store storage.Storage, optimizer packer.Optimizer, quoter *pricing.Quoter, roster fleet.Roster, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		optimizer: optimizer,
		quoter:    quoter,
		roster:    roster,
		logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: func() string {
			return "SHP-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Strategy names the packing heuristic in use.
func (s *Service) Strategy() string {
	return s.optimizer.Name()
}

// QuoteShipment validates a request and prices it without persisting anything.
// The returned shipment has no id yet.
func (s *Service) QuoteShipment(ctx context.Context, req ShipmentRequest) (shipping.Shipment, error) {
	items, err := s.store.Inventory(ctx)
	if err != nil {
		return shipping.Shipment{}, err
	}
	return s.draft(req, items)
}

// CreateShipment prices a request, withdraws the stock and stores a new pending shipment.
func (s *Service) CreateShipment(ctx context.Context, req ShipmentRequest) (shipping.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Inventory(ctx)
	if err != nil {
		return shipping.Shipment{}, err
	}
	shipment, err := s.draft(req, items)
	if err != nil {
		return shipping.Shipment{}, err
	}
	shipments, err := s.store.Shipments(ctx)
	if err != nil {
		return shipping.Shipment{}, err
	}

	updated, _, err := inventory.Apply(items, shipment.Category, shipment.Weight, inventory.Subtract)
	if err != nil {
		return shipping.Shipment{}, err
	}
	if err := s.store.SaveInventory(ctx, updated); err != nil {
		return shipping.Shipment{}, err
	}

	shipment.ID = s.newID()
	shipment.CreatedAt = s.clock()
	if err := s.store.SaveShipments(ctx, append(shipments, shipment)); err != nil {
		if restoreErr := s.store.SaveInventory(ctx, items); restoreErr != nil {
			s.logger.Error("failed to restore inventory after shipment save error",
				zap.String("category", shipment.Category),
				zap.Error(restoreErr),
			)
		}
		return shipping.Shipment{}, err
	}

	s.logger.Info("shipment created",
		zap.String("shipment_id", shipment.ID),
		zap.String("container_type", string(shipment.ContainerType)),
		zap.Float64("weight", shipment.Weight),
		zap.Float64("total_price", shipment.TotalPrice),
	)
	return shipment, nil
}

func (s *Service) draft(req ShipmentRequest, items []inventory.Item) (shipping.Shipment, error) {
	if err := req.validate(); err != nil {
		return shipping.Shipment{}, err
	}

	quote, err := s.quoter.Quote(req.Weight, req.DestinationCity, req.DestinationCountry, req.ContainerType)
	if err != nil {
		return shipping.Shipment{}, err
	}

	available, item, err := inventory.Check(items, req.Category, req.Weight)
	if err != nil {
		return shipping.Shipment{}, err
	}
	if !available {
		return shipping.Shipment{}, fmt.Errorf("%w: %s has %v kg, requested %v kg",
			inventory.ErrInsufficientStock, req.Category, item.Quantity, req.Weight)
	}

	return shipping.Shipment{
		CustomerName:       strings.TrimSpace(req.CustomerName),
		ProductName:        strings.TrimSpace(req.ProductName),
		Category:           req.Category,
		Weight:             req.Weight,
		ContainerType:      req.ContainerType,
		ShipmentType:       req.ShipmentType,
		DestinationCity:    strings.TrimSpace(req.DestinationCity),
		DestinationCountry: strings.TrimSpace(req.DestinationCountry),
		Distance:           quote.Distance,
		PricePerKm:         quote.PricePerKm,
		TotalPrice:         quote.TotalPrice,
		EstimatedDays:      quote.EstimatedDays,
		Status:             shipping.StatusPending,
	}, nil
}

// Shipments lists every stored shipment.
func (s *Service) Shipments(ctx context.Context) ([]shipping.Shipment, error) {
	return s.store.Shipments(ctx)
}

// Shipment looks up a shipment by id.
func (s *Service) Shipment(ctx context.Context, id string) (shipping.Shipment, error) {
	shipments, err := s.store.Shipments(ctx)
	if err != nil {
		return shipping.Shipment{}, err
	}
	for _, shipment := range shipments {
		if shipment.ID == id {
			return shipment, nil
		}
	}
	return shipping.Shipment{}, fmt.Errorf("%w: %s", ErrShipmentNotFound, id)
}

// UpdateStatus moves a shipment forward in its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status shipping.Status) (shipping.Shipment, error) {
	if !status.Valid() {
		return shipping.Shipment{}, fmt.Errorf("%w: %q", shipping.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	shipments, err := s.store.Shipments(ctx)
	if err != nil {
		return shipping.Shipment{}, err
	}
	for i := range shipments {
		if shipments[i].ID != id {
			continue
		}
		current := shipments[i].Status
		if !current.CanTransitionTo(status) {
			return shipping.Shipment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
		}
		shipments[i].Status = status
		if err := s.store.SaveShipments(ctx, shipments); err != nil {
			return shipping.Shipment{}, err
		}
		s.logger.Info("shipment status updated",
			zap.String("shipment_id", id),
			zap.String("from", string(current)),
			zap.String("to", string(status)),
		)
		return shipments[i], nil
	}
	return shipping.Shipment{}, fmt.Errorf("%w: %s", ErrShipmentNotFound, id)
}

// Containers lists every container with its current load.
func (s *Service) Containers(ctx context.Context) ([]shipping.Container, error) {
	return s.store.Containers(ctx)
}

// Optimize reassigns every pending shipment to containers and persists the result.
// When nothing is eligible the store is left untouched.
func (s *Service) Optimize(ctx context.Context) (packer.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipments, err := s.store.Shipments(ctx)
	if err != nil {
		return packer.Result{}, err
	}
	containers, err := s.store.Containers(ctx)
	if err != nil {
		return packer.Result{}, err
	}

	result, err := s.optimizer.Optimize(shipments, containers)
	if err != nil {
		s.logger.Error("container optimization failed", zap.String("strategy", s.optimizer.Name()), zap.Error(err))
		return packer.Result{}, err
	}
	if result.NothingToOptimize {
		s.logger.Info("no pending shipments to optimize", zap.String("strategy", s.optimizer.Name()))
		return result, nil
	}

	if err := s.store.SaveContainers(ctx, result.Containers); err != nil {
		return packer.Result{}, err
	}
	if err := s.store.SaveShipments(ctx, result.Shipments); err != nil {
		return packer.Result{}, err
	}

	fields := []zap.Field{
		zap.String("strategy", s.optimizer.Name()),
		zap.Int("processed", result.Summary.TotalProcessed),
		zap.Int("assigned", result.Summary.AssignedCount),
		zap.Int("failed", result.Summary.FailedCount),
	}
	if result.Summary.FailedCount > 0 {
		s.logger.Warn("container optimization left shipments unassigned", fields...)
	} else {
		s.logger.Info("container optimization completed", fields...)
	}
	return result, nil
}

// Inventory returns the current stock levels.
func (s *Service) Inventory(ctx context.Context) ([]inventory.Item, error) {
	return s.store.Inventory(ctx)
}

// Restock adds quantity kilograms to a category.
func (s *Service) Restock(ctx context.Context, category string, quantity float64) (inventory.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.Inventory(ctx)
	if err != nil {
		return inventory.Item{}, err
	}
	updated, item, err := inventory.Apply(items, category, quantity, inventory.Add)
	if err != nil {
		return inventory.Item{}, err
	}
	if err := s.store.SaveInventory(ctx, updated); err != nil {
		return inventory.Item{}, err
	}
	s.logger.Info("inventory restocked", zap.String("category", category), zap.Float64("quantity", quantity))
	return item, nil
}

// Fleet returns the vehicle roster.
func (s *Service) Fleet() fleet.Roster {
	return s.roster
}

// Financials computes the income statement from the stored shipments.
func (s *Service) Financials(ctx context.Context) (fleet.Financials, error) {
	shipments, err := s.store.Shipments(ctx)
	if err != nil {
		return fleet.Financials{}, err
	}
	return fleet.ComputeFinancials(shipments, s.roster), nil
}

// Report builds the aggregate admin report from one snapshot of the store.
func (s *Service) Report(ctx context.Context) (report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipments, err := s.store.Shipments(ctx)
	if err != nil {
		return report.Report{}, err
	}
	containers, err := s.store.Containers(ctx)
	if err != nil {
		return report.Report{}, err
	}
	items, err := s.store.Inventory(ctx)
	if err != nil {
		return report.Report{}, err
	}

	financials := fleet.ComputeFinancials(shipments, s.roster)
	return report.Build(s.clock(), shipments, containers, items, financials), nil
}
