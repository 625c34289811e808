package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eugenenazirov/container-optimizer/internal/fleet"
	"github.com/eugenenazirov/container-optimizer/internal/inventory"
	"github.com/eugenenazirov/container-optimizer/internal/logistics"
	"github.com/eugenenazirov/container-optimizer/internal/packer"
	"github.com/eugenenazirov/container-optimizer/internal/pricing"
	"github.com/eugenenazirov/container-optimizer/internal/report"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Service is the logistics workflow exposed over HTTP.
type Service interface {
	Strategy() string
	QuoteShipment(ctx context.Context, req logistics.ShipmentRequest) (shipping.Shipment, error)
	CreateShipment(ctx context.Context, req logistics.ShipmentRequest) (shipping.Shipment, error)
	Shipments(ctx context.Context) ([]shipping.Shipment, error)
	Shipment(ctx context.Context, id string) (shipping.Shipment, error)
	UpdateStatus(ctx context.Context, id string, status shipping.Status) (shipping.Shipment, error)
	Containers(ctx context.Context) ([]shipping.Container, error)
	Optimize(ctx context.Context) (packer.Result, error)
	Inventory(ctx context.Context) ([]inventory.Item, error)
	Restock(ctx context.Context, category string, quantity float64) (inventory.Item, error)
	Fleet() fleet.Roster
	Financials(ctx context.Context) (fleet.Financials, error)
	Report(ctx context.Context) (report.Report, error)
}

// Handler wires the logistics service into HTTP handlers.
type Handler struct {
	service Service

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(service Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		service: service,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Strategy:  h.service.Strategy(),
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req logistics.ShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	quote, err := h.service.QuoteShipment(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) handleCreateShipment(w http.ResponseWriter, r *http.Request) {
	var req logistics.ShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	shipment, err := h.service.CreateShipment(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/api/shipments/"+shipment.ID)
	writeJSON(w, http.StatusCreated, shipment)
}

func (h *Handler) handleListShipments(w http.ResponseWriter, r *http.Request) {
	var filter shipping.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := shipping.ParseStatus(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		filter = status
	}

	shipments, err := h.service.Shipments(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}

	out := make([]shipping.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if filter == "" || s.Status == filter {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, shipmentsResponse{Shipments: out, Total: len(out)})
}

func (h *Handler) handleGetShipment(w http.ResponseWriter, r *http.Request) {
	shipment, err := h.service.Shipment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	status, err := shipping.ParseStatus(req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	shipment, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (h *Handler) handleListContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.service.Containers(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}

	ready := 0
	for _, c := range containers {
		if c.Status == shipping.ContainerReadyForTransport {
			ready++
		}
	}
	writeJSON(w, http.StatusOK, containersResponse{Containers: containers, Ready: ready})
}

func (h *Handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result, err := h.service.Optimize(r.Context())
	elapsed := time.Since(start)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	unassigned := make([]string, 0, len(result.Unassigned))
	for _, s := range result.Unassigned {
		unassigned = append(unassigned, s.ID)
	}

	message := "Containers optimized successfully"
	if result.NothingToOptimize {
		message = "No pending shipments to optimize"
	}

	writeJSON(w, http.StatusOK, optimizeResponse{
		Message:           message,
		Strategy:          h.service.Strategy(),
		Summary:           result.Summary,
		Containers:        result.Containers,
		Unassigned:        unassigned,
		CalculationTimeMs: elapsed.Milliseconds(),
	})
}

func (h *Handler) handleFleet(w http.ResponseWriter, r *http.Request) {
	_ = r
	roster := h.service.Fleet()
	writeJSON(w, http.StatusOK, fleetResponse{
		Ships:        roster.Ships,
		Trucks:       roster.Trucks,
		TotalExpense: roster.TotalExpense(),
	})
}

func (h *Handler) handleFinancials(w http.ResponseWriter, r *http.Request) {
	financials, err := h.service.Financials(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, financials)
}

func (h *Handler) handleInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Inventory(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}

	low := make([]string, 0)
	for _, item := range inventory.LowStock(items) {
		low = append(low, item.Category)
	}
	writeJSON(w, http.StatusOK, inventoryResponse{Items: items, LowStock: low})
}

func (h *Handler) handleRestock(w http.ResponseWriter, r *http.Request) {
	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	item, err := h.service.Restock(r.Context(), r.PathValue("category"), req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Report(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type statusRequest struct {
	Status string `json:"status"`
}

type restockRequest struct {
	Quantity float64 `json:"quantity"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Strategy  string    `json:"strategy"`
	Timestamp time.Time `json:"timestamp"`
}

type shipmentsResponse struct {
	Shipments []shipping.Shipment `json:"shipments"`
	Total     int                 `json:"total"`
}

type containersResponse struct {
	Containers []shipping.Container `json:"containers"`
	Ready      int                  `json:"ready"`
}

type optimizeResponse struct {
	Message           string               `json:"message"`
	Strategy          string               `json:"strategy"`
	Summary           packer.Summary       `json:"summary"`
	Containers        []shipping.Container `json:"containers"`
	Unassigned        []string             `json:"unassigned"`
	CalculationTimeMs int64                `json:"calculationTimeMs"`
}

type fleetResponse struct {
	Ships        []fleet.Vehicle `json:"ships"`
	Trucks       []fleet.Vehicle `json:"trucks"`
	TotalExpense float64         `json:"totalExpense"`
}

type inventoryResponse struct {
	Items    []inventory.Item `json:"items"`
	LowStock []string         `json:"lowStock"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logistics.ErrShipmentNotFound):
		writeError(w, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, logistics.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "Invalid status transition", err.Error(),
			"Shipments move Pending → Ready → In Transit → Completed")
	case errors.Is(err, pricing.ErrCapacityExceeded):
		writeError(w, http.StatusUnprocessableEntity, "Capacity exceeded", err.Error(),
			"Choose a larger container type or split the shipment")
	case errors.Is(err, inventory.ErrInsufficientStock):
		writeError(w, http.StatusUnprocessableEntity, "Insufficient stock", err.Error(),
			"Restock the category or reduce the requested weight")
	case errors.Is(err, packer.ErrInvalidConfiguration), errors.Is(err, packer.ErrInvalidShipment):
		writeInternalError(w, err)
	case errors.Is(err, logistics.ErrInvalidRequest),
		errors.Is(err, shipping.ErrUnknownContainerType),
		errors.Is(err, shipping.ErrInvalidStatus),
		errors.Is(err, inventory.ErrUnknownCategory),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrInvalidWeight):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		writeInternalError(w, err)
	}
}
