package logistics

import "errors"

var (
	// ErrInvalidRequest is returned when a shipment request is missing required fields.
	ErrInvalidRequest = errors.New("invalid shipment request")
	// ErrShipmentNotFound is returned when no shipment has the requested id.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrInvalidTransition is returned when a status change would move a shipment backwards.
	ErrInvalidTransition = errors.New("shipment status can only move forward")
)
