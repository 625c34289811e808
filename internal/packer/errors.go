package packer

import "errors"

var (
	// ErrInvalidConfiguration is returned when a shipment or container carries an unrecognised
	// container type or a container has no usable capacity.
	ErrInvalidConfiguration = errors.New("invalid container configuration")
	// ErrInvalidShipment is returned when an eligible shipment has a non-positive weight.
	ErrInvalidShipment = errors.New("shipment weight must be positive")
	// ErrUnknownStrategy is returned when no optimizer is registered under the requested name.
	ErrUnknownStrategy = errors.New("unknown packing strategy")
)
