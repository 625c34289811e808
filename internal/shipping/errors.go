package shipping

import "errors"

var (
	// ErrUnknownContainerType is returned for container types outside Small, Medium and Large.
	ErrUnknownContainerType = errors.New("unknown container type")
	// ErrInvalidStatus is returned for unrecognised shipment statuses.
	ErrInvalidStatus = errors.New("invalid shipment status")
)
