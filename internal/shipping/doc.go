// Package shipping defines the shipment and container records shared by the
// optimizer, the pricing rules, storage backends and the HTTP layer.
package shipping
