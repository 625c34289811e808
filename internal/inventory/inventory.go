package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned for categories that are not stocked.
	ErrUnknownCategory = errors.New("unknown inventory category")
	// ErrInsufficientStock is returned when a withdrawal exceeds the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

// Level is the stock health of a category.
type Level string

const (
	LevelOK  Level = "OK"
	LevelLow Level = "Low"
)

// Operation is the direction of a stock movement.
type Operation string

const (
	Subtract Operation = "subtract"
	Add      Operation = "add"
)

// Item is the stock of one product category in kilograms.
type Item struct {
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	MinStock float64 `json:"minStock"`
	Status   Level   `json:"status"`
}

func (i *Item) refreshStatus() {
	if i.Quantity < i.MinStock {
		i.Status = LevelLow
		return
	}
	i.Status = LevelOK
}

// Defaults returns the initial stock levels.
func Defaults() []Item {
	return []Item{
		{Category: "Fresh", Quantity: 4500, MinStock: 2000, Status: LevelOK},
		{Category: "Frozen", Quantity: 1200, MinStock: 1000, Status: LevelOK},
		{Category: "Organic", Quantity: 8000, MinStock: 2500, Status: LevelOK},
	}
}

// Find returns the item for category.
func Find(items []Item, category string) (Item, error) {
	for _, item := range items {
		if item.Category == category {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// Check reports whether quantity kilograms of category can be withdrawn.
func Check(items []Item, category string, quantity float64) (bool, Item, error) {
	item, err := Find(items, category)
	if err != nil {
		return false, Item{}, err
	}
	return item.Quantity >= quantity, item, nil
}

// Apply moves quantity kilograms in or out of category and returns the updated stock list
// along with the changed item. The input slice is not modified.
func Apply(items []Item, category string, quantity float64, op Operation) ([]Item, Item, error) {
	if !(quantity > 0) {
		return nil, Item{}, ErrInvalidQuantity
	}

	out := append([]Item(nil), items...)
	for i := range out {
		if out[i].Category != category {
			continue
		}
		switch op {
		case Subtract:
			if out[i].Quantity < quantity {
				return nil, Item{}, fmt.Errorf("%w: %s has %v kg, requested %v kg", ErrInsufficientStock, category, out[i].Quantity, quantity)
			}
			out[i].Quantity -= quantity
		case Add:
			out[i].Quantity += quantity
		default:
			return nil, Item{}, fmt.Errorf("unsupported inventory operation %q", op)
		}
		out[i].refreshStatus()
		return out, out[i], nil
	}
	return nil, Item{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// Normalize recomputes the status of every item.
func Normalize(items []Item) []Item {
	out := append([]Item(nil), items...)
	for i := range out {
		out[i].refreshStatus()
	}
	return out
}

// LowStock returns the items below their minimum stock.
func LowStock(items []Item) []Item {
	low := make([]Item, 0)
	for _, item := range items {
		if item.Quantity < item.MinStock {
			low = append(low, item)
		}
	}
	return low
}
