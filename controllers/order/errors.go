package orderControllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eco-pj/storefront-api/models"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrConflict        = errors.New("order was modified concurrently")
)

// ValidationError names every missing or malformed input field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// InsufficientStockError aborts a confirm transition in full; no partial
// decrements are committed.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductName)
}

// InvalidTransitionError rejects a status change the state machine forbids.
type InvalidTransitionError struct {
	From, To models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
