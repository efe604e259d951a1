package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrMenuItemUnknown = errors.New("order references a menu item that does not exist")
	ErrStatusConflict  = errors.New("order status changed concurrently")
	ErrInvalidOrder    = errors.New("invalid order")
)

// InsufficientInventoryError aborts an order placement when a conditional
// stock decrement matches no row. It names the first ingredient that ran
// out so the response can tell the caller what is missing.
type InsufficientInventoryError struct {
	MenuItemID int64
	Ingredient string
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory of %q for menu item %d", e.Ingredient, e.MenuItemID)
}

// InvalidTransitionError rejects a status change the lifecycle does not
// allow, including attempts to leave a terminal status.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %q to %q", e.From, e.To)
}
