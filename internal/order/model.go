package order

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// allowedTransitions is the order lifecycle. Delivered and cancelled are
// terminal. Cancelling never returns consumed ingredients to stock.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Order is placed by name and phone; no account is required.
// CustomerEmail is optional and only used for the confirmation email.
type Order struct {
	ID            int64         `json:"id" db:"id"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerPhone string        `json:"customer_phone" db:"customer_phone"`
	CustomerEmail string        `json:"customer_email,omitempty" db:"customer_email"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	Status        OrderStatus   `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	Items         []OrderItem   `json:"items" db:"-"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// OrderItem keeps the price the customer saw at placement time, so later
// menu edits never change what an old order was charged.
type OrderItem struct {
	ID         int64   `json:"id" db:"id"`
	OrderID    int64   `json:"order_id" db:"order_id"`
	MenuItemID int64   `json:"menu_item_id" db:"menu_item_id"`
	Quantity   int32   `json:"quantity" db:"quantity"`
	Price      float64 `json:"price" db:"price"`
}

type ListFilter struct {
	Status OrderStatus
}
