package inventory

import "time"

// InventoryItem is a raw ingredient tracked in stock. Quantity and
// MinQuantity are expressed in the item's Unit (kg, l, pieces); an item
// is low on stock once quantity falls to or below min_quantity.
type InventoryItem struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Quantity    float64   `json:"quantity" db:"quantity"`
	Unit        string    `json:"unit" db:"unit"`
	MinQuantity float64   `json:"min_quantity" db:"min_quantity"`
	CostPerUnit float64   `json:"cost_per_unit" db:"cost_per_unit"`
	Supplier    string    `json:"supplier,omitempty" db:"supplier"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryItemUpdate carries a full replacement of the mutable fields.
type InventoryItemUpdate struct {
	Name        string
	Quantity    float64
	Unit        string
	MinQuantity float64
	CostPerUnit float64
	Supplier    string
}

// Mapping links a menu item to one ingredient it consumes.
// QuantityRequired is the amount consumed per single ordered unit.
type Mapping struct {
	ID               int64   `json:"id" db:"id"`
	MenuItemID       int64   `json:"menu_item_id" db:"menu_item_id"`
	InventoryID      int64   `json:"inventory_id" db:"inventory_id"`
	QuantityRequired float64 `json:"quantity_required" db:"quantity_required"`
}
