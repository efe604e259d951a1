package menu

import "time"

// Category is the fixed set of menu sections. The database enforces the same
// set with a check constraint, so the two must move together.
type Category string

const (
	CategoryAppetizer  Category = "appetizer"
	CategoryMainCourse Category = "main_course"
	CategoryDessert    Category = "dessert"
	CategoryBeverage   Category = "beverage"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) Valid() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage:
		return true
	}
	return false
}

type MenuItem struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    Category  `json:"category" db:"category"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MenuItemUpdate enumerates every mutable field of a menu item. Updates are
// whole-row on purpose: partial patches hide which fields a caller touched.
type MenuItemUpdate struct {
	Name        string
	Description string
	Price       float64
	Category    Category
	IsAvailable bool
}

// ListFilter narrows List results. The zero value lists everything.
type ListFilter struct {
	Category      Category
	AvailableOnly bool
}
