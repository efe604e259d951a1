package report

// DashboardStats is the operational snapshot served to the
// dashboard in a single database round-trip. Revenue counts orders
// that were delivered or whose payment completed.
type DashboardStats struct {
	TotalOrders        int64   `json:"total_orders"`
	PendingOrders      int64   `json:"pending_orders"`
	PreparingOrders    int64   `json:"preparing_orders"`
	DeliveredOrders    int64   `json:"delivered_orders"`
	CancelledOrders    int64   `json:"cancelled_orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	TodayOrders        int64   `json:"today_orders"`
	TodayRevenue       float64 `json:"today_revenue"`
	MenuItemCount      int64   `json:"menu_item_count"`
	AvailableMenuItems int64   `json:"available_menu_items"`
	InventoryItemCount int64   `json:"inventory_item_count"`
	LowStockCount      int64   `json:"low_stock_count"`
	RegisteredUsers    int64   `json:"registered_users"`
}
