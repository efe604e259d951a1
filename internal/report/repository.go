package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM orders),
			(SELECT count(*) FROM orders WHERE status = 'pending'),
			(SELECT count(*) FROM orders WHERE status = 'preparing'),
			(SELECT count(*) FROM orders WHERE status = 'delivered'),
			(SELECT count(*) FROM orders WHERE status = 'cancelled'),
			(SELECT COALESCE(sum(total_amount), 0) FROM orders
				WHERE status = 'delivered' OR payment_status = 'completed'),
			(SELECT count(*) FROM orders WHERE created_at >= date_trunc('day', now())),
			(SELECT COALESCE(sum(total_amount), 0) FROM orders
				WHERE created_at >= date_trunc('day', now())
				  AND (status = 'delivered' OR payment_status = 'completed')),
			(SELECT count(*) FROM menu_items),
			(SELECT count(*) FROM menu_items WHERE is_available),
			(SELECT count(*) FROM inventory),
			(SELECT count(*) FROM inventory WHERE quantity <= min_quantity),
			(SELECT count(*) FROM users)
	`

	var stats DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalOrders,
		&stats.PendingOrders,
		&stats.PreparingOrders,
		&stats.DeliveredOrders,
		&stats.CancelledOrders,
		&stats.TotalRevenue,
		&stats.TodayOrders,
		&stats.TodayRevenue,
		&stats.MenuItemCount,
		&stats.AvailableMenuItems,
		&stats.InventoryItemCount,
		&stats.LowStockCount,
		&stats.RegisteredUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to collect dashboard stats: %w", err)
	}

	return &stats, nil
}
